package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/heartmarshall/wordlookup/internal/app"
	"github.com/heartmarshall/wordlookup/internal/config"
)

func interactiveCommand() *cli.Command {
	return &cli.Command{
		Name:    "interactive",
		Aliases: []string{"i"},
		Usage:   "Search words interactively, one per line",
		Action:  interactiveAction,
	}
}

func interactiveAction(ctx context.Context, c *cli.Command) error {
	return withApp(ctx, c, func(ctx context.Context, a *app.App) error {
		return a.Interactive(ctx, os.Stdin, os.Stdout)
	})
}

func defineCommand() *cli.Command {
	return &cli.Command{
		Name:      "define",
		Usage:     "Look up a single word and print it",
		ArgsUsage: "<word>",
		Action: func(ctx context.Context, c *cli.Command) error {
			word := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(word) == "" {
				return errors.New("define: a word is required")
			}
			return withApp(ctx, c, func(ctx context.Context, a *app.App) error {
				return a.Define(ctx, word, os.Stdout)
			})
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the JSON lookup API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides server.port)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, c, func(ctx context.Context, a *app.App) error {
				return a.Serve(ctx)
			})
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List the most recent lookups (requires database.dsn)",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Number of lookups to show (1-100)",
				Value: 20,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, c, func(ctx context.Context, a *app.App) error {
				return a.History(ctx, c.Int("limit"), os.Stdout)
			})
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations for the lookup history",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			return app.Migrate(ctx, cfg, logger)
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Println("wordlookup", app.BuildVersion())
			return nil
		},
	}
}

// setup loads configuration and builds the logger. Flags given on the
// command line override the loaded values.
func setup(c *cli.Command) (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if c.Bool("debug") {
		cfg.Log.Level = "debug"
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}

	logger := app.NewLogger(os.Stderr, cfg.Log)
	return cfg, logger, nil
}

func withApp(ctx context.Context, c *cli.Command, fn func(context.Context, *app.App) error) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

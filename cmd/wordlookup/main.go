// Command wordlookup looks up English words in the free dictionary API.
//
// Without a subcommand it starts an interactive session: every input line is
// searched and the result printed. Other subcommands look up a single word,
// serve the JSON API, list the lookup history or apply database migrations.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/heartmarshall/wordlookup/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cli.Command{
		Name:    "wordlookup",
		Usage:   "Look up English words in the free dictionary",
		Version: app.BuildVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Configuration file path",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: interactiveAction,
		Commands: []*cli.Command{
			interactiveCommand(),
			defineCommand(),
			serveCommand(),
			historyCommand(),
			migrateCommand(),
			versionCommand(),
		},
	}

	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

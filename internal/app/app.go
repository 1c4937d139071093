// Package app wires configuration, adapters and services into the commands
// exposed by cmd/wordlookup.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wordlookup/internal/adapter/postgres"
	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/history"
	"github.com/heartmarshall/wordlookup/internal/adapter/provider/freedict"
	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/console"
	"github.com/heartmarshall/wordlookup/internal/metrics"
	"github.com/heartmarshall/wordlookup/internal/render"
	"github.com/heartmarshall/wordlookup/internal/service/dictionary"
	"github.com/heartmarshall/wordlookup/internal/transport/middleware"
	"github.com/heartmarshall/wordlookup/internal/transport/rest"
	"github.com/heartmarshall/wordlookup/migrations"
)

// App holds the long-lived dependencies shared by all commands.
type App struct {
	cfg  *config.Config
	log  *slog.Logger
	pool *pgxpool.Pool
	dict *dictionary.Service
	reg  *prometheus.Registry
}

// New builds the dictionary service from cfg. When a database DSN is
// configured the lookup history is enabled.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.Register(reg)

	provider := freedict.NewProvider(cfg.Dictionary, logger)

	a := &App{cfg: cfg, log: logger, reg: reg}

	var opts []dictionary.Option
	if cfg.Database.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		repo := history.New(pool, postgres.NewTxManager(pool), history.DefaultRetain)
		opts = append(opts, dictionary.WithHistory(repo))
		logger.Info("lookup history enabled")
	}

	a.dict = dictionary.NewService(logger, provider, opts...)
	return a, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// Interactive runs the console session until EOF or ctx is done.
func (a *App) Interactive(ctx context.Context, in io.Reader, out io.Writer) error {
	return console.New(a.log, a.dict, in, out, a.cfg.Search.DefaultWord).Run(ctx)
}

// Define looks up a single word and prints it.
func (a *App) Define(ctx context.Context, word string, out io.Writer) error {
	item, err := a.dict.Lookup(ctx, word)
	if err != nil {
		return errors.New(dictionary.ErrorMessage(word, err))
	}
	_, err = io.WriteString(out, render.New(out).WordItem(item))
	return err
}

// History prints the most recent lookups.
func (a *App) History(ctx context.Context, limit int, out io.Writer) error {
	if !a.dict.HistoryEnabled() {
		return fmt.Errorf("%w: set database.dsn and run migrate", dictionary.ErrHistoryDisabled)
	}
	records, err := a.dict.RecentLookups(ctx, limit)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, render.New(out).History(records))
	return err
}

// Handler builds the HTTP handler with the full middleware chain.
// The returned stop function ends the rate limiter's cleanup goroutine.
func (a *App) Handler() (http.Handler, func()) {
	var pinger interface {
		Ping(ctx context.Context) error
	}
	if a.pool != nil {
		pinger = a.pool
	}

	router := rest.NewRouter(
		rest.NewWordHandler(a.dict, a.log),
		rest.NewHealthHandler(pinger, BuildVersion()),
		promhttp.HandlerFor(a.reg, promhttp.HandlerOpts{Registry: a.reg}),
	)

	limiter := middleware.NewRateLimiter(a.cfg.RateLimit.CleanupInterval)
	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(a.log),
		middleware.Recovery(a.log),
		middleware.Metrics(),
		middleware.CORS(a.cfg.CORS),
		limiter.Limit(a.cfg.RateLimit.RequestsPerMinute),
	)
	return chain(router), limiter.Stop
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	handler, stop := a.Handler()
	defer stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("http server listening",
			slog.String("addr", srv.Addr),
			slog.String("version", BuildVersion()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		a.log.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Migrate applies the embedded migrations to the configured database.
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if !cfg.Database.Enabled() {
		return errors.New("database.dsn is not set")
	}
	return postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS, logger)
}

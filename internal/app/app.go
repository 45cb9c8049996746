package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"hot-product-trends/internal/config"
	"hot-product-trends/internal/feed"
	"hot-product-trends/internal/server"
	"hot-product-trends/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newFeedClient() *feed.Client {
	return feed.NewClient(feed.Options{
		BaseURL:        a.Config.Feed.BaseURL,
		APIKey:         a.Config.Feed.APIKey,
		Host:           a.Config.Feed.Host,
		UserAgent:      a.Config.Feed.UserAgent,
		Timeout:        a.Config.Feed.RequestTimeout,
		Sort:           a.Config.Feed.Sort,
		TargetCurrency: a.Config.Feed.TargetCurrency,
		TargetLanguage: a.Config.Feed.TargetLanguage,
		IncludeImages:  a.Config.Feed.IncludeImages,
	}, a.Logger)
}

// openStore returns the lazily-connecting document store, or nil when no
// DSN is configured.
func (a *App) openStore() (*storage.Store, func()) {
	if a.Config.Database.DSN == "" {
		return nil, nil
	}
	store := storage.NewStore(a.Config.Database)
	return store, store.Close
}

// Serve runs the HTTP API until interrupted.
func (a *App) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore := a.openStore()
	if store == nil {
		a.Logger.Warn().Msg("database.dsn not configured; persistence disabled")
	}
	if closeStore != nil {
		defer closeStore()
	}

	var productStore storage.ProductStore
	if store != nil {
		productStore = store
	}
	sink := storage.NewSink(productStore, a.Config.Database.PersistTimeout, a.Logger)

	srv := server.New(a.Config.Server, a.newFeedClient(), sink, a.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down http server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	// Give detached writes a chance to land before the store closes.
	waitWithTimeout(sink, a.Config.Database.PersistTimeout)

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func waitWithTimeout(sink *storage.Sink, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		sink.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

// FetchOptions configure the one-shot fetch command.
type FetchOptions struct {
	Category string
	Page     int
	Persist  bool
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}

// ExportOptions hold parameters for exporting a trend summary.
type ExportOptions struct {
	Category string
	Page     int
	CSVPath  string
	PNGPath  string
}

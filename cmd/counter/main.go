package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bistrot-counter/internal/chat"
	"bistrot-counter/internal/config"
	"bistrot-counter/internal/database"
	"bistrot-counter/internal/menu"
	"bistrot-counter/internal/model"
	"bistrot-counter/internal/pickup"
	"bistrot-counter/internal/store"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("counter", cfg.Counter.Name).Msg("starting order-taking assistant")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the menu catalogue
	items, err := loadCatalogue(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load menu catalogue: %w", err)
	}
	catalog := menu.NewCatalog(items)
	logger.Info().Int("items", catalog.Size()).Msg("menu catalogue ready")

	// Initialize the order store backend
	orderStore, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize order store: %w", err)
	}
	defer closeStore()

	// Initialize the pickup time validator
	validator := pickup.NewValidator(&pickup.ValidatorConfig{
		OpenHour:       cfg.Counter.OpenHour,
		CloseHour:      cfg.Counter.CloseHour,
		MinLeadMinutes: cfg.Counter.MinLeadMinutes,
	}, logger)

	// Initialize the conversation loop
	loop := chat.NewLoop(os.Stdin, os.Stdout, catalog, validator, orderStore, cfg.Counter, logger)

	// Channel to listen for the conversation finishing on its own
	loopDone := make(chan error, 1)

	go func() {
		loopDone <- loop.Run(ctx)
	}()

	// Channel to listen for interrupt signals
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	// Block until the conversation ends or the user interrupts
	select {
	case err := <-loopDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("conversation error: %w", err)
		}

	case sig := <-interrupt:
		logger.Info().
			Str("signal", sig.String()).
			Msg("interrupt received, ending session")
		cancel()

		// Acknowledge the user cleanly rather than dumping a trace.
		fmt.Printf("\n👋 Thank you for choosing %s. See you soon!\n", cfg.Counter.Name)
	}

	logger.Info().Msg("session ended")

	return nil
}

// loadCatalogue picks the configured menu source: an S3 object with local
// fallback, a local JSON file, or the built-in catalogue.
func loadCatalogue(ctx context.Context, cfg *config.Config, logger zerolog.Logger) ([]model.MenuItem, error) {
	if cfg.Menu.S3Enabled {
		s3Loader, err := menu.NewS3Loader(ctx, cfg.Menu.S3Bucket, cfg.Menu.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 menu loader, falling back to local source")
		} else {
			items, loadErr := s3Loader.Load(ctx, cfg.Menu.S3Key)
			if loadErr == nil {
				return items, nil
			}
			logger.Warn().
				Err(loadErr).
				Msg("failed to load menu from S3, falling back to local source")
		}
	}

	if cfg.Menu.Path != "" {
		return menu.NewFileLoader(logger).Load(ctx, cfg.Menu.Path)
	}

	logger.Info().Msg("using built-in menu catalogue")
	return menu.Default(), nil
}

// newStore builds the configured persistence backend and returns it with a
// close function.
func newStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Store, func(), error) {
	if cfg.Store.Backend == config.BackendPostgres {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		pgStore := store.NewPostgresStore(pool, logger)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}

		return pgStore, pool.Close, nil
	}

	fileStore, err := store.NewFileStore(cfg.Store.DataDir, logger)
	if err != nil {
		return nil, nil, err
	}

	return fileStore, func() {}, nil
}

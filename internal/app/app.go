// Package app is the composition root: it builds the configuration,
// logger, storage handle, and services, and owns their teardown.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"habitchain/internal/auth"
	"habitchain/internal/credential"
	"habitchain/internal/habit"
	"habitchain/internal/model"
	"habitchain/internal/remote/identity"
	"habitchain/internal/remote/quote"
	"habitchain/internal/stats"
	"habitchain/internal/store"
)

// Options controls how the application is assembled.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// Verbose lowers the log level to debug.
	Verbose bool
}

// App holds the application's wired components.
type App struct {
	Config *model.AppConfig
	Logger *zap.Logger
	Store  store.Store
	Habits *habit.Service
	Stats  *stats.Aggregator
	Quotes *quote.Client

	authService *auth.Service
}

// New loads configuration and opens the storage handle. The habit service
// is created without a reminder scheduler; the daemon wires one in.
func New(opts Options) (*App, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	return &App{
		Config: cfg,
		Logger: logger,
		Store:  st,
		Habits: habit.NewService(st, nil, logger),
		Stats:  stats.NewAggregator(st),
		Quotes: quote.NewClient(cfg.Quotes.BaseURL),
	}, nil
}

// Auth lazily builds the auth service; the keyring is only opened when an
// auth operation is actually requested.
func (a *App) Auth() (*auth.Service, error) {
	if a.authService != nil {
		return a.authService, nil
	}

	creds, err := credential.Open()
	if err != nil {
		return nil, err
	}

	client := identity.NewClient(a.Config.Auth.BaseURL, a.Config.Auth.APIKey)
	a.authService = auth.NewService(client, creds, a.Logger)
	return a.authService, nil
}

// Close releases the storage handle and flushes the log.
func (a *App) Close() error {
	err := a.Store.Close()
	a.Logger.Sync()
	return err
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

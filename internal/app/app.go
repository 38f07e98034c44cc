// Package app implements the application layer for silo.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.trai.ch/zerr"

	"github.com/silopkg/silo/internal/adapters/depot" //nolint:depguard // Wired in app layer
	"github.com/silopkg/silo/internal/core/domain"
	"github.com/silopkg/silo/internal/core/ports"
	"github.com/silopkg/silo/internal/engine/download"
)

// ClientFactory builds a depot client for one run. The indirection exists so
// tests can substitute a mock depot without an HTTP server.
type ClientFactory func(cfg domain.DepotConfig, log ports.Logger) ports.DepotClient

// App represents the main application logic.
type App struct {
	logger    ports.Logger
	telemetry ports.Telemetry
	verifier  ports.ArtifactVerifier
	reporter  ports.Reporter
	clients   ClientFactory
}

// Option configures an App.
type Option func(*App)

// WithClientFactory replaces the depot client factory.
func WithClientFactory(f ClientFactory) Option {
	return func(a *App) {
		a.clients = f
	}
}

// New creates a new App instance.
func New(log ports.Logger, tel ports.Telemetry, verifier ports.ArtifactVerifier, reporter ports.Reporter, opts ...Option) *App {
	a := &App{
		logger:    log,
		telemetry: tel,
		verifier:  verifier,
		reporter:  reporter,
		clients: func(cfg domain.DepotConfig, log ports.Logger) ports.DepotClient {
			return depot.New(cfg, log)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Download executes one download run and returns the number of artifacts in
// the resulting set (downloaded or already cached).
func (a *App) Download(ctx context.Context, req domain.DownloadRequest) (int, error) {
	if req.Channel == "" {
		req.Channel = domain.DefaultChannel
	}
	if req.Target == (domain.Target{}) {
		req.Target = domain.DefaultTarget()
	}
	if req.Retry.Attempts == 0 {
		req.Retry = domain.DefaultRetryPolicy()
	}

	client := a.clients(req.Depot, a.logger)
	task := download.NewTask(req, client, a.verifier, a.reporter, a.telemetry, a.logger)

	count, err := task.Run(ctx)
	if err != nil {
		return count, zerr.Wrap(err, fmt.Sprintf("download from %s failed", req.Depot.URL))
	}
	return count, nil
}

// SetDebug raises the log level when the logger supports it.
func (a *App) SetDebug(enabled bool) {
	if !enabled {
		return
	}
	if l, ok := a.logger.(interface{ SetLevel(slog.Level) }); ok {
		l.SetLevel(slog.LevelDebug)
	}
}

// Close releases run-spanning resources.
func (a *App) Close() error {
	return a.telemetry.Close()
}

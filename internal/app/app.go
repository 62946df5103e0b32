// Package app initializes and holds the shared components of the CLI:
// configuration, logger, the cache store, and the GitHub clients.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shirokuma-tools/shirokuma-docs/internal/config"
	"github.com/shirokuma-tools/shirokuma-docs/internal/github"
	"github.com/shirokuma-tools/shirokuma-docs/internal/storage"
)

// App holds the main application components. GitHub clients are created
// lazily so local-only commands (featuremap, docs lint, ...) never require
// credentials.
type App struct {
	Cfg    *config.Config
	Logger *slog.Logger

	// Store is nil when the cache is disabled or could not be opened;
	// callers fall back to the live API.
	Store storage.Store

	mu      sync.Mutex
	token   string
	rest    github.Client
	graphql github.GraphQL
}

// NewApp assembles the application around a loaded configuration.
func NewApp(cfg *config.Config, logger *slog.Logger, store storage.Store) *App {
	return &App{Cfg: cfg, Logger: logger, Store: store}
}

// GitHub returns the REST client, resolving credentials on first use.
func (a *App) GitHub(ctx context.Context) (github.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rest != nil {
		return a.rest, nil
	}
	token, err := a.resolveToken(ctx)
	if err != nil {
		return nil, err
	}
	a.rest = github.NewPATClient(ctx, token, a.Logger)
	return a.rest, nil
}

// GraphQL returns the GraphQL client, resolving credentials on first use.
func (a *App) GraphQL(ctx context.Context) (github.GraphQL, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.graphql != nil {
		return a.graphql, nil
	}
	token, err := a.resolveToken(ctx)
	if err != nil {
		return nil, err
	}
	a.graphql = github.NewGraphQLClient(github.NewHTTPClient(ctx, token), a.Logger)
	return a.graphql, nil
}

// Repo returns the owner/repo pair the commands operate on.
func (a *App) Repo() (owner, repo string, err error) {
	if a.Cfg.GitHub.Owner == "" || a.Cfg.GitHub.Repo == "" {
		return "", "", fmt.Errorf("github.owner and github.repo must be configured (run 'shirokuma-docs init' or edit %s)", config.DefaultConfigFile)
	}
	return a.Cfg.GitHub.Owner, a.Cfg.GitHub.Repo, nil
}

func (a *App) resolveToken(ctx context.Context) (string, error) {
	if a.token != "" {
		return a.token, nil
	}
	token, err := github.AuthToken(ctx, a.Cfg.GitHub, a.Logger)
	if err != nil {
		return "", err
	}
	a.token = token
	return token, nil
}

package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/shirokuma-tools/shirokuma-docs/internal/config"
)

// AuthToken resolves the token used for both REST and GraphQL clients.
// A configured PAT wins; otherwise App credentials are exchanged for an
// installation token.
func AuthToken(ctx context.Context, cfg config.GitHubConfig, logger *slog.Logger) (string, error) {
	if cfg.Token != "" {
		return cfg.Token, nil
	}
	if cfg.AppID != 0 {
		return installationToken(ctx, cfg, logger)
	}
	return "", fmt.Errorf("no GitHub credentials: set github.token (or SKD_GITHUB_TOKEN) or App credentials")
}

// installationToken exchanges GitHub App credentials for a short-lived
// installation token.
func installationToken(ctx context.Context, cfg config.GitHubConfig, logger *slog.Logger) (string, error) {
	logger.Debug("creating GitHub installation token", "app_id", cfg.AppID, "installation_id", cfg.InstallationID)

	privateKey, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return "", fmt.Errorf("failed to read private key from %s: %w", cfg.PrivateKeyPath, err)
	}

	appTransport, err := ghinstallation.NewAppsTransport(http.DefaultTransport, cfg.AppID, privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to create GitHub App transport: %w", err)
	}
	appClient := github.NewClient(&http.Client{Transport: appTransport})

	token, _, err := appClient.Apps.CreateInstallationToken(ctx, cfg.InstallationID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create installation token for installation ID %d: %w", cfg.InstallationID, err)
	}
	if token.GetToken() == "" {
		return "", fmt.Errorf("received an empty installation token")
	}
	logger.Debug("created installation token", "expires_at", token.GetExpiresAt())
	return token.GetToken(), nil
}

// NewHTTPClient returns an oauth2-authenticated http client for the token,
// shared by the REST and GraphQL layers.
func NewHTTPClient(ctx context.Context, token string) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return oauth2.NewClient(ctx, ts)
}

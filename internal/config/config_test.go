package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Docs:     DocsConfig{MaxWorkers: 4},
			Markdown: MarkdownConfig{SplitTokenThreshold: 4000},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Docs.MaxWorkers = 0 },
			wantErr: true,
		},
		{
			name:    "negative split threshold",
			mutate:  func(c *Config) { c.Markdown.SplitTokenThreshold = -1 },
			wantErr: true,
		},
		{
			name:    "owner contains slash",
			mutate:  func(c *Config) { c.GitHub.Owner = "acme/widgets" },
			wantErr: true,
		},
		{
			name:    "app id without private key",
			mutate:  func(c *Config) { c.GitHub.AppID = 12345 },
			wantErr: true,
		},
		{
			name: "app id with private key",
			mutate: func(c *Config) {
				c.GitHub.AppID = 12345
				c.GitHub.PrivateKeyPath = "keys/app.pem"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.Markdown.Root)
	assert.Equal(t, []string{"index.md", "README.md"}, cfg.Markdown.EntryPoints)
	assert.Equal(t, 128000, cfg.Markdown.TokenBudget)
	assert.Equal(t, "docs/generated", cfg.Docs.OutputDir)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := chdirTemp(t)

	content := `github:
  owner: acme
  repo: widgets
docs:
  source_dir: app
  max_workers: 2
markdown:
  required_frontmatter: [title, description]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "acme/widgets", cfg.RepoSlug())
	assert.Equal(t, "app", cfg.Docs.SourceDir)
	assert.Equal(t, 2, cfg.Docs.MaxWorkers)
	assert.Equal(t, []string{"title", "description"}, cfg.Markdown.RequiredFrontmatter)
	// Untouched sections keep their defaults.
	assert.Equal(t, "docs", cfg.Markdown.Root)
}

func TestLoadConfig_TokenFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GITHUB_TOKEN", "ghp_from_env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ghp_from_env", cfg.GitHub.Token)
}

func TestLoadConfig_RepoFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SKD_GITHUB_OWNER", "acme")
	t.Setenv("SKD_GITHUB_REPO", "widgets")
	t.Setenv("SKD_GITHUB_INSTALLATION_ID", "42")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "acme", cfg.GitHub.Owner)
	assert.Equal(t, "widgets", cfg.GitHub.Repo)
	assert.Equal(t, int64(42), cfg.GitHub.InstallationID)
}

func TestConfig_RepoSlug_Unset(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "", cfg.RepoSlug())
}

// chdirTemp switches the working directory to a fresh temp dir so LoadConfig
// never picks up a developer's real config file.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

// Package config loads and validates the shirokuma-docs configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/shirokuma-tools/shirokuma-docs/internal/logger"
)

// DefaultConfigFile is the per-project configuration file name.
const DefaultConfigFile = ".shirokuma-docs.yml"

// Config holds the application's configuration values.
type Config struct {
	GitHub   GitHubConfig   `mapstructure:"github"`
	Docs     DocsConfig     `mapstructure:"docs"`
	Markdown MarkdownConfig `mapstructure:"markdown"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  logger.Config  `mapstructure:"logging"`
}

// GitHubConfig selects the repository and the authentication method.
// A personal access token is enough for CLI use; App credentials are
// supported for CI installations.
type GitHubConfig struct {
	Token          string `mapstructure:"token"`
	Owner          string `mapstructure:"owner"`
	Repo           string `mapstructure:"repo"`
	AppID          int64  `mapstructure:"app_id"`
	InstallationID int64  `mapstructure:"installation_id"`
	PrivateKeyPath string `mapstructure:"private_key_path"`
}

// DocsConfig controls the annotation scan and the generated site.
type DocsConfig struct {
	SourceDir       string   `mapstructure:"source_dir"`
	TestDir         string   `mapstructure:"test_dir"`
	OutputDir       string   `mapstructure:"output_dir"`
	Include         []string `mapstructure:"include"`
	Exclude         []string `mapstructure:"exclude"`
	CoverageSummary string   `mapstructure:"coverage_summary"`
	SiteTitle       string   `mapstructure:"site_title"`
	MaxWorkers      int      `mapstructure:"max_workers"`
}

// MarkdownConfig controls the markdown build and lint subsystem.
type MarkdownConfig struct {
	Root                string   `mapstructure:"root"`
	EntryPoints         []string `mapstructure:"entry_points"`
	RequiredFrontmatter []string `mapstructure:"required_frontmatter"`
	TokenBudget         int      `mapstructure:"token_budget"`
	SplitTokenThreshold int      `mapstructure:"split_token_threshold"`
}

// CacheConfig controls the local API cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Path    string        `mapstructure:"path"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LoadConfig reads configuration from the per-project YAML file and SKD_*
// environment variables, sets defaults, and validates the result.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(DefaultConfigFile)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SKD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// SetConfigFile bypasses viper's search path, so a missing file
		// surfaces as a plain *fs.PathError. Missing is fine: every value
		// has a default or an env override.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", DefaultConfigFile, err)
		}
	}

	// GITHUB_TOKEN is the conventional fallback when SKD_GITHUB_TOKEN is unset.
	if err := v.BindEnv("github.token", "SKD_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind github token env: %w", err)
	}
	// AutomaticEnv only resolves keys viper already knows about, and the
	// github.* credentials have no defaults. Bind them explicitly so
	// SKD_GITHUB_OWNER and friends survive Unmarshal.
	for _, key := range []string{
		"github.owner",
		"github.repo",
		"github.app_id",
		"github.installation_id",
		"github.private_key_path",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("docs.source_dir", "src")
	v.SetDefault("docs.test_dir", "tests")
	v.SetDefault("docs.output_dir", "docs/generated")
	v.SetDefault("docs.include", []string{"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx"})
	v.SetDefault("docs.exclude", []string{"**/node_modules/**", "**/dist/**"})
	v.SetDefault("docs.coverage_summary", "coverage/coverage-summary.json")
	v.SetDefault("docs.site_title", "Project Documentation")
	v.SetDefault("docs.max_workers", 8)

	v.SetDefault("markdown.root", "docs")
	v.SetDefault("markdown.entry_points", []string{"index.md", "README.md"})
	v.SetDefault("markdown.required_frontmatter", []string{"title"})
	v.SetDefault("markdown.token_budget", 128000)
	v.SetDefault("markdown.split_token_threshold", 4000)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", ".shirokuma-docs/cache.db")
	v.SetDefault("cache.ttl", time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
}

// Validate checks cross-field constraints that viper cannot express.
func (c *Config) Validate() error {
	if c.Docs.MaxWorkers <= 0 {
		return fmt.Errorf("docs.max_workers must be positive, got %d", c.Docs.MaxWorkers)
	}
	if c.Markdown.SplitTokenThreshold <= 0 {
		return fmt.Errorf("markdown.split_token_threshold must be positive, got %d", c.Markdown.SplitTokenThreshold)
	}
	if strings.Count(c.GitHub.Owner, "/") > 0 {
		return fmt.Errorf("github.owner must not contain '/': %q", c.GitHub.Owner)
	}
	if c.GitHub.AppID != 0 && c.GitHub.PrivateKeyPath == "" {
		return fmt.Errorf("github.private_key_path must be set when github.app_id is configured")
	}
	return nil
}

// RepoSlug returns "owner/repo" for log lines, or an empty string when the
// repository is not configured.
func (c *Config) RepoSlug() string {
	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		return ""
	}
	return c.GitHub.Owner + "/" + c.GitHub.Repo
}

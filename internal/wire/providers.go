package wire

import (
	"io"
	"log/slog"
	"os"

	"github.com/shirokuma-tools/shirokuma-docs/internal/config"
	"github.com/shirokuma-tools/shirokuma-docs/internal/db"
	"github.com/shirokuma-tools/shirokuma-docs/internal/logger"
	"github.com/shirokuma-tools/shirokuma-docs/internal/storage"
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg *config.Config) io.Writer {
	switch cfg.Logging.Output {
	case "stdout":
		return os.Stdout
	case "file":
		f, _ := os.OpenFile("shirokuma-docs.log", os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		return f
	default:
		// stdout carries the JSON artifacts, so logs default to stderr.
		return os.Stderr
	}
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(loggerConfig, writer)
}

// provideStore opens the cache database. The cache is advisory: when it is
// disabled or cannot be opened, a nil Store is returned and commands go
// straight to the API.
func provideStore(cfg *config.Config, slogLogger *slog.Logger) (storage.Store, func()) {
	if !cfg.Cache.Enabled {
		return nil, func() {}
	}
	dbConn, cleanup, err := db.NewDatabase(cfg.Cache)
	if err != nil {
		slogLogger.Warn("cache unavailable, falling back to the API", "path", cfg.Cache.Path, "error", err)
		return nil, func() {}
	}
	return storage.NewStore(dbConn.DB), cleanup
}

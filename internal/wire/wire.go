//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"github.com/shirokuma-tools/shirokuma-docs/internal/app"
	"github.com/shirokuma-tools/shirokuma-docs/internal/config"
)

func InitializeApp() (*app.App, func(), error) {
	wire.Build(
		app.NewApp,
		config.LoadConfig,
		provideStore,
		provideLoggerConfig,
		provideLogWriter,
		provideSlogLogger,
	)
	return &app.App{}, nil, nil
}

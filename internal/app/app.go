package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gdcc/mdb/internal/config"
	"github.com/gdcc/mdb/internal/model"
)

// App encapsulates the checker's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	dialect config.Configuration
	types   *model.TypeRegistry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and the
// resolved dialect configuration.
func NewApp(outW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig, outW)
	logger.Debug("Logger configured successfully.")

	dialect, err := resolveDialect(appConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load dialect configuration: %w", err)
	}
	logger.Debug("Dialect configuration resolved.",
		"comment_prefix", dialect.CommentPrefix(),
		"trigger_prefix", dialect.TriggerPrefix(),
		"deep_nesting", dialect.DeepFieldNestingEnabled())

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		dialect: dialect,
		types:   model.DefaultTypes(),
	}, nil
}

// resolveDialect loads the dialect configuration file when one is given and
// applies the nesting switch on top of it.
func resolveDialect(appConfig *Config) (config.Configuration, error) {
	dialect := config.Default()
	if appConfig.DialectPath != "" {
		loaded, err := config.LoadFile(appConfig.DialectPath)
		if err != nil {
			return config.Configuration{}, err
		}
		dialect = loaded
	}

	if appConfig.DeepNesting && !dialect.DeepFieldNestingEnabled() {
		return config.New(dialect.CommentPrefix(), dialect.TriggerPrefix(), dialect.ColumnSeparator(), true)
	}
	return dialect, nil
}

// Types returns the application's field type registry, so embedders can
// register custom field types before Run.
func (a *App) Types() *model.TypeRegistry {
	return a.types
}

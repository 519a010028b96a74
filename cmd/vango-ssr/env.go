package main

import (
	"io"
	"log/slog"

	"github.com/vango-dev/ssr/internal/components"
	"github.com/vango-dev/ssr/internal/config"
	"github.com/vango-dev/ssr/pkg/registry"
)

// env is the state every command starts from.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *registry.Registry
}

// loadEnv reads configuration, builds the logger and registers the
// built-in components. Log output goes to logOut.
func loadEnv(flags *globalFlags, logOut io.Writer) (*env, error) {
	cfg, err := config.Load(flags.configDir)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	reg := registry.New()
	if err := components.Register(reg); err != nil {
		return nil, err
	}

	return &env{
		cfg:      cfg,
		logger:   cfg.Log.NewLogger(logOut),
		registry: reg,
	}, nil
}

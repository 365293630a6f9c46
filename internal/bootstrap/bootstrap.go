package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/dashboard-builder/internal/config"
	"github.com/GregMSThompson/dashboard-builder/internal/layout"
	"github.com/GregMSThompson/dashboard-builder/internal/middleware"
	"github.com/GregMSThompson/dashboard-builder/internal/source"
	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

type Bootstrap struct {
	Log      *slog.Logger
	Source   *source.Source
	Defaults func() layout.Collection
	Firebase *auth.Client

	stopWatch context.CancelFunc
}

func Run(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := &Bootstrap{stopWatch: func() {}}

	bs.Log = NewLogger(cfg)
	ctx = logger.ToContext(ctx, bs.Log)

	bs.Source, err = source.New(ctx, cfg.RecordPath)
	if err != nil {
		return bs, err
	}

	bs.Defaults, err = loadDefaults(cfg.LayoutPath)
	if err != nil {
		return bs, err
	}

	if cfg.AuthMode == middleware.AuthModeFirebase {
		bs.Firebase, err = InitFirebase(ctx, cfg.ProjectID)
		if err != nil {
			return bs, fmt.Errorf("init firebase: %w", err)
		}
	}

	if cfg.WatchRecord {
		watchCtx, cancel := context.WithCancel(ctx)
		bs.stopWatch = cancel
		go func() {
			if err := bs.Source.Watch(watchCtx, source.DefaultDebounce); err != nil {
				bs.Log.Error("record watcher stopped", "error", err)
			}
		}()
	}

	return bs, nil
}

// Close stops the record watcher.
func (bs *Bootstrap) Close() {
	bs.stopWatch()
}

func NewLogger(cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == "text" {
		return logger.New(cfg.LogLevel, logger.NewConsoleHandler)
	}
	return logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
}

// loadDefaults returns the layout new users start with: the preset at path,
// or the built-in business overview.
func loadDefaults(path string) (func() layout.Collection, error) {
	if path == "" {
		return layout.Default, nil
	}
	p, err := layout.LoadPreset(path)
	if err != nil {
		return nil, fmt.Errorf("load layout preset: %w", err)
	}
	c, err := p.Collection()
	if err != nil {
		return nil, fmt.Errorf("load layout preset: %w", err)
	}
	return func() layout.Collection { return c }, nil
}

package root

import (
	"context"
	"log/slog"
	"os"

	"lifecodex/internal/config"
	"lifecodex/internal/engine"
	"lifecodex/internal/storage"
)

func openEngine(ctx context.Context) (*engine.Engine, func(), error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, nil, err
	}

	path := cfg.Storage.Path
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}

	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	var logger *slog.Logger
	if os.Getenv("LC_DEBUG") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	eng, err := engine.NewEngine(ctx, storage.NewSnapshots(db), engine.Options{
		XPCurveBase: cfg.Progression.XPCurveBase,
		LevelTitles: cfg.Progression.LevelTitles,
		Logger:      logger,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return eng, cleanup, nil
}

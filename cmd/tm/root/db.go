package root

import (
	"context"
	"fmt"

	"taskmate/internal/config"
	"taskmate/internal/engine"
	"taskmate/internal/storage"
)

func openGateway(ctx context.Context) (storage.Gateway, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		return storage.NewFileGateway(cfg.Storage.Path), nil
	case config.DriverSQLite:
		gw, err := storage.OpenSQLiteGateway(ctx, cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return gw, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	gw, err := openGateway(ctx)
	if err != nil {
		logger.Errorf(ctx, "root.openService: %v", err)
		return nil, nil, engine.PersistenceError{Op: "open storage", Err: err}
	}
	logger.Debugf(ctx, "root.openService: %s storage at %s", cfg.Storage.Driver, cfg.Storage.Path)
	cleanup := func() {
		_ = gw.Close()
	}
	svc := engine.NewService(gw, logger, engine.Options{
		FallbackCategory:          cfg.Categories.DefaultName,
		ResetTasksOnFirstCategory: cfg.Categories.ResetTasksOnFirstCategory,
	})
	return svc, cleanup, nil
}

package dbfx

import (
	"context"
	"fmt"

	"github.com/poiesic/chowdown/config"
	"github.com/poiesic/chowdown/storage"
	"github.com/poiesic/chowdown/storage/postgres"
	"go.uber.org/fx"
)

var Module = fx.Provide(provideStore)

func provideStore(lc fx.Lifecycle, cfg *config.Config) (storage.RecordStore, error) {
	store, err := postgres.Open(cfg.Datastore())
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.DatastoreAutoMigrate {
				return nil
			}
			if err := store.EnsureTable(ctx); err != nil {
				return fmt.Errorf("failed to create table %s: %w", cfg.DatastoreTable, err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}

package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"

	"github.com/terrarisk/hazard-cli/internal/hazard"
	"github.com/terrarisk/hazard-cli/internal/inventory"
	"github.com/terrarisk/hazard-cli/internal/reader"
	"github.com/terrarisk/hazard-cli/internal/sourcepath"
)

// openStore opens the configured dataset store and runs migrations.
func openStore(ctx context.Context) (reader.DatasetStore, error) {
	switch cfg.Store.Driver {
	case "memory":
		return reader.NewMemoryStore(), nil
	case "sqlite":
		st, err := reader.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, err
		}
		return st, nil
	case "postgres":
		st, err := reader.NewPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, err
		}
		return st, nil
	default:
		return nil, eris.Errorf("unknown store driver %q (want sqlite, postgres or memory)", cfg.Store.Driver)
	}
}

// loadInventory reads the configured inventory file. A missing file is
// not an error: family resolvers still serve the WRI and OS-C datasets.
func loadInventory() (*inventory.Inventory, error) {
	if _, err := os.Stat(cfg.Inventory.Path); os.IsNotExist(err) {
		return inventory.New(nil)
	}
	return inventory.Load(cfg.Inventory.Path)
}

// newResolver builds the generic resolver for a hazard type, with the
// hand-written family resolvers as embedded fallback.
func newResolver(t hazard.Type) (sourcepath.SourcePath, error) {
	inv, err := loadInventory()
	if err != nil {
		return nil, err
	}
	return sourcepath.Generic(inv, t, sourcepath.EmbeddedDefaults()), nil
}

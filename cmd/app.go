package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/catalog"
	"github.com/abhisek/leitner/internal/config"
	"github.com/abhisek/leitner/internal/spacedrep"
	"github.com/abhisek/leitner/internal/store"
)

// progressBackend is a ProgressRepo that can also wipe one key.
type progressBackend interface {
	spacedrep.ProgressRepo
	ResetProgress(ctx context.Context, key string) (int64, error)
}

// deps bundles everything a command needs from storage.
type deps struct {
	store    *store.Store
	progress progressBackend
	catalog  *catalog.Catalog
	logger   *slog.Logger
}

// openDeps opens the store and picks the configured progress backend.
// Pool metadata, game state and logs always live in SQLite.
func openDeps(cmd *cobra.Command) (*deps, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	d := &deps{store: st, logger: slog.Default()}
	switch cfg.Backend {
	case config.BackendFile:
		repo, err := store.NewFileProgressRepo(cfg.DataDir)
		if err != nil {
			st.Close()
			return nil, err
		}
		d.progress = repo
		// File progress is purged per key, not per pool.
		d.catalog = catalog.New(st.PoolRepo(), nil, d.logger)
	default:
		d.progress = st.ProgressRepo()
		d.catalog = catalog.New(st.PoolRepo(), st.ProgressRepo(), d.logger)
	}
	d.logger.Debug("storage ready", "db", dbPath, "backend", cfg.Backend)
	return d, nil
}

func (d *deps) Close() error {
	return d.store.Close()
}

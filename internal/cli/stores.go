// Package cli implements the administrative commands of the songvault
// binary: user management and per-user library export/import.
package cli

import (
	"fmt"

	"github.com/mrlokans/songvault/internal/config"
	"github.com/mrlokans/songvault/internal/library"
	"github.com/mrlokans/songvault/internal/library/memory"
	"github.com/mrlokans/songvault/internal/library/sqlite"
)

// openStore selects a library backend from configuration. dbPath overrides
// the configured database path when non-empty. The returned closer is a
// no-op for the in-memory backend.
func openStore(cfg *config.Config, dbPath string) (library.Store, func() error, error) {
	if dbPath == "" {
		dbPath = cfg.Store.Path
	}
	switch cfg.Store.Backend {
	case config.BackendMemory:
		// Ephemeral; useful only for trying commands out.
		return memory.New(), func() error { return nil }, nil
	case config.BackendSQLite, "":
		store, err := sqlite.Open(dbPath, cfg.Store.OpTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open library database: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// nextFreeUserID returns the lowest user id that is not taken yet.
func nextFreeUserID(store library.Store) (int, error) {
	users := store.GetAllUsers()
	if !users.Succeeded() {
		return 0, fmt.Errorf("failed to list users: store returned %s", users.Status)
	}
	id := 1
	for {
		if _, taken := users.Result[id]; !taken {
			return id, nil
		}
		id++
	}
}

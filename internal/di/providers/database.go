package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/reellog/reellog-server/internal/config"
	"github.com/reellog/reellog-server/internal/logger"
	"github.com/reellog/reellog-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the SQLite-backed store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	// The auth key provider creates the data directory; invoke it first so
	// the database file has somewhere to live.
	_ = do.MustInvoke[AuthKey](i)

	dbPath := filepath.Join(cfg.Data.Path, "reellog.db")
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

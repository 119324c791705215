package providers

import (
	"github.com/samber/do/v2"

	"github.com/reellog/reellog-server/internal/config"
	"github.com/reellog/reellog-server/internal/logger"
	"github.com/reellog/reellog-server/internal/metadata/tmdb"
	"github.com/reellog/reellog-server/internal/service"
)

// TMDBClientHandle wraps the TMDB client with shutdown capability.
type TMDBClientHandle struct {
	*tmdb.Client
}

// Shutdown implements do.Shutdownable.
func (h *TMDBClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideTMDBClient provides the TMDB catalog client.
func ProvideTMDBClient(i do.Injector) (*TMDBClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.TMDB.APIKey == "" {
		log.Warn("TMDB API key not configured, catalog lookups will fail")
	}

	client := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, log.Logger)
	log.Info("TMDB client initialized")

	return &TMDBClientHandle{Client: client}, nil
}

// ProvideMetadataService provides the catalog metadata service.
func ProvideMetadataService(i do.Injector) (*service.MetadataService, error) {
	clientHandle := do.MustInvoke[*TMDBClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMetadataService(clientHandle.Client, log.Logger), nil
}

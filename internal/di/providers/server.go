package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/reellog/reellog-server/internal/api"
	"github.com/reellog/reellog-server/internal/config"
	"github.com/reellog/reellog-server/internal/logger"
	"github.com/reellog/reellog-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	authService := do.MustInvoke[*service.AuthService](i)
	movieService := do.MustInvoke[*service.MovieService](i)
	tagService := do.MustInvoke[*service.TagService](i)
	statsService := do.MustInvoke[*service.StatsService](i)
	metadataService := do.MustInvoke[*service.MetadataService](i)

	services := &api.Services{
		Auth:     authService,
		Movie:    movieService,
		Tag:      tagService,
		Stats:    statsService,
		Metadata: metadataService,
	}

	handler := api.NewServer(storeHandle.Store, services, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}

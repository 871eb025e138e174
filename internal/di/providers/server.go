package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/stylesyncapp/stylesync-server/internal/api"
	"github.com/stylesyncapp/stylesync-server/internal/config"
	"github.com/stylesyncapp/stylesync-server/internal/logger"
	"github.com/stylesyncapp/stylesync-server/internal/rules"
	"github.com/stylesyncapp/stylesync-server/internal/service"
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
	ruleIndex := do.MustInvoke[*rules.Index](i)
	log := do.MustInvoke[*logger.Logger](i)

	rulesService := do.MustInvoke[*service.RulesService](i)
	validationService := do.MustInvoke[*service.ValidationService](i)

	services := &api.Services{
		Rules:      rulesService,
		Validation: validationService,
	}

	handler := api.NewServer(cfg, storeHandle.Store, ruleIndex, services, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
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

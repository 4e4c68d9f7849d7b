// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"chatscrub/internal/platform/config"
	"chatscrub/internal/platform/logger"
	"chatscrub/internal/platform/net/middleware"

	transcripthttp "chatscrub/internal/services/transcript/http"
	transcriptsvc "chatscrub/internal/services/transcript/service"

	"github.com/go-chi/chi/v5"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Logger *logger.Logger
}

// CommonStack returns the baseline middleware slice for the API
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLog,
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(60 * time.Second),
	}
}

// Mount mounts the API service onto the given router
func Mount(r *chi.Mux, opt Options) {
	r.Use(CommonStack()...)

	svc := transcriptsvc.New()

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/transcripts", func(tr chi.Router) {
			transcripthttp.Register(tr, svc)
		})
	})
}

// Command chatscrub-api serves the transcript processing HTTP API
package main

import (
	"context"

	"chatscrub/internal/platform/config"
	"chatscrub/internal/platform/logger"
	phttp "chatscrub/internal/platform/net/http"

	"chatscrub/internal/services/api"

	"github.com/joho/godotenv"
)

func main() {
	// optional .env for local runs; real deployments set the environment
	_ = godotenv.Load()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config: apiCfg,
			Logger: l,
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

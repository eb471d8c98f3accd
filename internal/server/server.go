// Package server contains everything related to the Server
package server

import (
	"log/slog"
	"net/http"

	"github.com/starquake/quizgame/internal/config"
	"github.com/starquake/quizgame/internal/game"
	"github.com/starquake/quizgame/internal/web"
)

// NewServer creates a new server.
func NewServer(
	logger *slog.Logger,
	cfg *config.Config,
	service *game.Service,
	manager *game.Manager,
) http.Handler {
	mux := http.NewServeMux()
	addRoutes(mux, logger, cfg, service, manager)
	var handler http.Handler = mux
	handler = web.LoadSession(logger, manager)(handler)
	if cfg.IsProduction() {
		handler = minifyHTML(handler)
	}
	handler = logRequests(logger)(handler)

	return handler
}

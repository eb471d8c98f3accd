package server

import (
	"log/slog"
	"net/http"

	"github.com/starquake/quizgame/internal/client"
	"github.com/starquake/quizgame/internal/config"
	"github.com/starquake/quizgame/internal/game"
	"github.com/starquake/quizgame/internal/web"
)

func addRoutes(
	mux *http.ServeMux,
	logger *slog.Logger,
	cfg *config.Config,
	service *game.Service,
	manager *game.Manager,
) {
	mux.Handle("GET /{$}", web.HandleWelcome(logger, service))
	mux.Handle("POST /{$}", web.HandleStart(logger, service, manager))
	mux.Handle("GET /play", web.HandleQuestion(logger))
	mux.Handle("POST /play", web.HandleAnswer(logger))
	mux.Handle("GET /end", web.HandleEnd(logger))
	mux.Handle("POST /end", web.HandleSubmitName(logger, service))

	mux.Handle("GET /api/highscores", web.HandleHighScores(logger, service))

	mux.Handle("GET "+client.Prefix+"/", client.Handler(cfg))

	mux.Handle("/", http.NotFoundHandler())
}

// Package store provides the SQLite implementations of the application's stores.
package store

import (
	"database/sql"
	"log/slog"

	"github.com/starquake/quizgame/internal/highscore"
	"github.com/starquake/quizgame/internal/question"
)

// Stores is a collection of stores for the application.
type Stores struct {
	Questions  question.Store
	HighScores highscore.Store
}

// New initializes a new Stores instance with the provided database connection.
func New(conn *sql.DB, logger *slog.Logger) *Stores {
	return &Stores{
		Questions:  NewQuestionStore(conn, logger),
		HighScores: NewHighScoreStore(conn, logger),
	}
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/starquake/quizgame/internal/highscore"
	"github.com/starquake/quizgame/internal/logging"
)

// HighScoreStore stores leaderboard entries in the highscores table.
type HighScoreStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewHighScoreStore creates a new HighScoreStore.
func NewHighScoreStore(conn *sql.DB, logger *slog.Logger) *HighScoreStore {
	return &HighScoreStore{db: conn, logger: logger, now: time.Now}
}

// Insert appends an entry to the leaderboard.
func (s *HighScoreStore) Insert(ctx context.Context, name string, score float64) error {
	query := `INSERT INTO highscores (name, score, created_at) VALUES (?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, name, score, Timestamp(s.now().UTC())); err != nil {
		return fmt.Errorf("error inserting high score: %w", err)
	}

	return nil
}

// Top returns at most n entries, highest score first. Equal scores keep insertion order through the id tiebreak.
func (s *HighScoreStore) Top(ctx context.Context, n int) ([]highscore.Entry, error) {
	if n <= 0 {
		return []highscore.Entry{}, nil
	}

	query := `SELECT name, score, created_at FROM highscores ORDER BY score DESC, id ASC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("error querying high scores: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.ErrorContext(ctx, "error closing highscore rows", logging.ErrAttr(closeErr))
		}
	}()

	entries := []highscore.Entry{}
	for rows.Next() {
		var e highscore.Entry
		var createdAt Timestamp
		if err = rows.Scan(&e.Name, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning highscore row: %w", err)
		}
		e.CreatedAt = time.Time(createdAt)
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating highscore rows: %w", err)
	}

	return entries, nil
}

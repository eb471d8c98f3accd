package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/starquake/quizgame/internal/logging"
	"github.com/starquake/quizgame/internal/question"
)

// QuestionStore stores questions in the questions table.
type QuestionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewQuestionStore creates a new QuestionStore.
func NewQuestionStore(conn *sql.DB, logger *slog.Logger) *QuestionStore {
	return &QuestionStore{db: conn, logger: logger}
}

// Ping verifies the connection to the database, returning an error if the ping operation fails.
func (s *QuestionStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Count returns the number of stored questions. The table is created by the migrations, so a missing table is an
// error here.
func (s *QuestionStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting questions: %w", err)
	}

	return n, nil
}

// GetQuestionByID returns a question by its ID.
// Returns question.ErrQuestionNotFound if there is no question with that ID.
func (s *QuestionStore) GetQuestionByID(ctx context.Context, id int64) (*question.Question, error) {
	query := `SELECT id, question, ans1, ans2, ans3, ans4, correct FROM questions WHERE id = ?`

	q := &question.Question{}
	var correct string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID, &q.Text, &q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3], &correct,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: question %d not found", question.ErrQuestionNotFound, id)
		}

		return nil, fmt.Errorf("error scanning questionRow: %w", err)
	}

	if q.Correct, err = question.ParseOption(correct); err != nil {
		return nil, fmt.Errorf("error reading question %d: %w", id, err)
	}

	return q, nil
}

const insertQuestionQuery = `INSERT INTO questions (question, ans1, ans2, ans3, ans4, correct)
	VALUES (?, ?, ?, ?, ?, ?)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertQuestion(ctx context.Context, ex execer, q *question.Question) (int64, error) {
	result, err := ex.ExecContext(
		ctx, insertQuestionQuery, q.Text, q.Options[0], q.Options[1], q.Options[2], q.Options[3], string(q.Correct),
	)
	if err != nil {
		return 0, fmt.Errorf("error creating question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error getting last insert ID: %w", err)
	}

	return id, nil
}

// CreateQuestion inserts a question and sets its ID.
func (s *QuestionStore) CreateQuestion(ctx context.Context, q *question.Question) error {
	id, err := insertQuestion(ctx, s.db, q)
	if err != nil {
		return err
	}
	q.ID = id
	s.logger.DebugContext(ctx, "question created", slog.Int64("id", q.ID))

	return nil
}

// CreateQuestions inserts all questions in one transaction. On error nothing is stored and no IDs are set.
func (s *QuestionStore) CreateQuestions(ctx context.Context, qs []*question.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.ErrorContext(ctx, "error rolling back transaction", logging.ErrAttr(rbErr))
		}
	}()

	ids := make([]int64, len(qs))
	for i, q := range qs {
		if ids[i], err = insertQuestion(ctx, tx, q); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	for i, q := range qs {
		q.ID = ids[i]
	}
	s.logger.DebugContext(ctx, "questions created", slog.Int("count", len(qs)))

	return nil
}

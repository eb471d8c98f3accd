// Package dbtest provides helpers for testing database code.
package dbtest

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/starquake/quizgame/internal/db"
	"github.com/starquake/quizgame/internal/question"
)

// FileURI returns the URI of a fresh SQLite database file in the test's temp dir. The file is removed with the dir.
func FileURI(t *testing.T) string {
	t.Helper()

	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		filepath.Join(t.TempDir(), "quizgame-test.sqlite"),
	)
}

// Open opens an in-memory database with migrations applied. It is closed when the test finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	conn := OpenUnmigrated(t)

	if err := db.Migrate(t.Context(), conn, "sqlite"); err != nil {
		t.Fatalf("error running migrations: %v", err)
	}

	return conn
}

// OpenUnmigrated opens an in-memory database without migrations applied.
func OpenUnmigrated(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("error opening SQLite database: %v", err)
	}
	// Every connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

// NewQuestions returns n valid questions. Question i (1-based) has text "Question i" and correct option B.
func NewQuestions(n int) []*question.Question {
	questions := make([]*question.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, &question.Question{
			Text: fmt.Sprintf("Question %d", i),
			Options: [question.NumOptions]string{
				fmt.Sprintf("Answer %d-A", i),
				fmt.Sprintf("Answer %d-B", i),
				fmt.Sprintf("Answer %d-C", i),
				fmt.Sprintf("Answer %d-D", i),
			},
			Correct: question.OptionB,
		})
	}

	return questions
}

// SeedQuestions stores n questions from NewQuestions in s.
func SeedQuestions(t *testing.T, s question.Store, n int) []*question.Question {
	t.Helper()

	questions := NewQuestions(n)
	for _, q := range questions {
		if err := s.CreateQuestion(t.Context(), q); err != nil {
			t.Fatalf("error creating question: %v", err)
		}
	}

	return questions
}

// Package seed fills an empty question store from a JSON question bank.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/starquake/quizgame/internal/logging"
	"github.com/starquake/quizgame/internal/question"
)

// ErrInvalidBank is returned when a question bank cannot be used.
var ErrInvalidBank = errors.New("invalid question bank")

//go:embed questions.json
var defaultBank []byte

type record struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	Correct  string   `json:"correct"`
}

// Open opens the question bank at path, or the embedded bank when path is empty.
func Open(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(bytes.NewReader(defaultBank)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening question bank: %w", err)
	}

	return f, nil
}

// Parse decodes and validates a question bank. Nothing is stored when any question is invalid.
func Parse(r io.Reader) ([]*question.Question, error) {
	var records []record
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrInvalidBank)
	}

	questions := make([]*question.Question, 0, len(records))
	for i, rec := range records {
		if len(rec.Answers) != question.NumOptions {
			return nil, fmt.Errorf("%w: question %d has %d answers, want %d",
				ErrInvalidBank, i+1, len(rec.Answers), question.NumOptions)
		}
		q := &question.Question{
			Text:    strings.TrimSpace(rec.Question),
			Correct: question.Option(strings.ToUpper(strings.TrimSpace(rec.Correct))),
		}
		for j, a := range rec.Answers {
			q.Options[j] = strings.TrimSpace(a)
		}
		if problems := q.Valid(context.Background()); len(problems) > 0 {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalidBank, i+1, problems)
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// Load parses the bank from r and stores every question. The bank is stored completely or not at all, so a failed
// seed is retried by the next IfEmpty. It returns the number of stored questions.
func Load(ctx context.Context, store question.Store, r io.Reader) (int, error) {
	questions, err := Parse(r)
	if err != nil {
		return 0, err
	}

	if err = store.CreateQuestions(ctx, questions); err != nil {
		return 0, fmt.Errorf("error storing questions: %w", err)
	}

	return len(questions), nil
}

// IfEmpty loads the bank at path (the embedded bank when empty) when the store has no questions yet.
func IfEmpty(ctx context.Context, store question.Store, path string, logger *slog.Logger) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting questions: %w", err)
	}
	if n > 0 {
		logger.DebugContext(ctx, "question store already seeded", slog.Int("questions", n))

		return 0, nil
	}

	rc, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil {
			logger.ErrorContext(ctx, "error closing question bank", logging.ErrAttr(closeErr))
		}
	}()

	loaded, err := Load(ctx, store, rc)
	if err != nil {
		return loaded, err
	}
	logger.InfoContext(ctx, "seeded question store", slog.Int("questions", loaded), slog.String("bank", bankName(path)))

	return loaded, nil
}

func bankName(path string) string {
	if path == "" {
		return "embedded"
	}

	return path
}

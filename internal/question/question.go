// Package question contains the multiple-choice question domain type and random question selection.
package question

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

var (
	// ErrQuestionNotFound is returned when a question is not found.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidCount is returned when the requested number of questions is outside [1, total].
	ErrInvalidCount = errors.New("invalid question count")
	// ErrInvalidOption is returned when a string is not one of the option letters A-D.
	ErrInvalidOption = errors.New("invalid option")
)

// Option is the letter label of an answer option.
type Option string

// The four option letters, in presentation order.
const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// NumOptions is the number of answer options of every question.
const NumOptions = 4

// Options lists all option letters in presentation order.
func Options() []Option {
	return []Option{OptionA, OptionB, OptionC, OptionD}
}

// ParseOption parses an option letter.
func ParseOption(s string) (Option, error) {
	switch o := Option(s); o {
	case OptionA, OptionB, OptionC, OptionD:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOption, s)
	}
}

// Index returns the zero-based position of the option, or -1 for an invalid option.
func (o Option) Index() int {
	return slices.Index(Options(), o)
}

// Question is a multiple-choice question. Questions are created at seed time and never change.
type Question struct {
	ID      int64
	Text    string
	Options [NumOptions]string
	Correct Option
}

// Label returns the answer text for the given option letter, or an empty string for an invalid option.
func (q *Question) Label(o Option) string {
	i := o.Index()
	if i < 0 {
		return ""
	}

	return q.Options[i]
}

// Valid checks if the question is valid.
func (q *Question) Valid(_ context.Context) map[string]string {
	problems := make(map[string]string)
	if q.Text == "" {
		problems["text"] = "Text is required"
	}
	for i, o := range Options() {
		if q.Options[i] == "" {
			problems["option"+string(o)] = "Option " + string(o) + " is required"
		}
	}
	if q.Correct.Index() < 0 {
		problems["correct"] = "Correct option must be one of A, B, C or D"
	}

	return problems
}

// Store represents a store for questions.
// This can be implemented for different databases.
type Store interface {
	// Ping returns the status of the database connection.
	Ping(ctx context.Context) error
	// Count returns the total number of stored questions.
	Count(ctx context.Context) (int, error)
	// GetQuestionByID returns a question by its ID.
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)
	// CreateQuestion stores a new question and sets its ID.
	CreateQuestion(ctx context.Context, q *Question) error
	// CreateQuestions stores all questions or none of them and sets their IDs.
	CreateQuestions(ctx context.Context, qs []*Question) error
}

// PermFunc returns a pseudo-random permutation of [0, n).
type PermFunc func(n int) []int

// SelectRandom draws n distinct questions uniformly at random. IDs are issued sequentially from 1 and questions are
// never deleted, so the ID space is [1, Count]. The permutation order is the presentation order.
// A nil perm uses math/rand/v2.
func SelectRandom(ctx context.Context, store Store, n int, perm PermFunc) ([]*Question, error) {
	total, err := store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	if n < 1 || n > total {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCount, n, total)
	}

	if perm == nil {
		perm = rand.Perm
	}

	order := perm(total)
	questions := make([]*Question, 0, n)
	for _, i := range order[:n] {
		q, err := store.GetQuestionByID(ctx, int64(i)+1)
		if err != nil {
			return nil, fmt.Errorf("failed to get question %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// Package game contains the quiz session state machine.
package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/starquake/quizgame/internal/highscore"
	"github.com/starquake/quizgame/internal/question"
)

var (
	// ErrState is returned when an operation is invoked in the wrong session state.
	ErrState = errors.New("operation not allowed in current session state")
	// ErrInvalidChoice is returned when an answer is not one of the option letters.
	ErrInvalidChoice = errors.New("invalid answer choice")
	// ErrInvalidName is returned when a leaderboard name is empty or too long.
	ErrInvalidName = errors.New("invalid leaderboard name")
)

// MaxNameLength is the maximum length of a leaderboard name in characters.
const MaxNameLength = 40

const (
	feedbackCorrect   = "Correct!"
	feedbackIncorrect = `Incorrect! The correct answer was "%s"`
)

// State is the lifecycle state of a session.
type State int

// Session states. A session moves strictly forward through them.
const (
	StateNotStarted State = iota
	StateInProgress
	StateAwaitingLeaderboardSubmission
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateInProgress:
		return "in progress"
	case StateAwaitingLeaderboardSubmission:
		return "awaiting leaderboard submission"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Feedback is the outcome of SubmitAnswer.
type Feedback struct {
	// Number is the 1-based number of the answered question.
	Number   int
	Question *question.Question
	Correct  bool
	// Repeat is set when no choice was given. Nothing changed and the current question should be shown again.
	Repeat  bool
	Message string
}

// Session is one run through a quiz. All methods are safe for concurrent use; two browser tabs sharing a session
// are serialized.
type Session struct {
	ID string

	mu         sync.Mutex
	state      State
	questions  []*question.Question
	position   int
	score      float64
	highScores []highscore.Entry
	// lowest is the score to beat; unset when the leaderboard snapshot had free places.
	lowest    float64
	lowestSet bool
}

// NewSession returns a session in the NotStarted state.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// begin moves a NotStarted session to InProgress.
func (s *Session) begin(questions []*question.Question, top []highscore.Entry, leaderboardSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return fmt.Errorf("%w: cannot start a session that is %s", ErrState, s.state)
	}
	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions", question.ErrInvalidCount)
	}

	s.questions = questions
	s.position = 0
	s.score = 0
	s.highScores = top
	s.lowest, s.lowestSet = highscore.LowestQualifying(top, leaderboardSize)
	s.state = StateInProgress

	return nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Len returns the number of questions in the session.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.questions)
}

// Position returns the zero-based index of the current question. It equals Len once the quiz is finished.
func (s *Session) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.position
}

// Score returns the number of correct answers so far.
func (s *Session) Score() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.score
}

// Finished reports whether every question has been answered.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.finished()
}

func (s *Session) finished() bool {
	return s.state == StateAwaitingLeaderboardSubmission || s.state == StateComplete
}

// CurrentQuestion returns the question at the current position.
func (s *Session) CurrentQuestion() (*question.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || s.position >= len(s.questions) {
		return nil, fmt.Errorf("%w: no current question in a session that is %s", ErrState, s.state)
	}

	return s.questions[s.position], nil
}

// SubmitAnswer answers the current question. An empty choice leaves the session untouched and returns Feedback with
// Repeat set. Answering the last question finishes the quiz.
func (s *Session) SubmitAnswer(choice string) (Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || s.position >= len(s.questions) {
		return Feedback{}, fmt.Errorf("%w: cannot answer in a session that is %s", ErrState, s.state)
	}

	q := s.questions[s.position]
	fb := Feedback{Number: s.position + 1, Question: q}

	if choice == "" {
		fb.Repeat = true

		return fb, nil
	}

	opt, err := question.ParseOption(choice)
	if err != nil {
		return Feedback{}, fmt.Errorf("%w: %w", ErrInvalidChoice, err)
	}

	if opt == q.Correct {
		s.score++
		fb.Correct = true
		fb.Message = feedbackCorrect
	} else {
		fb.Message = fmt.Sprintf(feedbackIncorrect, q.Label(q.Correct))
	}
	s.position++

	if s.position == len(s.questions) {
		if s.qualifies() {
			s.state = StateAwaitingLeaderboardSubmission
		} else {
			s.state = StateComplete
		}
	}

	return fb, nil
}

// FinalScorePercent returns the share of correct answers as a percentage in [0, 100].
func (s *Session) FinalScorePercent() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finished() {
		return 0, fmt.Errorf("%w: quiz is %s", ErrState, s.state)
	}

	return s.percent(), nil
}

func (s *Session) percent() float64 {
	//nolint:mnd // percentage
	return s.score / float64(len(s.questions)) * 100
}

// QualifiesForLeaderboard reports whether the final score earns a leaderboard place. It is false until the quiz is
// finished.
func (s *Session) QualifiesForLeaderboard() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finished() {
		return false
	}

	return s.qualifies()
}

func (s *Session) qualifies() bool {
	return !s.lowestSet || s.percent() > s.lowest
}

// AwaitingSubmission reports whether a leaderboard name can be submitted.
func (s *Session) AwaitingSubmission() bool {
	return s.State() == StateAwaitingLeaderboardSubmission
}

// HighScores returns the leaderboard snapshot taken at start, or after submission the refreshed one.
func (s *Session) HighScores() []highscore.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.highScores)
}

// submitToLeaderboard records the final score under name. It is allowed once per session; repeated submissions are
// rejected with ErrState.
func (s *Session) submitToLeaderboard(
	ctx context.Context,
	store highscore.Store,
	leaderboardSize int,
	name string,
) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingLeaderboardSubmission {
		return fmt.Errorf("%w: cannot submit to the leaderboard in a session that is %s", ErrState, s.state)
	}

	if err = store.Insert(ctx, name, s.percent()); err != nil {
		return fmt.Errorf("failed to insert high score: %w", err)
	}
	s.state = StateComplete

	top, err := store.Top(ctx, leaderboardSize)
	if err != nil {
		return fmt.Errorf("failed to refresh high scores: %w", err)
	}
	s.highScores = top

	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", fmt.Errorf("%w: name is longer than %d characters", ErrInvalidName, MaxNameLength)
	}

	return name, nil
}

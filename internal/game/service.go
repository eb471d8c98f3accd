package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rs/xid"

	"github.com/starquake/quizgame/internal/highscore"
	"github.com/starquake/quizgame/internal/logging"
	"github.com/starquake/quizgame/internal/question"
)

// Service starts sessions and records their results on the leaderboard.
type Service struct {
	questions       question.Store
	highScores      highscore.Store
	logger          *slog.Logger
	leaderboardSize int
	perm            question.PermFunc
	newID           func() string
}

// Option configures a Service.
type Option func(*Service)

// WithPerm sets the permutation used to draw questions.
func WithPerm(perm question.PermFunc) Option {
	return func(s *Service) { s.perm = perm }
}

// WithIDGenerator sets the session ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService initializes and returns a new instance of Service with the provided question and high score stores.
func NewService(
	questionStore question.Store,
	highScoreStore highscore.Store,
	logger *slog.Logger,
	leaderboardSize int,
	opts ...Option,
) *Service {
	s := &Service{
		questions:       questionStore,
		highScores:      highScoreStore,
		logger:          logger,
		leaderboardSize: leaderboardSize,
		newID:           func() string { return xid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// LeaderboardSize returns the number of entries on the leaderboard.
func (s *Service) LeaderboardSize() int {
	return s.leaderboardSize
}

// QuestionCount returns the number of questions a session can be started with at most.
func (s *Service) QuestionCount(ctx context.Context) (int, error) {
	n, err := s.questions.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}

	return n, nil
}

// HighScores returns the current top n leaderboard entries.
func (s *Service) HighScores(ctx context.Context, n int) ([]highscore.Entry, error) {
	top, err := s.highScores.Top(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get high scores: %w", err)
	}

	return top, nil
}

// Start creates a session with n randomly drawn questions and a snapshot of the leaderboard.
// Returns question.ErrInvalidCount when n is outside [1, QuestionCount].
func (s *Service) Start(ctx context.Context, n int) (*Session, error) {
	questions, err := question.SelectRandom(ctx, s.questions, n, s.perm)
	if err != nil {
		return nil, fmt.Errorf("failed to select questions: %w", err)
	}

	top, err := s.highScores.Top(ctx, s.leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get high scores: %w", err)
	}

	sess := NewSession(s.newID())
	if err = sess.begin(questions, top, s.leaderboardSize); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "session started", logging.SessionAttr(sess.ID), slog.Int("questions", n))

	return sess, nil
}

// SubmitToLeaderboard records the finished session's score under name and refreshes the session's leaderboard.
// Returns ErrState when the session is not awaiting a submission, which includes a second submission.
func (s *Service) SubmitToLeaderboard(ctx context.Context, sess *Session, name string) error {
	if err := sess.submitToLeaderboard(ctx, s.highScores, s.leaderboardSize, name); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "high score recorded", logging.SessionAttr(sess.ID))

	return nil
}

package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/starquake/quizgame/internal/game"
	"github.com/starquake/quizgame/internal/highscore"
	"github.com/starquake/quizgame/internal/httputil"
	"github.com/starquake/quizgame/internal/logging"
	"github.com/starquake/quizgame/internal/question"
)

const (
	pathWelcome = "/"
	pathPlay    = "/play"
	pathEnd     = "/end"
)

// HandleWelcome renders the welcome page with the question counts to choose from and the leaderboard.
func HandleWelcome(logger *slog.Logger, service *game.Service) http.Handler {
	t := parseTemplate("pages/welcome.gohtml")
	errPage := newErrorPage(logger)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		total, err := service.QuestionCount(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "error counting questions", logging.ErrAttr(err))
			errPage.render(w, r, http.StatusInternalServerError, "The questions could not be loaded.")

			return
		}

		top, err := service.HighScores(ctx, service.LeaderboardSize())
		if err != nil {
			logger.ErrorContext(ctx, "error getting high scores", logging.ErrAttr(err))
			errPage.render(w, r, http.StatusInternalServerError, "The leaderboard could not be loaded.")

			return
		}

		sess, ok := game.FromContext(ctx)
		executeTemplate(w, r, logger, t, WelcomeData{
			Title:      "Welcome",
			Total:      total,
			Choices:    httputil.CountChoices(total),
			Resume:     ok && sess.State() == game.StateInProgress,
			HighScores: top,
		})
	})
}

// HandleStart starts a session with the number of questions posted in nquestions and redirects to the first question.
// A previous session of the same browser is discarded.
func HandleStart(logger *slog.Logger, service *game.Service, manager *game.Manager) http.Handler {
	errPage := newErrorPage(logger)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		n, err := httputil.FormInt(r, "nquestions")
		if err != nil {
			logger.InfoContext(ctx, "invalid question count", logging.ErrAttr(err))
			errPage.render(w, r, http.StatusBadRequest, "Choose how many questions you want to answer.")

			return
		}

		sess, err := service.Start(ctx, n)
		if err != nil {
			if errors.Is(err, question.ErrInvalidCount) {
				logger.InfoContext(ctx, "question count out of range", logging.ErrAttr(err))
				errPage.render(w, r, http.StatusBadRequest, fmt.Sprintf("%d is not a valid number of questions.", n))

				return
			}
			logger.ErrorContext(ctx, "error starting session", logging.ErrAttr(err))
			errPage.render(w, r, http.StatusInternalServerError, "The quiz could not be started.")

			return
		}

		if old, ok := game.FromContext(ctx); ok {
			manager.Delete(old.ID)
		}
		manager.Put(sess)
		setSessionCookie(w, sess.ID, manager.TTL())

		http.Redirect(w, r, pathPlay, http.StatusSeeOther)
	})
}

// HandleQuestion renders the current question of the session.
func HandleQuestion(logger *slog.Logger) http.Handler {
	t := parseTemplate("pages/question.gohtml")
	errPage := newErrorPage(logger)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := game.FromContext(r.Context())
		if !ok {
			http.Redirect(w, r, pathWelcome, http.StatusSeeOther)

			return
		}
		if sess.Finished() {
			http.Redirect(w, r, pathEnd, http.StatusSeeOther)

			return
		}

		q, err := sess.CurrentQuestion()
		if err != nil {
			logger.ErrorContext(r.Context(), "error getting current question",
				logging.SessionAttr(sess.ID), logging.ErrAttr(err))
			errPage.render(w, r, http.StatusConflict, "There is no question to answer right now.")

			return
		}

		executeTemplate(w, r, logger, t, QuestionData{
			Title:    fmt.Sprintf("Question %d", sess.Position()+1),
			Number:   sess.Position() + 1,
			Total:    sess.Len(),
			Score:    sess.Score(),
			Question: q.Text,
			Options:  optionData(q),
		})
	})
}

// HandleAnswer submits the posted response for the current question and renders the feedback. Without a response
// the question is shown again.
func HandleAnswer(logger *slog.Logger) http.Handler {
	t := parseTemplate("pages/feedback.gohtml")
	errPage := newErrorPage(logger)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess, ok := game.FromContext(ctx)
		if !ok {
			http.Redirect(w, r, pathWelcome, http.StatusSeeOther)

			return
		}
		if sess.Finished() {
			http.Redirect(w, r, pathEnd, http.StatusSeeOther)

			return
		}

		fb, err := sess.SubmitAnswer(r.PostFormValue("response"))
		if err != nil {
			switch {
			case errors.Is(err, game.ErrInvalidChoice):
				logger.InfoContext(ctx, "invalid answer", logging.SessionAttr(sess.ID), logging.ErrAttr(err))
				errPage.render(w, r, http.StatusBadRequest, "Pick one of the answers.")
			case errors.Is(err, game.ErrState):
				logger.InfoContext(ctx, "answer in wrong state", logging.SessionAttr(sess.ID), logging.ErrAttr(err))
				errPage.render(w, r, http.StatusConflict, "This quiz does not accept answers right now.")
			default:
				logger.ErrorContext(ctx, "error submitting answer", logging.SessionAttr(sess.ID), logging.ErrAttr(err))
				errPage.render(w, r, http.StatusInternalServerError, "Your answer could not be processed.")
			}

			return
		}
		if fb.Repeat {
			http.Redirect(w, r, pathPlay, http.StatusSeeOther)

			return
		}

		logger.DebugContext(ctx, "answer submitted",
			logging.SessionAttr(sess.ID), slog.Int("question", fb.Number), slog.Bool("correct", fb.Correct))

		executeTemplate(w, r, logger, t, FeedbackData{
			Title:    fmt.Sprintf("Question %d", fb.Number),
			Number:   fb.Number,
			Total:    sess.Len(),
			Score:    sess.Score(),
			Question: fb.Question.Text,
			Correct:  fb.Correct,
			Message:  fb.Message,
			Finished: sess.Finished(),
		})
	})
}

// endView renders the end page for a finished session.
type endView struct {
	t       *template.Template
	errPage *errorPage
	logger  *slog.Logger
}

func newEndView(logger *slog.Logger) *endView {
	return &endView{t: parseTemplate("pages/end.gohtml"), errPage: newErrorPage(logger), logger: logger}
}

func (v *endView) render(w http.ResponseWriter, r *http.Request, sess *game.Session, status int, message string) {
	percent, err := sess.FinalScorePercent()
	if err != nil {
		v.logger.ErrorContext(r.Context(), "error getting final score",
			logging.SessionAttr(sess.ID), logging.ErrAttr(err))
		v.errPage.render(w, r, http.StatusConflict, "The quiz is not finished yet.")

		return
	}

	renderStatus(w, r, v.logger, v.t, status, EndData{
		Title:         "Result",
		Score:         sess.Score(),
		Total:         sess.Len(),
		Percent:       percent,
		Awaiting:      sess.AwaitingSubmission(),
		Error:         message,
		MaxNameLength: game.MaxNameLength,
		HighScores:    sess.HighScores(),
	})
}

// HandleEnd renders the final score, the leaderboard, and the name form when the score qualifies.
func HandleEnd(logger *slog.Logger) http.Handler {
	view := newEndView(logger)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := game.FromContext(r.Context())
		if !ok {
			http.Redirect(w, r, pathWelcome, http.StatusSeeOther)

			return
		}
		if !sess.Finished() {
			http.Redirect(w, r, pathPlay, http.StatusSeeOther)

			return
		}

		view.render(w, r, sess, http.StatusOK, "")
	})
}

// HandleSubmitName records the posted name on the leaderboard and renders the end page.
func HandleSubmitName(logger *slog.Logger, service *game.Service) http.Handler {
	view := newEndView(logger)
	errPage := newErrorPage(logger)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess, ok := game.FromContext(ctx)
		if !ok {
			http.Redirect(w, r, pathWelcome, http.StatusSeeOther)

			return
		}

		err := service.SubmitToLeaderboard(ctx, sess, r.PostFormValue("name"))
		if err != nil {
			switch {
			case errors.Is(err, game.ErrInvalidName):
				logger.InfoContext(ctx, "invalid leaderboard name", logging.SessionAttr(sess.ID), logging.ErrAttr(err))
				view.render(w, r, sess, http.StatusBadRequest,
					fmt.Sprintf("Enter a name of at most %d characters.", game.MaxNameLength))
			case errors.Is(err, game.ErrState):
				logger.InfoContext(ctx, "leaderboard submission in wrong state",
					logging.SessionAttr(sess.ID), logging.ErrAttr(err))
				errPage.render(w, r, http.StatusConflict, "This score cannot be submitted to the leaderboard.")
			default:
				logger.ErrorContext(ctx, "error submitting to leaderboard",
					logging.SessionAttr(sess.ID), logging.ErrAttr(err))
				errPage.render(w, r, http.StatusInternalServerError, "Your score could not be saved.")
			}

			return
		}

		view.render(w, r, sess, http.StatusOK, "")
	})
}

// HighScoreResponse is one leaderboard entry in the JSON API.
type HighScoreResponse struct {
	Name      string    `json:"name"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// HighScoresResponse is the body of the high scores endpoint.
type HighScoresResponse struct {
	HighScores []HighScoreResponse `json:"highscores"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func highScoresResponse(entries []highscore.Entry) HighScoresResponse {
	resp := HighScoresResponse{HighScores: make([]HighScoreResponse, 0, len(entries))}
	for _, e := range entries {
		resp.HighScores = append(resp.HighScores, HighScoreResponse{Name: e.Name, Score: e.Score, CreatedAt: e.CreatedAt})
	}

	return resp
}

// HandleHighScores returns the top entries of the leaderboard as JSON. The optional limit query parameter defaults to
// the leaderboard size.
func HandleHighScores(logger *slog.Logger, service *game.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit := service.LeaderboardSize()
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := httputil.IntFromString(v)
			if err != nil || n < 1 {
				logger.InfoContext(ctx, "invalid limit", slog.String("limit", v))
				writeJSON(w, r, logger, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})

				return
			}
			limit = n
		}

		top, err := service.HighScores(ctx, limit)
		if err != nil {
			logger.ErrorContext(ctx, "error getting high scores", logging.ErrAttr(err))
			writeJSON(w, r, logger, http.StatusInternalServerError, errorResponse{Error: "internal error"})

			return
		}

		writeJSON(w, r, logger, http.StatusOK, highScoresResponse(top))
	})
}

func writeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, v T) {
	if err := httputil.EncodeJSON(w, status, v); err != nil {
		logger.ErrorContext(r.Context(), "error writing response", logging.ErrAttr(err))
	}
}

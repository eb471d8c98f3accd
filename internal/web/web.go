// Package web contains the HTML handlers that let a player run through a quiz.
package web

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/starquake/quizgame/internal/highscore"
	"github.com/starquake/quizgame/internal/logging"
	"github.com/starquake/quizgame/internal/question"
	"github.com/starquake/quizgame/internal/web/tmpl"
)

// WelcomeData is the data for the welcome page.
type WelcomeData struct {
	Title      string
	Total      int
	Choices    []int
	Resume     bool
	HighScores []highscore.Entry
}

// QuestionData is the data for the question page.
type QuestionData struct {
	Title    string
	Number   int
	Total    int
	Score    float64
	Question string
	Options  []OptionData
}

// OptionData is one answer of a question.
type OptionData struct {
	Letter question.Option
	Text   string
}

// FeedbackData is the data for the page shown after an answer.
type FeedbackData struct {
	Title    string
	Number   int
	Total    int
	Score    float64
	Question string
	Correct  bool
	Message  string
	Finished bool
}

// EndData is the data for the end page.
type EndData struct {
	Title         string
	Score         float64
	Total         int
	Percent       float64
	Awaiting      bool
	Error         string
	MaxNameLength int
	HighScores    []highscore.Entry
}

// ErrorData is the data for the error page.
type ErrorData struct {
	Title   string
	Status  int
	Message string
}

//nolint:gochecknoglobals // parsed once at startup
var layouts = template.Must(template.ParseFS(tmpl.FS, "layouts/*.gohtml"))

const errorTemplate = "errors/error.gohtml"

// parseTemplate parses a template from the given path with layouts.
func parseTemplate(path string) *template.Template {
	return template.Must(template.Must(layouts.Clone()).ParseFS(tmpl.FS, path))
}

func optionData(q *question.Question) []OptionData {
	opts := question.Options()
	data := make([]OptionData, 0, len(opts))
	for _, o := range opts {
		data = append(data, OptionData{Letter: o, Text: q.Label(o)})
	}

	return data
}

// executeTemplate executes a template and logs any errors.
// It does not return an error because the headers have already been written. So we can't render an error page anyway.
func executeTemplate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, t *template.Template, data any) {
	renderStatus(w, r, logger, t, http.StatusOK, data)
}

// renderStatus is executeTemplate with a status code other than 200.
func renderStatus(
	w http.ResponseWriter,
	r *http.Request,
	logger *slog.Logger,
	t *template.Template,
	status int,
	data any,
) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "base.gohtml", data); err != nil {
		logger.ErrorContext(r.Context(), "error executing template", logging.ErrAttr(err))
	}
}

// errorPage renders the error page for status with a message for the player.
type errorPage struct {
	t      *template.Template
	logger *slog.Logger
}

func newErrorPage(logger *slog.Logger) *errorPage {
	return &errorPage{t: parseTemplate(errorTemplate), logger: logger}
}

func (p *errorPage) render(w http.ResponseWriter, r *http.Request, status int, message string) {
	renderStatus(w, r, p.logger, p.t, status, ErrorData{
		Title:   http.StatusText(status),
		Status:  status,
		Message: message,
	})
}

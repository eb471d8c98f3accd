//go:build integration

package integration_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/starquake/quizgame/internal/config"
	"github.com/starquake/quizgame/internal/db"
	"github.com/starquake/quizgame/internal/dbtest"
	"github.com/starquake/quizgame/internal/store"
	"github.com/starquake/quizgame/internal/testutil"
	"github.com/starquake/quizgame/internal/web"
)

type browser struct {
	t       *testing.T
	client  *http.Client
	baseURL string
}

func (b *browser) do(method, path string, form url.Values) (int, string, string) {
	b.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(b.t.Context(), method, b.baseURL+path, body)
	if err != nil {
		b.t.Fatalf("failed to create request: %v", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		b.t.Fatalf("%s %s error: %v", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			b.t.Errorf("failed to close response body: %v", closeErr)
		}
	}()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		b.t.Fatalf("failed to read body: %v", err)
	}

	return resp.StatusCode, resp.Header.Get("Location"), string(data)
}

func (b *browser) expect(method, path string, form url.Values, wantStatus int, wantLocation string) string {
	b.t.Helper()

	status, location, body := b.do(method, path, form)
	if status != wantStatus {
		b.t.Fatalf("%s %s status = %d, want %d\n%s", method, path, status, wantStatus, body)
	}
	if location != wantLocation {
		b.t.Errorf("%s %s Location = %q, want %q", method, path, location, wantLocation)
	}

	return body
}

// seededDB returns the URI of a migrated database file holding n questions whose correct answer is B.
func seededDB(t *testing.T, n int) string {
	t.Helper()

	uri := dbtest.FileURI(t)
	conn, err := db.Open(t.Context(), config.DBDriverDefault, uri, 1, 1, 0)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer conn.Close()
	if err = db.Migrate(t.Context(), conn, config.DBDriverDefault); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	dbtest.SeedQuestions(t, store.NewQuestionStore(conn, slog.New(slog.DiscardHandler)), n)

	return uri
}

func TestGameplay_Integration(t *testing.T) {
	t.Parallel()

	baseURL := startServer(t, map[string]string{
		"DB_URI":        seededDB(t, 4),
		"SEED_ON_EMPTY": "false",
	})
	b := &browser{t: t, client: testutil.NewBrowser(t), baseURL: baseURL}

	body := b.expect(http.MethodGet, "/", nil, http.StatusOK, "")
	if !strings.Contains(body, "There are 4 questions") {
		t.Errorf("welcome page does not show the question count")
	}

	b.expect(http.MethodGet, "/play", nil, http.StatusSeeOther, "/")
	b.expect(http.MethodPost, "/", url.Values{"nquestions": {"9"}}, http.StatusBadRequest, "")
	b.expect(http.MethodPost, "/", url.Values{"nquestions": {"3"}}, http.StatusSeeOther, "/play")

	// An empty answer changes nothing.
	b.expect(http.MethodPost, "/play", url.Values{"response": {""}}, http.StatusSeeOther, "/play")

	for i, answer := range []string{"B", "B", "C"} {
		body = b.expect(http.MethodGet, "/play", nil, http.StatusOK, "")
		if !strings.Contains(body, "of 3") {
			t.Errorf("question %d page does not show progress", i+1)
		}
		body = b.expect(http.MethodPost, "/play", url.Values{"response": {answer}}, http.StatusOK, "")
		wantCorrect := answer == "B"
		if got := strings.Contains(body, "Correct!"); got != wantCorrect {
			t.Errorf("question %d: correct feedback shown = %v, want %v", i+1, got, wantCorrect)
		}
	}

	b.expect(http.MethodGet, "/play", nil, http.StatusSeeOther, "/end")
	body = b.expect(http.MethodGet, "/end", nil, http.StatusOK, "")
	if !strings.Contains(body, "66.7%") || !strings.Contains(body, `name="name"`) {
		t.Errorf("end page does not offer the leaderboard form:\n%s", body)
	}

	b.expect(http.MethodPost, "/end", url.Values{"name": {"Integration"}}, http.StatusOK, "")
	b.expect(http.MethodPost, "/end", url.Values{"name": {"Integration"}}, http.StatusConflict, "")

	body = b.expect(http.MethodGet, "/api/highscores", nil, http.StatusOK, "")
	var resp web.HighScoresResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.HighScores) != 1 {
		t.Fatalf("got %d high scores, want 1", len(resp.HighScores))
	}
	if got := resp.HighScores[0]; got.Name != "Integration" || math.Abs(got.Score-200.0/3) > 1e-9 {
		t.Errorf("high score = %+v, want Integration with 66.67", got)
	}
}

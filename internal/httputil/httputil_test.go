package httputil_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starquake/quizgame/internal/httputil"
)

func TestCountChoices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int
		want  []int
	}{
		{total: 0, want: nil},
		{total: -3, want: nil},
		{total: 3, want: []int{3}},
		{total: 5, want: []int{5}},
		{total: 12, want: []int{5, 10, 12}},
		{total: 20, want: []int{5, 10, 15, 20}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, httputil.CountChoices(tt.total)); diff != "" {
			t.Errorf("CountChoices(%d) mismatch (-want +got):\n%s", tt.total, diff)
		}
	}
}

func TestIntFromString(t *testing.T) {
	t.Parallel()

	if got, err := httputil.IntFromString(" 15 "); err != nil || got != 15 {
		t.Errorf("IntFromString(\" 15 \") = %d, %v; want 15, nil", got, err)
	}
	if _, err := httputil.IntFromString(""); !errors.Is(err, httputil.ErrMissingValue) {
		t.Errorf("got error %v, want %v", err, httputil.ErrMissingValue)
	}
	if _, err := httputil.IntFromString("ten"); err == nil {
		t.Error("expected error parsing \"ten\"")
	}
}

func TestFormInt(t *testing.T) {
	t.Parallel()

	form := url.Values{"nquestions": {"10"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := httputil.FormInt(req, "nquestions")
	if err != nil {
		t.Fatalf("FormInt error: %v", err)
	}
	if got != 10 {
		t.Errorf("FormInt = %d, want 10", got)
	}

	if _, err = httputil.FormInt(req, "missing"); !errors.Is(err, httputil.ErrMissingValue) {
		t.Errorf("got error %v, want %v", err, httputil.ErrMissingValue)
	}
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	if err := httputil.EncodeJSON(rec, http.StatusCreated, map[string]int{"score": 50}); err != nil {
		t.Fatalf("EncodeJSON error: %v", err)
	}

	if got, want := rec.Code, http.StatusCreated; got != want {
		t.Errorf("status = %d, want %d", got, want)
	}
	if got, want := rec.Header().Get("Content-Type"), "application/json"; got != want {
		t.Errorf("Content-Type = %q, want %q", got, want)
	}
	if got, want := rec.Body.String(), "{\"score\":50}\n"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starquake/quizgame/cmd/server/health"
	"github.com/starquake/quizgame/internal/question"
	"github.com/starquake/quizgame/internal/store"
)

type stubQuestionStore struct {
	question.Store

	PingFunc func(ctx context.Context) error
}

func (s *stubQuestionStore) Ping(ctx context.Context) error {
	return s.PingFunc(ctx)
}

func TestHandleHealthz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		want       health.Status
	}{
		{
			name:       "healthy",
			wantStatus: http.StatusOK,
			want:       health.Status{Status: "ok", Checks: map[string]string{"database": "healthy"}},
		},
		{
			name:       "database down",
			pingErr:    errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			want: health.Status{
				Status: "degraded",
				Checks: map[string]string{"database": "unhealthy: connection refused"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stores := &store.Stores{
				Questions: &stubQuestionStore{PingFunc: func(context.Context) error { return tt.pingErr }},
			}
			h := health.HandleHealthz(slog.New(slog.DiscardHandler), stores)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var got health.Status
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

//go:build integration

package integration_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/starquake/quizgame/cmd/server/app"
	"github.com/starquake/quizgame/internal/testutil"
)

// startServer runs the application with env on a free port and returns its base URL. The server is stopped and its
// exit checked when the test finishes.
func startServer(t *testing.T, env map[string]string) string {
	t.Helper()

	ctx, stop := testutil.SignalCtx(t)
	ln := testutil.Listen(ctx, t)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run(ctx, func(key string) string { return env[key] }, testutil.NewTestWriter(t), ln)
	}()

	baseURL := fmt.Sprintf("http://%s", ln.Addr().String())
	if err := testutil.WaitForReady(ctx, t, 10*time.Second, baseURL+"/healthz"); err != nil {
		t.Fatalf("error waiting for server to be ready: %v", err)
	}

	t.Cleanup(func() {
		stop()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("server exited with error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("server timed out during shutdown")
		}
	})

	return baseURL
}

package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/starquake/quizgame/internal/game"
	"github.com/starquake/quizgame/internal/logging"
)

// CookieName is the name of the cookie holding the session token.
const CookieName = "quizgame_session"

// LoadSession resolves the session cookie against manager, stores the session in the request context and renews the
// cookie. Requests
// without a cookie, or with one for an expired session, pass through without a session.
func LoadSession(logger *slog.Logger, manager *game.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(CookieName)
			if err != nil {
				next.ServeHTTP(w, r)

				return
			}

			sess, err := manager.Get(c.Value)
			if err != nil {
				if errors.Is(err, game.ErrSessionNotFound) {
					logger.DebugContext(r.Context(), "unknown session cookie", logging.SessionAttr(c.Value))
					clearSessionCookie(w)
				}
				next.ServeHTTP(w, r)

				return
			}

			// Sessions expire by idle time, so every use extends the cookie as well.
			setSessionCookie(w, sess.ID, manager.TTL())
			next.ServeHTTP(w, r.WithContext(game.NewContext(r.Context(), sess)))
		})
	}
}

func setSessionCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

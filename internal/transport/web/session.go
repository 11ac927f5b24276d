package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lingodesk/internal/logger"
)

// sessionlessPaths are routes that never get a session cookie (health, metrics).
var sessionlessPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type sessionKey struct{}

// CookieConfig configures the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// SessionMiddleware assigns every browser a session id stored in a cookie.
// Missing or malformed ids are replaced by a fresh uuid v4.
func SessionMiddleware(cfg CookieConfig) func(http.Handler) http.Handler {
	if cfg.Name == "" {
		cfg.Name = "lingodesk_session"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := sessionlessPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			sid := ""
			if c, err := r.Cookie(cfg.Name); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					sid = id.String()
				}
			}
			if sid == "" {
				sid = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cfg.Name,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), sessionKey{}, sid)
			ctx = logger.WithFields(ctx, zap.String("session_id", sid))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the session id placed by SessionMiddleware.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey{}).(string)
	return sid
}

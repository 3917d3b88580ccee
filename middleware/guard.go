package middleware

import (
	"context"
	"net/http"
	"strings"

	stationauth "github.com/tanquecheio/stationauth"
	"github.com/tanquecheio/stationauth/session"
)

type sessionContextKey struct{}

// SessionFromContext returns the session injected by [RequireSession].
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess, ok
}

// RequireSession rejects requests whose Authorization bearer ticket does
// not validate against the live session. Validated requests proceed with
// the session in their context.
func RequireSession(engine *stationauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ticket, ok := bearerTicket(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			sess, err := engine.ValidateTicket(r.Context(), ticket)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerTicket(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	ticket := value[len(bearer):]
	if ticket == "" {
		return "", false
	}

	return ticket, true
}

package auth

import (
	"context"
	"net/http"
)

type ctxKey string

const sessionKey ctxKey = "session_id"

// SessionHeader carries the shopper's session id. The storefront client
// generates it once and sends it on every request; carts and orders are
// scoped to it.
const SessionHeader = "X-Session-Id"

// SessionMiddleware copies the session header into the request context so
// handlers and usecases read it from one place.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sid := r.Header.Get(SessionHeader); sid != "" {
			r = r.WithContext(context.WithValue(r.Context(), sessionKey, sid))
		}
		next.ServeHTTP(w, r)
	})
}

func GetSessionID(ctx context.Context) string {
	if val, ok := ctx.Value(sessionKey).(string); ok {
		return val
	}
	return ""
}

package httpserver

import (
	"context"
	"net/http"
	"time"

	"staywise/internal/app"
	"staywise/internal/domain"
)

const sessionCookie = "session"

type ctxKey int

const userKey ctxKey = 0

// currentUser returns the authenticated user from the request context,
// ok=false when the request carried no valid session.
func currentUser(ctx context.Context) (domain.SafeUser, bool) {
	u, ok := ctx.Value(userKey).(domain.SafeUser)
	return u, ok
}

// Session resolves the session cookie into a SafeUser on every request.
// It never rejects: handlers that require auth use RequireAuth.
func Session(auth *app.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
				if u, err := auth.VerifyToken(c.Value); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), userKey, u))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without a resolved session user.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := currentUser(r.Context()); !ok {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "sign in required")
			return
		}
		next(w, r)
	}
}

func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

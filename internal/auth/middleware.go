package auth

import (
	"log/slog"
	"net/http"

	"github.com/warrick-io/warrick/internal/platform/httpx"
	"github.com/warrick-io/warrick/internal/shared"
)

// RequireSession rejects requests without an active session and stores the
// signed-in account as the request actor.
func RequireSession(sessions Sessions, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sessions.Current(r.Context())
			if err != nil {
				httpx.Fail(w, logger, "resolve session", err)
				return
			}
			ctx := shared.ContextWithActor(r.Context(), user.Actor())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose actor is not an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := shared.RequireAdmin(r.Context()); err != nil {
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

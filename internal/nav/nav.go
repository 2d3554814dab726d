package nav

import (
	"net/http"

	"tableside/internal/domain"
	"tableside/internal/store"
)

const LoginPath = "/login"

// Guard admits a request only when the session store holds a token,
// otherwise it redirects to the login entry point. This is the only
// client-side gate; real authorization happens on the backend and a
// forged local token buys nothing there.
func Guard(sessions *store.SessionStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessions.Token() == "" {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LandingPath branches the post-login landing by role. Exhaustive over
// the closed role set; waiters skip the general dashboard entirely.
func LandingPath(role domain.Role) string {
	switch role {
	case domain.RoleWaiter:
		return "/waiter"
	case domain.RoleUser, domain.RoleAdmin, domain.RoleModerator, domain.RoleOwner:
		return "/dashboard"
	case domain.RoleGuest:
		return LoginPath
	}
	return LoginPath
}

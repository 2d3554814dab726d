package views

import (
	"encoding/json"
	"net/http"

	"tableside/internal/api"
	"tableside/internal/domain"
	"tableside/internal/nav"
)

// demoAccounts are the seeded platform accounts shown on the login
// view, one per role.
var demoAccounts = []map[string]string{
	{"email": "demo.user@thanks.kz", "role": "user"},
	{"email": "demo.waiter@thanks.kz", "role": "waiter"},
	{"email": "demo.admin@thanks.kz", "role": "admin"},
	{"email": "demo.owner@thanks.kz", "role": "owner"},
	{"email": "demo.moderator@thanks.kz", "role": "moderator"},
}

func (h *Handler) loginView(w http.ResponseWriter, r *http.Request) {
	h.respond(w, map[string]interface{}{
		"demo_accounts": demoAccounts,
	})
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.fail(w, r, &api.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	auth, err := h.API.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.Sessions.SetToken(auth.AccessToken); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Sessions.SetUser(auth.User); err != nil {
		h.fail(w, r, err)
		return
	}
	_ = h.Sessions.SetGuestMode(false)

	h.respond(w, map[string]interface{}{
		"user":    auth.User,
		"landing": nav.LandingPath(auth.User.Role),
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, &api.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	auth, err := h.API.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.Sessions.SetToken(auth.AccessToken); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Sessions.SetUser(auth.User); err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, map[string]interface{}{
		"user":    auth.User,
		"landing": nav.LandingPath(auth.User.Role),
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.ClearAuth(); err != nil {
		h.fail(w, r, err)
		return
	}
	h.mu.Lock()
	h.Bridge.Close()
	if h.NewBridge != nil {
		h.Bridge = h.NewBridge()
	}
	h.feed = nil
	h.mu.Unlock()

	http.Redirect(w, r, nav.LoginPath, http.StatusFound)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.API.Me(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, user)
}

// dashboard is the general landing. Waiters never see it: the view
// redirects them to the waiter queue on load.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	user, err := h.API.Me(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = h.Sessions.SetUser(user)

	if user.Role == domain.RoleWaiter {
		http.Redirect(w, r, "/waiter", http.StatusFound)
		return
	}

	view := map[string]interface{}{"user": user}
	if user.RestaurantID == 0 {
		// Diners browse the venue list; staff land on their own venue.
		if rests, err := h.API.Restaurants(r.Context()); err == nil {
			view["restaurants"] = rests
		}
	}
	if user.RestaurantID != 0 {
		if rest, err := h.API.Restaurant(r.Context(), user.RestaurantID); err == nil {
			view["restaurant"] = rest
		}
		if user.Role.Staff() {
			if halls, err := h.API.Halls(r.Context(), user.RestaurantID); err == nil {
				view["halls"] = halls
			}
		}
	}
	h.respond(w, view)
}

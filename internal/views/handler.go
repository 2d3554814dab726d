package views

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"tableside/internal/api"
	"tableside/internal/bridge"
	"tableside/internal/cart"
	"tableside/internal/nav"
	"tableside/internal/qr"
	"tableside/internal/store"
)

// Handler wires the feature views. Views are thin: each one composes
// the session store, the API client, the cart and the bridge into one
// user flow and renders a JSON view model.
type Handler struct {
	API      *api.Client
	Sessions *store.SessionStore
	Cart     *cart.Cart
	Bridge   *bridge.Bridge
	QR       qr.Generator

	// NewBridge replaces a closed bridge after logout, so the next
	// staff session gets a fresh channel. Close is terminal per bridge.
	NewBridge func() *bridge.Bridge

	// PublicBaseURL/QRImageURL feed the table-link and QR views.
	PublicBaseURL string
	QRImageURL    string

	mu   sync.Mutex
	tip  cart.TipSelection
	feed []Notification
}

// Notification is one live event kept for the waiter view's feed.
type Notification struct {
	Event       string `json:"event"`
	TableID     int    `json:"table_id,omitempty"`
	TableNumber int    `json:"table_number,omitempty"`
	OrderID     int    `json:"order_id,omitempty"`
	Message     string `json:"message,omitempty"`
}

func NewHandler(apiClient *api.Client, sessions *store.SessionStore, guestCart *cart.Cart, liveBridge *bridge.Bridge, generator qr.Generator, publicBaseURL, qrImageURL string) *Handler {
	return &Handler{
		API:           apiClient,
		Sessions:      sessions,
		Cart:          guestCart,
		Bridge:        liveBridge,
		QR:            generator,
		PublicBaseURL: publicBaseURL,
		QRImageURL:    qrImageURL,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	// entry points, no session required
	r.HandleFunc("/login", h.loginView).Methods("GET")
	r.HandleFunc("/login", h.login).Methods("POST")
	r.HandleFunc("/register", h.register).Methods("POST")
	r.HandleFunc("/logout", h.logout).Methods("POST")

	// table resolution and guest flows
	r.HandleFunc("/t/{shortCode}", h.tableWelcome).Methods("GET")
	r.HandleFunc("/t/{shortCode}/guest", h.enterGuestMode).Methods("POST")
	r.HandleFunc("/qr/{shortCode}", h.qrLanding).Methods("GET")
	r.HandleFunc("/guest-menu/{restaurantId}", h.guestMenu).Methods("GET")
	r.HandleFunc("/guest-menu/{restaurantId}/cart", h.guestAddToCart).Methods("POST")
	r.HandleFunc("/call-waiter", h.callWaiter).Methods("POST")
	r.HandleFunc("/check", h.myCheck).Methods("GET")
	r.HandleFunc("/check/lines/{index}", h.updateCheckLine).Methods("PATCH")
	r.HandleFunc("/check/lines/{index}", h.removeCheckLine).Methods("DELETE")
	r.HandleFunc("/booking/{restaurantId}", h.bookingView).Methods("GET")
	r.HandleFunc("/booking/{restaurantId}", h.createBooking).Methods("POST")

	// session-gated views
	protected := r.NewRoute().Subrouter()
	protected.Use(func(next http.Handler) http.Handler {
		return nav.Guard(h.Sessions, next)
	})
	protected.HandleFunc("/dashboard", h.dashboard).Methods("GET")
	protected.HandleFunc("/profile", h.profile).Methods("GET")
	protected.HandleFunc("/menu/{restaurantId}", h.menu).Methods("GET")
	protected.HandleFunc("/menu/{restaurantId}/cart", h.addToCheckoutCart).Methods("POST")
	protected.HandleFunc("/checkout", h.checkout).Methods("GET")
	protected.HandleFunc("/checkout/tip", h.selectTip).Methods("POST")
	protected.HandleFunc("/checkout/pay", h.pay).Methods("POST")
	protected.HandleFunc("/my-orders", h.myOrders).Methods("GET")

	protected.HandleFunc("/waiter", h.waiterDashboard).Methods("GET")
	protected.HandleFunc("/waiter/events", h.waiterEvents).Methods("GET")
	protected.HandleFunc("/waiter/orders/{id}/status", h.advanceOrder).Methods("PATCH")
	protected.HandleFunc("/waiter/calls/{id}/resolve", h.resolveCall).Methods("PATCH")
	protected.HandleFunc("/waiter/tables/{id}/status", h.setTableStatus).Methods("PATCH")

	protected.HandleFunc("/admin/menu/{restaurantId}", h.adminMenu).Methods("GET")
	protected.HandleFunc("/admin/menu/{restaurantId}/categories", h.createCategory).Methods("POST")
	protected.HandleFunc("/admin/categories/{id}", h.deleteCategory).Methods("DELETE")
	protected.HandleFunc("/admin/dishes", h.createDish).Methods("POST")
	protected.HandleFunc("/admin/dishes/{id}/stop-list", h.toggleStopList).Methods("PATCH")
	protected.HandleFunc("/admin/halls/{restaurantId}", h.halls).Methods("GET")
	protected.HandleFunc("/admin/halls/{restaurantId}/{hallId}/tables", h.hallTables).Methods("GET")
	protected.HandleFunc("/admin/table-links/{restaurantId}/{hallId}/{tableId}", h.generateLink).Methods("POST")
	protected.HandleFunc("/admin/qr/{shortCode}", h.qrImage).Methods("GET")
	protected.HandleFunc("/admin/reservations", h.reservations).Methods("GET")
	protected.HandleFunc("/admin/reservations/{id}/status", h.setReservationStatus).Methods("PATCH")
	protected.HandleFunc("/admin/analytics", h.analytics).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	h.respond(w, map[string]interface{}{
		"status":  "healthy",
		"service": "tableside",
		"socket":  h.bridge().State().String(),
	})
}

// bridge reads the current bridge under the lock; logout swaps the
// field, so unguarded reads race with it.
func (h *Handler) bridge() *bridge.Bridge {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Bridge
}

func (h *Handler) respond(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// fail renders an API failure in place as a JSON error body. The one
// exception is Unauthorized, which forces a logout and sends the user
// back to login.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, api.ErrUnauthorized) {
		if clearErr := h.Sessions.ClearAuth(); clearErr != nil {
			log.Printf("[tableside] clearing session failed: %v", clearErr)
		}
		http.Redirect(w, r, nav.LoginPath, http.StatusFound)
		return
	}

	status := http.StatusInternalServerError
	var apiErr *api.APIError
	var netErr *api.NetworkError
	var valErr *api.ValidationError
	switch {
	case errors.Is(err, api.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &apiErr):
		status = apiErr.Status
	case errors.As(err, &netErr):
		status = http.StatusBadGateway
	case errors.As(err, &valErr):
		status = http.StatusBadRequest
	}

	log.Printf("[tableside] %s %s: %v", r.Method, r.URL.Path, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

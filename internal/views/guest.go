package views

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tableside/internal/api"
	"tableside/internal/cart"
	"tableside/internal/domain"
)

// tableWelcome resolves a scanned short code and pins the table
// context. The context persists until a different table is scanned.
func (h *Handler) tableWelcome(w http.ResponseWriter, r *http.Request) {
	shortCode := mux.Vars(r)["shortCode"]

	table, err := h.API.ResolveTable(r.Context(), shortCode)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Sessions.SetTable(table); err != nil {
		h.fail(w, r, err)
		return
	}

	view := map[string]interface{}{"table": table}
	if rest, err := h.API.Restaurant(r.Context(), table.RestaurantID); err == nil {
		_ = h.Sessions.SetRestaurant(rest)
		view["restaurant"] = rest
	}
	h.respond(w, view)
}

func (h *Handler) enterGuestMode(w http.ResponseWriter, r *http.Request) {
	table, ok := h.Sessions.Table()
	if !ok {
		h.fail(w, r, &api.ValidationError{Field: "table", Reason: "scan a table first"})
		return
	}
	if err := h.Sessions.SetGuestMode(true); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, map[string]string{
		"menu": "/guest-menu/" + strconv.Itoa(table.RestaurantID),
	})
}

// qrLanding is the richer resolution used by printed QR posters.
func (h *Handler) qrLanding(w http.ResponseWriter, r *http.Request) {
	shortCode := mux.Vars(r)["shortCode"]

	info, err := h.API.ResolveQR(r.Context(), shortCode)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	_ = h.Sessions.SetTable(domain.TableContext{
		TableID:      info.Table.ID,
		TableNumber:  info.Table.TableNumber,
		Capacity:     info.Table.Capacity,
		RestaurantID: info.Restaurant.ID,
		HallID:       info.Hall.ID,
		ShortCode:    shortCode,
		IsVIP:        info.Table.IsVIP,
		Status:       info.Table.Status,
	})
	_ = h.Sessions.SetRestaurant(info.Restaurant)

	h.respond(w, info)
}

// guestMenu renders the menu with the current cart and table badge.
func (h *Handler) guestMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])

	rest, err := h.API.Restaurant(r.Context(), restaurantID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	menu, err := h.API.Menu(r.Context(), restaurantID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	view := map[string]interface{}{
		"restaurant": rest,
		"menu":       menu,
		"cart":       h.Cart.Lines(),
		"subtotal":   cart.Subtotal(h.Cart.Lines()),
		"guest":      h.Sessions.Role() == domain.RoleGuest,
	}
	if table, ok := h.Sessions.Table(); ok {
		view["table"] = table
	}
	h.respond(w, view)
}

// guestAddToCart appends a line for the dish. Unmerged on purpose: the
// guest menu cart keeps one line per tap. Guests without a session are
// sent to login first, ordering needs an account.
func (h *Handler) guestAddToCart(w http.ResponseWriter, r *http.Request) {
	if h.Sessions.Token() == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	var dish domain.Dish
	if err := json.NewDecoder(r.Body).Decode(&dish); err != nil || dish.ID == 0 {
		h.fail(w, r, &api.ValidationError{Field: "dish", Reason: "invalid dish payload"})
		return
	}

	if err := h.Cart.Add(dish, cart.PolicyAppend); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondCart(w)
}

func (h *Handler) callWaiter(w http.ResponseWriter, r *http.Request) {
	table, ok := h.Sessions.Table()
	if !ok {
		h.fail(w, r, &api.ValidationError{Field: "table", Reason: "no table context"})
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	if body.Message != "" {
		call, err := h.API.CallWaiterWithMessage(r.Context(), table.TableID, body.Message)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.respond(w, call)
		return
	}

	if err := h.API.CallWaiter(r.Context(), table.TableID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, map[string]string{"message": "waiter called"})
}

// myCheck is the pre-checkout view: subtotal plus service fee, no tip
// collected yet.
func (h *Handler) myCheck(w http.ResponseWriter, r *http.Request) {
	lines := h.Cart.Lines()
	view := map[string]interface{}{
		"lines":  lines,
		"totals": cart.CheckTotals(lines, h.serviceFeePercent()),
	}
	if table, ok := h.Sessions.Table(); ok {
		view["table"] = table
		if h.Sessions.Token() != "" {
			if order, ok, err := h.API.CurrentTableOrder(r.Context(), table.TableID); err == nil && ok {
				view["current_order"] = order
			}
		}
	}
	h.respond(w, view)
}

func (h *Handler) updateCheckLine(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		h.fail(w, r, &api.ValidationError{Field: "index", Reason: "not a number"})
		return
	}

	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Delta == 0 {
		h.fail(w, r, &api.ValidationError{Field: "delta", Reason: "required and non-zero"})
		return
	}

	if err := h.Cart.UpdateQuantity(index, body.Delta); err != nil {
		h.fail(w, r, &api.ValidationError{Field: "index", Reason: err.Error()})
		return
	}
	h.respondCart(w)
}

func (h *Handler) removeCheckLine(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		h.fail(w, r, &api.ValidationError{Field: "index", Reason: "not a number"})
		return
	}
	if err := h.Cart.RemoveItem(index); err != nil {
		h.fail(w, r, &api.ValidationError{Field: "index", Reason: err.Error()})
		return
	}
	h.respondCart(w)
}

// respondCart re-renders lines and totals together. Totals are always
// recomputed with the mutation, never cached.
func (h *Handler) respondCart(w http.ResponseWriter) {
	lines := h.Cart.Lines()
	h.respond(w, map[string]interface{}{
		"lines":  lines,
		"totals": cart.CheckTotals(lines, h.serviceFeePercent()),
	})
}

func (h *Handler) serviceFeePercent() int {
	if rest, ok := h.Sessions.Restaurant(); ok && rest.ServiceFeePercent > 0 {
		return rest.ServiceFeePercent
	}
	return cart.DefaultServiceFeePercent
}

func (h *Handler) bookingView(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])

	rest, err := h.API.Restaurant(r.Context(), restaurantID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	zones, err := h.API.Zones(r.Context(), restaurantID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, map[string]interface{}{
		"restaurant": rest,
		"zones":      zones,
	})
}

func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	var req api.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, &api.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	reservation, err := h.API.CreateReservation(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, reservation)
}

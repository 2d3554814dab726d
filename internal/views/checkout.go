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

// menu is the authenticated menu view. Same data as the guest menu,
// but adds go through the merging cart policy.
func (h *Handler) menu(w http.ResponseWriter, r *http.Request) {
	h.guestMenu(w, r)
}

func (h *Handler) addToCheckoutCart(w http.ResponseWriter, r *http.Request) {
	var dish domain.Dish
	if err := json.NewDecoder(r.Body).Decode(&dish); err != nil || dish.ID == 0 {
		h.fail(w, r, &api.ValidationError{Field: "dish", Reason: "invalid dish payload"})
		return
	}

	if err := h.Cart.Add(dish, cart.PolicyMergeByDish); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondCart(w)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	lines := h.Cart.Lines()

	h.mu.Lock()
	tip := h.tip
	h.mu.Unlock()

	view := map[string]interface{}{
		"lines":  lines,
		"tip":    tip,
		"totals": cart.CheckoutTotals(lines, h.serviceFeePercent(), tip),
	}
	if table, ok := h.Sessions.Table(); ok {
		view["table"] = table
	}
	h.respond(w, view)
}

// selectTip records the tip choice. Percent and custom amount are
// mutually exclusive, the last selection wins.
func (h *Handler) selectTip(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Percent *int   `json:"percent"`
		Custom  *int64 `json:"custom"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.fail(w, r, &api.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	h.mu.Lock()
	switch {
	case body.Percent != nil:
		h.tip.SelectPercent(*body.Percent)
	case body.Custom != nil:
		h.tip.SetCustomAmount(*body.Custom)
	default:
		h.mu.Unlock()
		h.fail(w, r, &api.ValidationError{Field: "tip", Reason: "percent or custom required"})
		return
	}
	tip := h.tip
	h.mu.Unlock()

	lines := h.Cart.Lines()
	h.respond(w, map[string]interface{}{
		"tip":    tip,
		"totals": cart.CheckoutTotals(lines, h.serviceFeePercent(), tip),
	})
}

// pay posts the order and immediately runs the payment, then empties
// the cart. The backend computes the authoritative total.
func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	table, ok := h.Sessions.Table()
	if !ok {
		h.fail(w, r, &api.ValidationError{Field: "table", Reason: "no table context"})
		return
	}

	lines := h.Cart.Lines()
	items := make([]api.OrderItemRequest, 0, len(lines))
	for _, line := range lines {
		items = append(items, api.OrderItemRequest{DishID: line.DishID, Quantity: line.Quantity})
	}

	h.mu.Lock()
	tip := h.tip
	h.mu.Unlock()
	tipAmount := tip.Amount(cart.Subtotal(lines))

	order, err := h.API.CreateOrder(r.Context(), api.OrderRequest{
		TableID:    table.TableID,
		Items:      items,
		TipsAmount: tipAmount,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	payment, err := h.API.PayOrder(r.Context(), order.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.Cart.Empty(); err != nil {
		h.fail(w, r, err)
		return
	}
	h.mu.Lock()
	h.tip = cart.TipSelection{}
	h.mu.Unlock()

	h.respond(w, map[string]interface{}{
		"order":   order,
		"payment": payment,
	})
}

func (h *Handler) myOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.API.MyOrders(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, orders)
}

func (h *Handler) setTableStatus(w http.ResponseWriter, r *http.Request) {
	tableID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		h.fail(w, r, &api.ValidationError{Field: "status", Reason: "required"})
		return
	}
	if !domain.ValidTableStatus(body.Status) {
		h.fail(w, r, &api.ValidationError{Field: "status", Reason: "unknown table status"})
		return
	}

	if err := h.API.UpdateTableStatus(r.Context(), tableID, body.Status); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, map[string]string{"message": "table status updated"})
}

package views

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tableside/internal/api"
	"tableside/internal/bridge"
	"tableside/internal/domain"
)

const feedLimit = 50

// waiterDashboard is the staff queue: active orders, pending waiter
// calls and the live feed. Opening it brings the bridge up for this
// waiter; the connection indicator is the only surface disconnects
// ever reach.
func (h *Handler) waiterDashboard(w http.ResponseWriter, r *http.Request) {
	user, err := h.API.Me(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.ensureBridge(user)

	orders, err := h.API.WaiterOrders(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	calls, err := h.API.WaiterCalls(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.mu.Lock()
	feed := make([]Notification, len(h.feed))
	copy(feed, h.feed)
	h.mu.Unlock()

	h.respond(w, map[string]interface{}{
		"user":      user,
		"orders":    orders,
		"calls":     calls,
		"feed":      feed,
		"connected": h.bridge().Connected(),
	})
}

// ensureBridge connects once and registers the feed handlers. Repeat
// deliveries after a reconnect land in the feed again; readers treat
// it as best-effort.
func (h *Handler) ensureBridge(user domain.User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Bridge.State() != bridge.StateDisconnected {
		return
	}

	h.Bridge.Subscribe(bridge.EventWaiterCall, func(data json.RawMessage) {
		var event bridge.WaiterCallEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return
		}
		h.appendFeed(Notification{
			Event:       bridge.EventWaiterCall,
			TableID:     event.TableID,
			TableNumber: event.TableNumber,
			Message:     event.Message,
		})
	})
	h.Bridge.Subscribe(bridge.EventNewOrder, func(data json.RawMessage) {
		var event bridge.NewOrderEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return
		}
		h.appendFeed(Notification{
			Event:   bridge.EventNewOrder,
			TableID: event.TableID,
			OrderID: event.OrderID,
		})
	})

	h.Bridge.Connect(user.Role, user.ID)
}

func (h *Handler) appendFeed(n Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.feed = append(h.feed, n)
	if len(h.feed) > feedLimit {
		h.feed = h.feed[len(h.feed)-feedLimit:]
	}
}

func (h *Handler) waiterEvents(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	feed := make([]Notification, len(h.feed))
	copy(feed, h.feed)
	h.mu.Unlock()

	h.respond(w, map[string]interface{}{
		"feed":      feed,
		"connected": h.bridge().Connected(),
	})
}

// advanceOrder requests a status transition. With no explicit status
// in the body, the order moves one step along the normal flow.
func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var body struct {
		Status  domain.OrderStatus `json:"status"`
		Current domain.OrderStatus `json:"current"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.fail(w, r, &api.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	status := body.Status
	if status == "" {
		status = body.Current.Next()
		if status == "" {
			h.fail(w, r, &api.ValidationError{Field: "status", Reason: "order is terminal"})
			return
		}
	}

	if err := h.API.UpdateOrderStatus(r.Context(), orderID, status); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, map[string]string{"status": string(status)})
}

func (h *Handler) resolveCall(w http.ResponseWriter, r *http.Request) {
	callID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.API.ResolveWaiterCall(r.Context(), callID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, map[string]string{"message": "call resolved"})
}

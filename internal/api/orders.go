package api

import (
	"context"
	"net/http"
	"strconv"

	"tableside/internal/domain"
)

type OrderItemRequest struct {
	DishID              int    `json:"dish_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

type OrderRequest struct {
	TableID    int                `json:"table_id"`
	Items      []OrderItemRequest `json:"items"`
	TipsAmount int64              `json:"tips_amount"`
}

// CreateOrder posts the cart as an order. The backend recomputes all
// amounts from its own dish prices; the client total is display only.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (domain.Order, error) {
	if req.TableID == 0 {
		return domain.Order{}, &ValidationError{Field: "table_id", Reason: "required"}
	}
	if len(req.Items) == 0 {
		return domain.Order{}, &ValidationError{Field: "items", Reason: "cart is empty"}
	}

	var order domain.Order
	err := c.do(ctx, http.MethodPost, "/orders", req, true, &order)
	return order, err
}

// PaymentResult mirrors the backend's pay response.
type PaymentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Total   int64  `json:"total"`
}

func (c *Client) PayOrder(ctx context.Context, orderID int) (PaymentResult, error) {
	var result PaymentResult
	err := c.do(ctx, http.MethodPost, "/orders/"+strconv.Itoa(orderID)+"/pay", nil, true, &result)
	return result, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int, status domain.OrderStatus) error {
	path := "/orders/" + strconv.Itoa(orderID) + "/status?status=" + string(status)
	return c.do(ctx, http.MethodPatch, path, nil, true, nil)
}

func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, http.MethodGet, "/my-orders", nil, true, &orders)
	return orders, err
}

// CurrentTableOrder returns the latest unpaid order on a table, or ok
// false when there is none.
func (c *Client) CurrentTableOrder(ctx context.Context, tableID int) (domain.Order, bool, error) {
	var order *domain.Order
	err := c.do(ctx, http.MethodGet, "/tables/"+strconv.Itoa(tableID)+"/current-order", nil, true, &order)
	if err != nil {
		return domain.Order{}, false, err
	}
	if order == nil {
		return domain.Order{}, false, nil
	}
	return *order, true, nil
}

// WaiterOrders lists the active orders across the waiter's restaurant.
func (c *Client) WaiterOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, http.MethodGet, "/waiter/orders", nil, true, &orders)
	return orders, err
}

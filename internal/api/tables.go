package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"tableside/internal/domain"
)

// ResolveTable turns a short code from a scanned QR into a table
// context. 404 maps to ErrNotFound ("table not found").
func (c *Client) ResolveTable(ctx context.Context, shortCode string) (domain.TableContext, error) {
	var table domain.TableContext
	err := c.do(ctx, http.MethodGet, "/t/"+shortCode, nil, false, &table)
	if err != nil {
		return domain.TableContext{}, err
	}
	table.ShortCode = shortCode
	return table, nil
}

// QRInfo is the richer resolution used by the QR landing view.
type QRInfo struct {
	Table      domain.Table      `json:"table"`
	Hall       domain.Hall       `json:"hall"`
	Restaurant domain.Restaurant `json:"restaurant"`
}

func (c *Client) ResolveQR(ctx context.Context, shortCode string) (QRInfo, error) {
	var info QRInfo
	err := c.do(ctx, http.MethodGet, "/qr/"+shortCode, nil, false, &info)
	return info, err
}

func (c *Client) Halls(ctx context.Context, restaurantID int) ([]domain.Hall, error) {
	var halls []domain.Hall
	err := c.do(ctx, http.MethodGet, "/restaurants/"+strconv.Itoa(restaurantID)+"/halls", nil, true, &halls)
	return halls, err
}

func (c *Client) HallTables(ctx context.Context, hallID int) ([]domain.Table, error) {
	var tables []domain.Table
	err := c.do(ctx, http.MethodGet, "/halls/"+strconv.Itoa(hallID)+"/tables", nil, true, &tables)
	return tables, err
}

// GenerateTableLink asks the backend for a fresh short code for one
// table. Admin/owner/moderator only, enforced server-side.
func (c *Client) GenerateTableLink(ctx context.Context, restaurantID, hallID, tableID int) (domain.TableLink, error) {
	var link domain.TableLink
	path := fmt.Sprintf("/restaurants/%d/halls/%d/tables/%d/generate-link", restaurantID, hallID, tableID)
	err := c.do(ctx, http.MethodPost, path, nil, true, &link)
	return link, err
}

func (c *Client) UpdateTableStatus(ctx context.Context, tableID int, status string) error {
	query := url.Values{"status": {status}}
	path := "/tables/" + strconv.Itoa(tableID) + "/status?" + query.Encode()
	return c.do(ctx, http.MethodPatch, path, nil, true, nil)
}

// CallWaiter raises a waiter call for a table. Available to guests, no
// auth needed.
func (c *Client) CallWaiter(ctx context.Context, tableID int) error {
	return c.do(ctx, http.MethodPost, "/tables/"+strconv.Itoa(tableID)+"/call-waiter", nil, false, nil)
}

type WaiterCallRequest struct {
	TableID int    `json:"table_id"`
	Message string `json:"message,omitempty"`
}

// CallWaiterWithMessage is the variant the QR landing uses, carrying a
// free-text message for the staff.
func (c *Client) CallWaiterWithMessage(ctx context.Context, tableID int, message string) (domain.WaiterCall, error) {
	var call domain.WaiterCall
	err := c.do(ctx, http.MethodPost, "/waiter-call",
		WaiterCallRequest{TableID: tableID, Message: message}, false, &call)
	return call, err
}

func (c *Client) WaiterCalls(ctx context.Context) ([]domain.WaiterCall, error) {
	var calls []domain.WaiterCall
	err := c.do(ctx, http.MethodGet, "/waiter-calls", nil, true, &calls)
	return calls, err
}

func (c *Client) ResolveWaiterCall(ctx context.Context, callID int) error {
	return c.do(ctx, http.MethodPatch, "/waiter-calls/"+strconv.Itoa(callID)+"/resolve", nil, true, nil)
}

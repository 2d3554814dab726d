package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"tableside/internal/domain"
)

type ReservationRequest struct {
	TableID         int    `json:"table_id"`
	GuestName       string `json:"guest_name"`
	GuestPhone      string `json:"guest_phone"`
	GuestCount      int    `json:"guest_count"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// CreateReservation requests a booking. Scheduling and status are the
// backend's call; the client only submits and displays.
func (c *Client) CreateReservation(ctx context.Context, req ReservationRequest) (domain.Reservation, error) {
	if req.GuestName == "" {
		return domain.Reservation{}, &ValidationError{Field: "guest_name", Reason: "required"}
	}
	if req.GuestPhone == "" {
		return domain.Reservation{}, &ValidationError{Field: "guest_phone", Reason: "required"}
	}
	if req.ReservationDate == "" || req.ReservationTime == "" {
		return domain.Reservation{}, &ValidationError{Field: "reservation_date", Reason: "date and time required"}
	}

	var res domain.Reservation
	err := c.do(ctx, http.MethodPost, "/reservations", req, false, &res)
	return res, err
}

func (c *Client) Reservations(ctx context.Context) ([]domain.Reservation, error) {
	var list []domain.Reservation
	err := c.do(ctx, http.MethodGet, "/reservations", nil, true, &list)
	return list, err
}

func (c *Client) UpdateReservationStatus(ctx context.Context, reservationID int, status domain.ReservationStatus) error {
	query := url.Values{"status": {string(status)}}
	path := "/reservations/" + strconv.Itoa(reservationID) + "/status?" + query.Encode()
	return c.do(ctx, http.MethodPatch, path, nil, true, nil)
}

func (c *Client) AnalyticsOverview(ctx context.Context) (domain.AnalyticsOverview, error) {
	var overview domain.AnalyticsOverview
	err := c.do(ctx, http.MethodGet, "/analytics/overview", nil, true, &overview)
	return overview, err
}

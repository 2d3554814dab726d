package domain

import "time"

// All money amounts are integer minor currency units.

type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone,omitempty"`
	Role         Role   `json:"role"`
	RestaurantID int    `json:"restaurant_id,omitempty"`
}

// TableContext is what a table short code resolves to. It survives
// reloads until a different table is scanned.
type TableContext struct {
	TableID      int    `json:"table_id"`
	TableNumber  int    `json:"table_number"`
	Capacity     int    `json:"capacity"`
	RestaurantID int    `json:"restaurant_id"`
	HallID       int    `json:"hall_id,omitempty"`
	ShortCode    string `json:"short_code"`
	IsVIP        bool   `json:"is_vip,omitempty"`
	Status       string `json:"status,omitempty"`
}

type Restaurant struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Address           string `json:"address,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Description       string `json:"description,omitempty"`
	LogoURL           string `json:"logo_url,omitempty"`
	ServiceFeePercent int    `json:"service_fee_percent,omitempty"`
}

type Dish struct {
	ID          int    `json:"id"`
	CategoryID  int    `json:"category_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	IsAvailable bool   `json:"is_available"`
}

// MenuCategory is one section of /restaurants/{id}/menu.
type MenuCategory struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Dishes []Dish `json:"dishes"`
}

type Hall struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
}

type Table struct {
	ID          int    `json:"id"`
	HallID      int    `json:"hall_id"`
	TableNumber int    `json:"table_number"`
	Capacity    int    `json:"capacity"`
	ShortCode   string `json:"short_code,omitempty"`
	IsVIP       bool   `json:"is_vip,omitempty"`
	Status      string `json:"status,omitempty"`
}

type Zone struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TableLink is the backend's response to generate-link: a fresh short
// code plus the guest-facing URL to embed in a QR code.
type TableLink struct {
	TableID     int    `json:"table_id"`
	TableNumber int    `json:"table_number"`
	ShortCode   string `json:"short_code"`
	Link        string `json:"link"`
	QRData      string `json:"qr_data"`
}

type OrderItem struct {
	ID                  int    `json:"id,omitempty"`
	DishID              int    `json:"dish_id"`
	Quantity            int    `json:"quantity"`
	Price               int64  `json:"price,omitempty"`
	Total               int64  `json:"total,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// Order is a read-mostly projection of the backend's order. The client
// never computes status transitions, it only requests them.
type Order struct {
	ID          int         `json:"id"`
	TableID     int         `json:"table_id"`
	UserID      int         `json:"user_id,omitempty"`
	Status      OrderStatus `json:"status"`
	TotalAmount int64       `json:"total_amount"`
	TipsAmount  int64       `json:"tips_amount"`
	ServiceFee  int64       `json:"service_fee"`
	IsPaid      bool        `json:"is_paid"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `json:"items,omitempty"`
}

type WaiterCall struct {
	ID          int       `json:"id"`
	TableID     int       `json:"table_id"`
	TableNumber int       `json:"table_number,omitempty"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Reservation struct {
	ID              int               `json:"id"`
	TableID         int               `json:"table_id"`
	GuestName       string            `json:"guest_name"`
	GuestPhone      string            `json:"guest_phone"`
	GuestCount      int               `json:"guest_count"`
	ReservationDate time.Time         `json:"reservation_date"`
	ReservationTime time.Time         `json:"reservation_time"`
	Status          ReservationStatus `json:"status"`
	SpecialRequests string            `json:"special_requests,omitempty"`
}

type PopularDish struct {
	DishID   int   `json:"dish_id"`
	Quantity int   `json:"quantity"`
	Revenue  int64 `json:"revenue"`
}

type AnalyticsOverview struct {
	TotalRevenue  int64         `json:"total_revenue"`
	TotalTips     int64         `json:"total_tips"`
	TotalOrders   int           `json:"total_orders"`
	PaidOrders    int           `json:"paid_orders"`
	AvgCheck      int64         `json:"avg_check"`
	PopularDishes []PopularDish `json:"popular_dishes"`
}

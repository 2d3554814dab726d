package domain

// OrderStatus values mirror the backend's order lifecycle. The client
// holds these as an enum for display and for the waiter view's
// next-step buttons; the backend owns every transition.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderCooking   OrderStatus = "cooking"
	OrderReady     OrderStatus = "ready"
	OrderServing   OrderStatus = "serving"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	OrderNoShow    OrderStatus = "no_show"
)

// Next returns the following status in the normal flow, or "" when the
// order is terminal.
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case OrderPending:
		return OrderAccepted
	case OrderAccepted:
		return OrderCooking
	case OrderCooking:
		return OrderReady
	case OrderReady:
		return OrderServing
	case OrderServing:
		return OrderCompleted
	}
	return ""
}

type ReservationStatus string

const (
	ReservationDraft     ReservationStatus = "draft"
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationAwaiting  ReservationStatus = "awaiting"
	ReservationCheckedIn ReservationStatus = "checked_in"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
)

// Table statuses accepted by PATCH /tables/{id}/status.
const (
	TableAvailable   = "available"
	TableOccupied    = "occupied"
	TableReserved    = "reserved"
	TableUnavailable = "unavailable"
)

func ValidTableStatus(s string) bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableUnavailable:
		return true
	}
	return false
}

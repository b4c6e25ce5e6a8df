package models

import "time"

// Routing keys for events published to the cafe_events exchange.
const (
	RoutingKeyOrderPlaced       = "cafe.order.placed"
	RoutingKeyLineStatusChanged = "cafe.line.status_changed"
	RoutingKeyOrderPaidChanged  = "cafe.order.paid_changed"
)

// OrderPlacedEvent is published after a new order has been committed.
type OrderPlacedEvent struct {
	OrderID   int       `json:"order_id"`
	Login     string    `json:"login"`
	ItemName  string    `json:"item_name"`
	Total     float64   `json:"total"`
	PlacedBy  string    `json:"placed_by"`
	Timestamp time.Time `json:"timestamp"`
}

// LineStatusChangedEvent is published after a line's preparation
// status has been committed.
type LineStatusChangedEvent struct {
	OrderID   int        `json:"order_id"`
	ItemName  string     `json:"item_name"`
	OldStatus LineStatus `json:"old_status"`
	NewStatus LineStatus `json:"new_status"`
	ChangedBy string     `json:"changed_by"`
	Timestamp time.Time  `json:"timestamp"`
}

// OrderPaidChangedEvent is published after an order's paid flag has
// been committed.
type OrderPaidChangedEvent struct {
	OrderID   int       `json:"order_id"`
	Paid      bool      `json:"paid"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}

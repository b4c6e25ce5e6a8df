package models

import (
	"fmt"
	"strings"
	"time"
)

// MaxCommentLength is the longest comment accepted on an order line.
const MaxCommentLength = 130

// LineStatus represents the preparation status of an order line
type LineStatus string

const (
	StatusNotStarted LineStatus = "not_started"
	StatusStarted    LineStatus = "started"
	StatusFinished   LineStatus = "finished"
)

// ParseLineStatus converts a stored status value into a LineStatus.
func ParseLineStatus(s string) (LineStatus, error) {
	switch LineStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusNotStarted:
		return StatusNotStarted, nil
	case StatusStarted:
		return StatusStarted, nil
	case StatusFinished:
		return StatusFinished, nil
	default:
		return "", fmt.Errorf("unknown line status %q", s)
	}
}

// Order represents a customer's purchase session
type Order struct {
	ID        int       `json:"order_id" db:"id"`
	Login     string    `json:"login" db:"login"`
	Paid      bool      `json:"paid" db:"paid"`
	Total     float64   `json:"total" db:"total"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// OrderLine represents one menu item attached to an order. The
// composite key (OrderID, ItemName) is unique: an order carries a
// given item at most once. Price is captured when the line is added
// and is not affected by later catalog changes.
type OrderLine struct {
	OrderID     int        `json:"order_id" db:"order_id"`
	ItemName    string     `json:"item_name" db:"item_name"`
	Price       float64    `json:"price" db:"price"`
	Status      LineStatus `json:"status" db:"status"`
	Comment     string     `json:"comment" db:"comment"`
	LastUpdated time.Time  `json:"last_updated" db:"last_updated"`
}

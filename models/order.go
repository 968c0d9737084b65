package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerInfo is the checkout form payload. Callers must supply
// non-blank name, phone and address.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is the immutable record created at checkout. Once appended to the
// order log it is never rewritten.
type Order struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Products  []LineItem      `json:"products"`
	Services  []LineItem      `json:"services"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderPlacedEvent is published after an order is durably recorded.
type OrderPlacedEvent struct {
	Event     string          `json:"event"` // e.g. "order.placed"
	OrderID   string          `json:"order_id"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	Timestamp time.Time       `json:"timestamp"`
}

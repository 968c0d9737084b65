package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CartKind distinguishes the two parallel carts the clinic site keeps:
// retail products and bookable treatment sessions.
type CartKind string

const (
	KindProduct CartKind = "product"
	KindService CartKind = "service"
)

// ParseCartKind accepts the singular and plural spellings used by the pages.
func ParseCartKind(s string) (CartKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "product", "products":
		return KindProduct, true
	case "service", "services":
		return KindService, true
	}
	return "", false
}

// LineItem is a single cart entry. Quantity is always >= 1 while the item
// is in a cart; an item decremented to zero is removed, never stored.
type LineItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// LineTotal returns unit price times quantity, unrounded.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CartSnapshot is a detached copy of both carts. Mutating it never
// affects live cart state.
type CartSnapshot struct {
	Products []LineItem `json:"products"`
	Services []LineItem `json:"services"`
}

// Totals aggregates both carts. Monetary fields are rounded to two places.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

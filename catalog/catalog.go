package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Item is a read-only catalog entry. The host site owns this data; the
// cart only ever copies it into line items.
type Item struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// Catalog is the lookup capability the cart store depends on.
type Catalog interface {
	FindProduct(id string) (Item, bool)
	FindService(id string) (Item, bool)
}

// Static is an in-memory Catalog backed by two maps.
type Static struct {
	products map[string]Item
	services map[string]Item
}

// NewStatic builds a Static catalog from product and service listings.
func NewStatic(products, services []Item) *Static {
	s := &Static{
		products: make(map[string]Item, len(products)),
		services: make(map[string]Item, len(services)),
	}
	for _, it := range products {
		s.products[it.ID] = it
	}
	for _, it := range services {
		s.services[it.ID] = it
	}
	return s
}

func (s *Static) FindProduct(id string) (Item, bool) {
	it, ok := s.products[id]
	return it, ok
}

func (s *Static) FindService(id string) (Item, bool) {
	it, ok := s.services[id]
	return it, ok
}

type catalogFile struct {
	Products []Item `json:"products"`
	Services []Item `json:"services"`
}

// LoadFile reads a catalog from a JSON file of the form
// {"products": [...], "services": [...]}.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var cf catalogFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewStatic(cf.Products, cf.Services), nil
}

// Default returns the built-in clinic catalog, used when no catalog file
// is configured.
func Default() *Static {
	price := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}

	products := []Item{
		{ID: "vitamin-c-serum", Name: "Vitamin C Serum", Price: price("899")},
		{ID: "sunscreen-spf50", Name: "Sunscreen SPF 50", Price: price("650")},
		{ID: "hydrating-cream", Name: "Hydrating Night Cream", Price: price("500")},
		{ID: "niacinamide-toner", Name: "Niacinamide Toner", Price: price("475")},
		{ID: "gentle-cleanser", Name: "Gentle Foaming Cleanser", Price: price("350")},
	}
	services := []Item{
		{ID: "hydra-facial", Name: "HydraFacial Session", Price: price("1500")},
		{ID: "chemical-peel", Name: "Chemical Peel", Price: price("2500")},
		{ID: "laser-hair-removal", Name: "Laser Hair Removal Session", Price: price("3000")},
		{ID: "acne-treatment", Name: "Acne Treatment Session", Price: price("1200")},
	}
	return NewStatic(products, services)
}

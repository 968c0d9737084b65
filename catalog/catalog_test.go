package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"clinic-cart-service/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStaticLookup(t *testing.T) {
	cat := catalog.NewStatic(
		[]catalog.Item{{ID: "p1", Name: "Cream", Price: decimal.NewFromInt(500)}},
		[]catalog.Item{{ID: "s1", Name: "Facial", Price: decimal.NewFromInt(1500)}},
	)

	item, ok := cat.FindProduct("p1")
	assert.True(t, ok)
	assert.Equal(t, "Cream", item.Name)

	_, ok = cat.FindProduct("s1")
	assert.False(t, ok, "services must not leak into product lookup")

	_, ok = cat.FindService("s1")
	assert.True(t, ok)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{
		"products": [{"id": "p1", "name": "Cream", "price": "500"}],
		"services": [{"id": "s1", "name": "Facial", "price": "1500"}]
	}`
	assert.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	cat, err := catalog.LoadFile(path)
	assert.NoError(t, err)

	item, ok := cat.FindProduct("p1")
	assert.True(t, ok)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(500)))
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := catalog.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	assert.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = catalog.LoadFile(path)
	assert.Error(t, err)
}

func TestDefaultCatalog(t *testing.T) {
	cat := catalog.Default()

	item, ok := cat.FindProduct("vitamin-c-serum")
	assert.True(t, ok)
	assert.False(t, item.Price.IsZero())

	_, ok = cat.FindService("hydra-facial")
	assert.True(t, ok)
}

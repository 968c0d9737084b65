package repository

import (
	"context"
	"testing"

	"clinic-cart-service/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDecodeLineItems_Valid(t *testing.T) {
	data := []byte(`[{"id":"p1","name":"Cream","unit_price":"500","quantity":2}]`)

	items := decodeLineItems(data, zap.NewNop())

	assert.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromInt(500)))
}

func TestDecodeLineItems_MalformedPayload(t *testing.T) {
	items := decodeLineItems([]byte(`{"not":"an array"`), zap.NewNop())

	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDecodeLineItems_SkipsInvalidEntries(t *testing.T) {
	data := []byte(`[
		{"id":"p1","name":"Cream","unit_price":"500","quantity":2},
		{"id":"","name":"no id","unit_price":"10","quantity":1},
		{"id":"p2","name":"zero qty","unit_price":"10","quantity":0},
		"garbage",
		{"id":"p3","name":"Serum","unit_price":"899","quantity":1}
	]`)

	items := decodeLineItems(data, zap.NewNop())

	assert.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "p3", items[1].ID)
}

func TestMemoryCartRepository_RoundTrip(t *testing.T) {
	repo := NewMemoryCartRepository()
	ctx := context.Background()

	items := []models.LineItem{
		{ID: "p1", Name: "Cream", UnitPrice: decimal.NewFromInt(500), Quantity: 2},
		{ID: "p2", Name: "Serum", UnitPrice: decimal.NewFromInt(899), Quantity: 1},
	}

	assert.NoError(t, repo.Save(ctx, models.KindProduct, items))

	loaded, err := repo.Load(ctx, models.KindProduct)
	assert.NoError(t, err)
	assert.Equal(t, items, loaded)

	// Saving what was loaded and loading again is idempotent
	assert.NoError(t, repo.Save(ctx, models.KindProduct, loaded))
	again, err := repo.Load(ctx, models.KindProduct)
	assert.NoError(t, err)
	assert.Equal(t, loaded, again)
}

func TestMemoryCartRepository_EmptyKind(t *testing.T) {
	repo := NewMemoryCartRepository()

	loaded, err := repo.Load(context.Background(), models.KindService)
	assert.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestMemoryOrderLog_AppendOnly(t *testing.T) {
	log := NewMemoryOrderLog()
	ctx := context.Background()

	assert.NoError(t, log.Append(ctx, models.Order{ID: "o1"}))
	assert.NoError(t, log.Append(ctx, models.Order{ID: "o2"}))

	orders, err := log.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, "o2", orders[1].ID)
}

func TestCartKey(t *testing.T) {
	assert.Equal(t, KeyProducts, CartKey(models.KindProduct))
	assert.Equal(t, KeyServices, CartKey(models.KindService))
}

package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-cart-service/catalog"
	"clinic-cart-service/models"
	"clinic-cart-service/pricing"
	"clinic-cart-service/repository"
	"clinic-cart-service/routes"
	"clinic-cart-service/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type testEnv struct {
	router   *gin.Engine
	cartRepo *repository.MemoryCartRepository
	orderLog *repository.MemoryOrderLog
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalog.NewStatic(
		[]catalog.Item{{ID: "p1", Name: "Cream", Price: dec("500")}},
		[]catalog.Item{{ID: "s1", Name: "Facial", Price: dec("1500")}},
	)
	cartRepo := repository.NewMemoryCartRepository()
	orderLog := repository.NewMemoryOrderLog()

	policy := pricing.NewPolicy(dec("0.18"))
	store := services.NewCartStore(context.Background(), cartRepo, cat, policy, zap.NewNop())
	orderSvc := services.NewOrderService(store, orderLog, nil, zap.NewNop())
	feedbackSvc := services.NewFeedbackService(repository.NewMemoryFeedbackLog(), zap.NewNop())

	router := gin.New()
	routes.Register(router, store, orderSvc, feedbackSvc, zap.NewNop())

	return &testEnv{router: router, cartRepo: cartRepo, orderLog: orderLog}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, path, buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type cartResponse struct {
	Products []models.LineItem `json:"products"`
	Services []models.LineItem `json:"services"`
	Totals   models.Totals     `json:"totals"`
	Warning  string            `json:"warning"`
}

func TestAddItem_ReturnsCartWithTotals(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodPost, "/cart/items", `{"kind":"product","id":"p1","quantity":2}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body cartResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Products, 1)
	assert.Equal(t, 2, body.Products[0].Quantity)
	assert.True(t, body.Totals.Subtotal.Equal(dec("1000")))
	assert.True(t, body.Totals.Tax.Equal(dec("180")))
	assert.True(t, body.Totals.Total.Equal(dec("1180")))
	assert.Equal(t, 2, body.Totals.ItemCount)
}

func TestAddItem_BadRequests(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodPost, "/cart/items", `{"kind":"basket","id":"p1","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/cart/items", `{"kind":"product","id":"p1","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/cart/items", `{"kind":"product","id":"nope","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/cart/items", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuantityEndpoints(t *testing.T) {
	env := setup(t)

	env.do(t, http.MethodPost, "/cart/items", `{"kind":"product","id":"p1","quantity":1}`)

	rec := env.do(t, http.MethodPost, "/cart/items/p1/increment?kind=product", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body cartResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Products[0].Quantity)

	rec = env.do(t, http.MethodPost, "/cart/items/p1/decrement?kind=product", "")
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Products[0].Quantity)

	// decrementing at quantity 1 removes the line
	rec = env.do(t, http.MethodPost, "/cart/items/p1/decrement?kind=product", "")
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Products)

	rec = env.do(t, http.MethodPost, "/cart/items/p1/increment", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing kind must 400")
}

func TestRemoveAndClear(t *testing.T) {
	env := setup(t)

	env.do(t, http.MethodPost, "/cart/items", `{"kind":"product","id":"p1","quantity":3}`)
	env.do(t, http.MethodPost, "/cart/items", `{"kind":"service","id":"s1","quantity":1}`)

	rec := env.do(t, http.MethodDelete, "/cart/items/p1?kind=product", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body cartResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Products)
	assert.Len(t, body.Services, 1)

	rec = env.do(t, http.MethodDelete, "/cart/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Services)
	assert.Equal(t, 0, body.Totals.ItemCount)
}

func TestAddItem_PersistenceWarning(t *testing.T) {
	env := setup(t)
	env.cartRepo.SaveErr = assert.AnError

	rec := env.do(t, http.MethodPost, "/cart/items", `{"kind":"product","id":"p1","quantity":1}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body cartResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Warning)
	assert.Len(t, body.Products, 1)
}

func TestCheckout_Flow(t *testing.T) {
	env := setup(t)

	env.do(t, http.MethodPost, "/cart/items", `{"kind":"product","id":"p1","quantity":2}`)

	rec := env.do(t, http.MethodPost, "/checkout", `{"name":"Asha","phone":"9876543210","address":"12 MG Road"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.NotEmpty(t, order.ID)
	assert.True(t, order.Total.Equal(dec("1180")))

	// Cart is empty after a committed checkout
	rec = env.do(t, http.MethodGet, "/cart/", "")
	var body cartResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Products)

	// The order shows up in the log
	rec = env.do(t, http.MethodGet, "/orders", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestCheckout_InvalidCustomerInfo(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodPost, "/checkout", `{"name":"","phone":"123","address":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	orders, _ := env.orderLog.List(context.Background())
	assert.Empty(t, orders)
}

func TestFeedback_SubmitAndExport(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodPost, "/feedback",
		`{"name":"Asha","mobile":"9876543210","service":"HydraFacial","rating":5,"comment":"lovely"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/feedback",
		`{"name":"Asha","mobile":"9876543210","service":"HydraFacial","rating":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/feedback/export", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "Name,Mobile,Email,Service,Rating,Feedback,Date")
	assert.Contains(t, rec.Body.String(), "lovely")
}

package controllers

import (
	"errors"
	"net/http"

	"clinic-cart-service/apperrors"
	"clinic-cart-service/models"
	"clinic-cart-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartController struct {
	Store  *services.CartStore
	Logger *zap.Logger
}

func NewCartController(store *services.CartStore, logger *zap.Logger) *CartController {
	return &CartController{
		Store:  store,
		Logger: logger,
	}
}

type addItemRequest struct {
	Kind     string `json:"kind" binding:"required"`
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity"`
}

func (cc *CartController) cartBody() gin.H {
	snap := cc.Store.Snapshot()
	return gin.H{
		"products": snap.Products,
		"services": snap.Services,
		"totals":   cc.Store.Totals(),
	}
}

// writeError maps application errors to their HTTP status.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	logger.Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// respondMutation renders the cart after a mutation. A persistence
// warning is not a failure: the in-memory cart changed, so the client
// gets the new state plus a warning field.
func (cc *CartController) respondMutation(c *gin.Context, err error) {
	if err == nil {
		c.JSON(http.StatusOK, cc.cartBody())
		return
	}
	if errors.Is(err, apperrors.ErrPersistenceUnavailable) {
		body := cc.cartBody()
		body["warning"] = apperrors.ErrPersistenceUnavailable.Message
		c.JSON(http.StatusOK, body)
		return
	}
	writeError(c, cc.Logger, err)
}

func kindParam(c *gin.Context) (models.CartKind, bool) {
	kind, ok := models.ParseCartKind(c.Query("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown cart kind"})
	}
	return kind, ok
}

// GetCart returns the current snapshot of both carts plus totals
func (cc *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cc.cartBody())
}

// GetTotals returns totals only, recomputed from current cart contents
func (cc *CartController) GetTotals(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Store.Totals())
}

// AddItem adds a catalog item to a cart, merging by id
func (cc *CartController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cc.Logger.Warn("invalid add-item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	kind, ok := models.ParseCartKind(req.Kind)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown cart kind"})
		return
	}

	err := cc.Store.AddOrMerge(c.Request.Context(), kind, req.ID, req.Quantity)
	cc.respondMutation(c, err)
}

// IncrementItem bumps a line item's quantity by one
func (cc *CartController) IncrementItem(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	err := cc.Store.IncrementQuantity(c.Request.Context(), kind, c.Param("id"))
	cc.respondMutation(c, err)
}

// DecrementItem lowers a line item's quantity by one, removing it at zero
func (cc *CartController) DecrementItem(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	err := cc.Store.DecrementQuantity(c.Request.Context(), kind, c.Param("id"))
	cc.respondMutation(c, err)
}

// RemoveItem deletes a line item from the cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	err := cc.Store.Remove(c.Request.Context(), kind, c.Param("id"))
	cc.respondMutation(c, err)
}

// ClearCart empties both carts
func (cc *CartController) ClearCart(c *gin.Context) {
	err := cc.Store.Clear(c.Request.Context())
	cc.respondMutation(c, err)
}

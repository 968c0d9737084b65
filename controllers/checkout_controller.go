package controllers

import (
	"net/http"

	"clinic-cart-service/models"
	"clinic-cart-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Orders *services.OrderService
	Logger *zap.Logger
}

func NewCheckoutController(orders *services.OrderService, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{
		Orders: orders,
		Logger: logger,
	}
}

// Checkout commits the current carts into an order
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var info models.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		cc.Logger.Warn("invalid checkout payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	order, err := cc.Orders.Commit(c.Request.Context(), info)
	if err != nil {
		writeError(c, cc.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// ListOrders returns the append-only order log
func (cc *CheckoutController) ListOrders(c *gin.Context) {
	orders, err := cc.Orders.Orders(c.Request.Context())
	if err != nil {
		writeError(c, cc.Logger, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

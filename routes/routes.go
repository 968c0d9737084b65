package routes

import (
	"clinic-cart-service/controllers"
	"clinic-cart-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Register(
	r *gin.Engine,
	store *services.CartStore,
	orders *services.OrderService,
	feedback *services.FeedbackService,
	logger *zap.Logger,
) {
	cartCtrl := controllers.NewCartController(store, logger)
	checkoutCtrl := controllers.NewCheckoutController(orders, logger)
	feedbackCtrl := controllers.NewFeedbackController(feedback, logger)

	cart := r.Group("/cart")
	{
		cart.GET("/", cartCtrl.GetCart)
		cart.GET("/totals", cartCtrl.GetTotals)
		cart.POST("/items", cartCtrl.AddItem)
		cart.POST("/items/:id/increment", cartCtrl.IncrementItem)
		cart.POST("/items/:id/decrement", cartCtrl.DecrementItem)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.DELETE("/", cartCtrl.ClearCart)
	}

	r.POST("/checkout", checkoutCtrl.Checkout)
	r.GET("/orders", checkoutCtrl.ListOrders)

	r.POST("/feedback", feedbackCtrl.Submit)
	r.GET("/feedback/export", feedbackCtrl.ExportCSV)
}

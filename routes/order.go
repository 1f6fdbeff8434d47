package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/order"
	"github.com/contact-ergiva-dev/ergiva-api/gateway/instamojo"
	"github.com/contact-ergiva-dev/ergiva-api/mailer"
	"github.com/contact-ergiva-dev/ergiva-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, gw instamojo.Client, mail mailer.Mailer) {
	orders := r.Group("/orders")
	{
		// Checkout; guests allowed, token attaches ownership when present
		orders.POST("", middleware.OptionalAuth(), orderControllers.CreateOrderHandler(db, gw, mail))

		// Gateway callback; signature check happens inside the handler
		orders.POST("/instamojo/webhook", orderControllers.InstamojoWebhookHandler(db, gw, mail))

		// Poll fallback when the webhook is delayed
		orders.POST("/verify-payment", orderControllers.VerifyPaymentHandler(db, gw, mail))

		// Orders for the logged-in user
		orders.GET("/my-orders", middleware.RequireAuth(), orderControllers.MyOrdersHandler(db))

		// Back-office order endpoints (admin JWT)
		orders.GET("/admin/all", middleware.RequireAuth(), middleware.RequireAdmin(), orderControllers.GetAllOrdersHandler(db))
		orders.GET("/admin/stats", middleware.RequireAuth(), middleware.RequireAdmin(), orderControllers.OrderStatsHandler(db))
		orders.PUT("/:id/status", middleware.RequireAuth(), middleware.RequireAdmin(), orderControllers.UpdateOrderStatusHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderFeedHandler)

		// Single order lookup by id or order_ref
		orders.GET("/:id", middleware.OptionalAuth(), orderControllers.GetOrderHandler(db))
	}
}

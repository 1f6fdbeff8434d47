package orderControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/models"
)

// GET /orders/admin/stats
func OrderStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalOrders, pendingOrders, confirmedOrders int64
		var todayOrders int64
		var revenue int64

		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
			return
		}
		db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&pendingOrders)
		db.Model(&models.Order{}).Where("status = ?", models.OrderStatusConfirmed).Count(&confirmedOrders)

		startOfDay := time.Now().Truncate(24 * time.Hour)
		db.Model(&models.Order{}).Where("created_at >= ?", startOfDay).Count(&todayOrders)

		// Revenue only counts settled payments.
		db.Model(&models.Order{}).
			Where("payment_status = ?", models.PaymentStatusCompleted).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&revenue)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"stats": gin.H{
				"total_orders":     totalOrders,
				"pending_orders":   pendingOrders,
				"confirmed_orders": confirmedOrders,
				"today_orders":     todayOrders,
				"revenue":          revenue, // paise
			},
		})
	}
}

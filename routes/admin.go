package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bookingControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/booking"
	orderControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/order"
	partnerControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/partner"
	productControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/product"
	testimonialControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/testimonial"
	userControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/user"
	"github.com/contact-ergiva-dev/ergiva-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey())
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productControllers.GetAllProductsAdmin(db))
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", productControllers.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(db))
		}

		// ─────────── Order Export ───────────
		adminGroup.GET("/orders/export-excel", orderControllers.ExportOrdersToExcel(db))

		// ─────────── Services & Bookings ───────────
		serviceAdmin := adminGroup.Group("/services")
		{
			serviceAdmin.POST("", bookingControllers.CreateService(db))
			serviceAdmin.PUT("/:id", bookingControllers.UpdateService(db))
			serviceAdmin.DELETE("/:id", bookingControllers.DeleteService(db))
		}
		bookingAdmin := adminGroup.Group("/bookings")
		{
			bookingAdmin.GET("", bookingControllers.GetAllBookingsHandler(db))
			bookingAdmin.PUT("/:id/status", bookingControllers.UpdateBookingStatusHandler(db))
		}

		// ─────────── Partner Applications ───────────
		partnerAdmin := adminGroup.Group("/partners")
		{
			partnerAdmin.GET("", partnerControllers.ListApplicationsHandler(db))
			partnerAdmin.PUT("/:id/review", partnerControllers.ReviewApplicationHandler(db))
		}

		// ─────────── Testimonials ───────────
		testimonialAdmin := adminGroup.Group("/testimonials")
		{
			testimonialAdmin.GET("", testimonialControllers.ListAllHandler(db))
			testimonialAdmin.PUT("/:id/approve", testimonialControllers.ApproveHandler(db))
			testimonialAdmin.DELETE("/:id", testimonialControllers.DeleteHandler(db))
		}
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bookingControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/booking"
	"github.com/contact-ergiva-dev/ergiva-api/mailer"
	"github.com/contact-ergiva-dev/ergiva-api/middleware"
)

func SetupBookingRoutes(r *gin.Engine, db *gorm.DB, mail mailer.Mailer) {
	r.GET("/services", bookingControllers.GetServices(db))

	bookings := r.Group("/bookings")
	{
		bookings.POST("", middleware.OptionalAuth(), bookingControllers.CreateBookingHandler(db, mail))
		bookings.GET("/my-bookings", middleware.RequireAuth(), bookingControllers.MyBookingsHandler(db))
	}
}

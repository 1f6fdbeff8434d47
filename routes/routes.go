package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/gateway/instamojo"
	"github.com/contact-ergiva-dev/ergiva-api/mailer"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, gw instamojo.Client, mail mailer.Mailer) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// User profile routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Order flow: checkout, webhook, poll fallback, reads
	SetupOrderRoutes(r, db, gw, mail)

	// Storefront catalog and bookings
	SetupCatalogRoutes(r, db)
	SetupBookingRoutes(r, db, mail)

	// Partner intake and testimonials
	SetupCommunityRoutes(r, db)

	// Back office (API-key-protected)
	SetupAdminRoutes(r, db)
}

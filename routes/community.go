package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	partnerControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/partner"
	testimonialControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/testimonial"
)

// SetupCommunityRoutes registers partner intake and testimonials.
func SetupCommunityRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/partners/apply", partnerControllers.ApplyHandler(db))

	testimonials := r.Group("/testimonials")
	{
		testimonials.POST("", testimonialControllers.CreateTestimonialHandler(db))
		testimonials.GET("", testimonialControllers.ListApprovedHandler(db))
	}
}

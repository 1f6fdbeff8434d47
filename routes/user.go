package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/user"
	"github.com/contact-ergiva-dev/ergiva-api/middleware"
)

// SetupUserRoutes registers JWT-protected profile endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireAuth())
	{
		userGroup.GET("", userControllers.GetUser(db))
		userGroup.PUT("", userControllers.UpdateUser(db))
	}
}

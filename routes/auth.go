package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/user"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", userControllers.RegisterHandler(db))
		authGroup.POST("/login", userControllers.LoginHandler(db))
	}
}

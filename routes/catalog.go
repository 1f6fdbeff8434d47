package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/contact-ergiva-dev/ergiva-api/controllers/product"
)

// SetupCatalogRoutes registers the public storefront catalog.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))
	}
	r.GET("/categories", productControllers.GetAllCategories(db))
}

package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/models"
)

// GET /products — storefront listing, active products only.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("Categories").Where("active = ?", true).Order("created_at DESC")

		if categoryID := c.Query("category_id"); categoryID != "" {
			q = q.Joins("JOIN product_categories pc ON pc.product_id = products.id").
				Where("pc.category_id = ?", categoryID)
		}
		if search := c.Query("search"); search != "" {
			q = q.Where("name LIKE ?", "%"+search+"%")
		}

		var products []models.Product
		if err := q.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Categories").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}

// GET /admin/products — includes inactive rows.
func GetAllProductsAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Categories").Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/models"
)

type ProductInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"` // paise
	Image       string `json:"image"`
	Stock       int    `json:"stock" binding:"min=0"`
	Active      *bool  `json:"active"`
	CategoryIDs []uint `json:"category_ids"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Image:       input.Image,
			Stock:       input.Stock,
			Active:      true,
		}
		if input.Active != nil {
			product.Active = *input.Active
		}

		if len(input.CategoryIDs) > 0 {
			var categories []models.Category
			if err := db.Find(&categories, input.CategoryIDs).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve categories"})
				return
			}
			product.Categories = categories
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
	}
}

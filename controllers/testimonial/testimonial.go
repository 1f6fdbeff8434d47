package testimonialControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/models"
)

type TestimonialInput struct {
	Name    string `json:"name" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Content string `json:"content" binding:"required"`
}

// POST /testimonials — public; held for moderation.
func CreateTestimonialHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TestimonialInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		testimonial := models.Testimonial{
			Name:    input.Name,
			Rating:  input.Rating,
			Content: input.Content,
		}
		if err := db.Create(&testimonial).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit testimonial"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "testimonial": testimonial})
	}
}

// GET /testimonials — approved only.
func ListApprovedHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var testimonials []models.Testimonial
		if err := db.Where("approved = ?", true).Order("created_at DESC").Find(&testimonials).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch testimonials"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "testimonials": testimonials})
	}
}

// GET /admin/testimonials
func ListAllHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var testimonials []models.Testimonial
		if err := db.Order("created_at DESC").Find(&testimonials).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch testimonials"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "testimonials": testimonials})
	}
}

// PUT /admin/testimonials/:id/approve
func ApproveHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Model(&models.Testimonial{}).Where("id = ?", c.Param("id")).
			Update("approved", true)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to approve testimonial"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "testimonial not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "testimonial approved"})
	}
}

// DELETE /admin/testimonials/:id
func DeleteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Where("id = ?", c.Param("id")).Delete(&models.Testimonial{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete testimonial"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "testimonial not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "testimonial deleted"})
	}
}

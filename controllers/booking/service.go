package bookingControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/models"
)

type ServiceInput struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	Price           int64  `json:"price" binding:"required,min=1"` // paise
	Active          *bool  `json:"active"`
}

// GET /services — public catalog of bookable sessions.
func GetServices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var services []models.Service
		if err := db.Where("active = ?", true).Order("name").Find(&services).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch services"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
	}
}

// POST /admin/services
func CreateService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ServiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		service := models.Service{
			Name:            input.Name,
			Description:     input.Description,
			DurationMinutes: input.DurationMinutes,
			Price:           input.Price,
			Active:          true,
		}
		if input.Active != nil {
			service.Active = *input.Active
		}
		if err := db.Create(&service).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create service"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "service": service})
	}
}

// PUT /admin/services/:id
func UpdateService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ServiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updates := map[string]interface{}{
			"name":             input.Name,
			"description":      input.Description,
			"duration_minutes": input.DurationMinutes,
			"price":            input.Price,
		}
		if input.Active != nil {
			updates["active"] = *input.Active
		}
		res := db.Model(&models.Service{}).Where("id = ?", c.Param("id")).Updates(updates)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update service"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "service updated"})
	}
}

// DELETE /admin/services/:id
func DeleteService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Where("id = ?", c.Param("id")).Delete(&models.Service{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete service"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "service deleted"})
	}
}

package partnerControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/models"
)

type ApplyRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	ClinicName      string `json:"clinic_name"`
	City            string `json:"city"`
	ExperienceYears int    `json:"experience_years" binding:"min=0"`
	Message         string `json:"message"`
}

type ReviewRequest struct {
	Status string `json:"status" binding:"required"` // approved or rejected
}

// POST /partners/apply — public intake for physiotherapists.
func ApplyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ApplyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		application := models.PartnerApplication{
			Name:            req.Name,
			Email:           req.Email,
			Phone:           req.Phone,
			ClinicName:      req.ClinicName,
			City:            req.City,
			ExperienceYears: req.ExperienceYears,
			Message:         req.Message,
			Status:          models.ApplicationStatusPending,
		}
		if err := db.Create(&application).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit application"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "application": application})
	}
}

// GET /admin/partners
func ListApplicationsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		var applications []models.PartnerApplication
		if err := q.Find(&applications).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch applications"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "applications": applications})
	}
}

// PUT /admin/partners/:id/review
func ReviewApplicationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var status models.ApplicationStatus
		switch strings.ToLower(req.Status) {
		case string(models.ApplicationStatusApproved):
			status = models.ApplicationStatusApproved
		case string(models.ApplicationStatusRejected):
			status = models.ApplicationStatusRejected
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be approved or rejected"})
			return
		}

		var application models.PartnerApplication
		if err := db.First(&application, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch application"})
			return
		}

		if err := db.Model(&application).Update("status", status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to review application"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "application": application})
	}
}

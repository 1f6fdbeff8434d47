package bookingControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/mailer"
	"github.com/contact-ergiva-dev/ergiva-api/models"
)

type CreateBookingRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	PatientName string `json:"patient_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Slot        string `json:"slot" binding:"required"`
	Notes       string `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func mapBookingStatus(status string) (models.BookingStatus, error) {
	switch strings.ToLower(status) {
	case string(models.BookingStatusPending):
		return models.BookingStatusPending, nil
	case string(models.BookingStatusConfirmed):
		return models.BookingStatusConfirmed, nil
	case string(models.BookingStatusCompleted):
		return models.BookingStatusCompleted, nil
	case string(models.BookingStatusCancelled):
		return models.BookingStatusCancelled, nil
	default:
		return "", errors.New("invalid booking status")
	}
}

// POST /bookings — public; guests book without an account.
func CreateBookingHandler(db *gorm.DB, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		if date.Before(time.Now().Truncate(24 * time.Hour)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date cannot be in the past"})
			return
		}

		var service models.Service
		if err := db.First(&service, "id = ? AND active = ?", req.ServiceID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up service"})
			return
		}

		var userID *uint
		if v, ok := c.Get("user_id"); ok {
			if id, ok := v.(uint); ok {
				userID = &id
			}
		}

		booking := models.Booking{
			UserID:      userID,
			ServiceID:   service.ID,
			Service:     service,
			PatientName: req.PatientName,
			Email:       req.Email,
			Phone:       req.Phone,
			Date:        date,
			Slot:        req.Slot,
			Notes:       req.Notes,
			Status:      models.BookingStatusPending,
		}
		if err := db.Create(&booking).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
			return
		}

		go func(b models.Booking) {
			if err := mail.SendBookingConfirmation(b); err != nil {
				log.Printf("booking confirmation mail failed for booking %d: %v", b.ID, err)
			}
		}(booking)

		c.JSON(http.StatusCreated, gin.H{"success": true, "booking": booking})
	}
}

// GET /bookings/my-bookings
func MyBookingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		var bookings []models.Booking
		if err := db.
			Where("user_id = ?", userID).
			Preload("Service").
			Order("date DESC").
			Find(&bookings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
	}
}

// GET /admin/bookings
func GetAllBookingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("Service").Order("date DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		var bookings []models.Booking
		if err := q.Find(&bookings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
	}
}

// PUT /admin/bookings/:id/status
func UpdateBookingStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateBookingStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapBookingStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := db.Model(&models.Booking{}).Where("id = ?", c.Param("id")).
			Update("status", newStatus)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking status updated"})
	}
}

package orderControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/gateway/instamojo"
	"github.com/contact-ergiva-dev/ergiva-api/mailer"
	"github.com/contact-ergiva-dev/ergiva-api/models"
)

type VerifyPaymentRequest struct {
	OrderID          uint   `json:"order_id" binding:"required"`
	PaymentRequestID string `json:"payment_request_id" binding:"required"`
	PaymentID        string `json:"payment_id"`
}

// POST /orders/verify-payment
//
// Synchronous fallback for delayed webhooks: the client polls and we read the
// gateway directly. Only a definitive gateway outcome (credited or failed)
// transitions the order; a poll that finds the payment still in flight leaves
// it pending and payable. The pending-only transition guard in
// applyPaymentOutcome means a stale negative poll can never undo a
// webhook-confirmed payment.
func VerifyPaymentHandler(db *gorm.DB, gw instamojo.Client, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").
			Where("id = ? AND payment_request_id = ?", req.OrderID, req.PaymentRequestID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up order"})
			return
		}

		if order.PaymentStatus == models.PaymentStatusCompleted {
			c.JSON(http.StatusOK, gin.H{
				"success":        true,
				"message":        "payment already confirmed",
				"payment_status": order.PaymentStatus,
				"order":          order,
			})
			return
		}

		status, err := gw.GetPaymentStatus(req.PaymentRequestID, req.PaymentID)
		if err != nil {
			var gwErr *instamojo.GatewayError
			if errors.As(err, &gwErr) {
				c.JSON(http.StatusBadGateway, gin.H{"error": gwErr.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !status.IsSuccessful && !status.IsFailed {
			// Still awaiting payment. Not an outcome, so the order stays
			// pending; the webhook or a later poll settles it.
			c.JSON(http.StatusOK, gin.H{
				"success":        true,
				"message":        "payment not completed",
				"payment_status": order.PaymentStatus,
				"order":          order,
			})
			return
		}

		applied, err := applyPaymentOutcome(db, &order, status.PaymentID, status.IsSuccessful)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}
		if applied {
			log.Printf("order %s payment %s via poll (status=%s)", order.OrderRef, order.PaymentStatus, status.RawStatus)
			if status.IsSuccessful {
				go func(o models.Order) {
					if err := mail.SendOrderConfirmation(o); err != nil {
						log.Printf("payment confirmation mail failed for %s: %v", o.OrderRef, err)
					}
				}(order)
			}
			broadcastOrderUpdate(order)
		}

		message := "payment not completed"
		if status.IsSuccessful {
			message = "payment verified"
		}
		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"message":        message,
			"payment_status": order.PaymentStatus,
			"order":          order,
		})
	}
}

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

// POST /orders/instamojo/webhook
//
// The gateway retries on timeouts and non-2xx responses, so every benign
// outcome (duplicate delivery, unknown request ID) is acknowledged with 200.
// No order state is touched unless the MAC verifies.
func InstamojoWebhookHandler(db *gorm.DB, gw instamojo.Client, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse form"})
			return
		}

		event, err := gw.ProcessWebhook(c.Request.PostForm)
		if err != nil {
			if errors.Is(err, instamojo.ErrInvalidSignature) {
				log.Printf("rejected instamojo webhook with bad signature (payment_request_id=%q)",
					c.Request.PostForm.Get("payment_request_id"))
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").
			Where("payment_request_id = ?", event.PaymentRequestID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Replayed or foreign webhook. Ack so the gateway stops retrying.
				log.Printf("instamojo webhook for unknown payment_request_id %q ignored", event.PaymentRequestID)
				c.JSON(http.StatusOK, gin.H{"success": true, "message": "no matching order"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up order"})
			return
		}

		applied, err := applyPaymentOutcome(db, &order, event.PaymentID, event.IsSuccessful)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}
		if !applied {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "order already settled"})
			return
		}

		log.Printf("order %s payment %s via webhook (status=%s)", order.OrderRef, order.PaymentStatus, event.Status)
		if event.IsSuccessful {
			go func(o models.Order) {
				if err := mail.SendOrderConfirmation(o); err != nil {
					log.Printf("payment confirmation mail failed for %s: %v", o.OrderRef, err)
				}
			}(order)
		}
		broadcastOrderUpdate(order)

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "webhook processed"})
	}
}

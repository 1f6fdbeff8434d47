package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/gateway/instamojo"
	"github.com/contact-ergiva-dev/ergiva-api/mailer"
	"github.com/contact-ergiva-dev/ergiva-api/models"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type ShippingAddressInput struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
}

type CreateOrderRequest struct {
	Items           []OrderItemInput     `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddressInput `json:"shipping_address" binding:"required"`
	PaymentMethod   string               `json:"payment_method" binding:"required"`
	OrderNotes      string               `json:"order_notes"`
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
}

// -------- Errors --------

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// InsufficientStockError names the product and what is left, per the
// storefront's error contract.
type InsufficientStockError struct {
	ProductName string
	Remaining   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: only %d left", e.ProductName, e.Remaining)
}

// -------- Helpers --------

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func mapPaymentMethod(method string) (models.PaymentMethod, error) {
	switch strings.ToLower(method) {
	case string(models.PaymentMethodInstamojo):
		return models.PaymentMethodInstamojo, nil
	case string(models.PaymentMethodPayOnVisit):
		return models.PaymentMethodPayOnVisit, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// CreateOrder validates the cart against live product rows, persists the
// order, its items and the stock decrements in one transaction, then asks the
// gateway for a payment link. Prices always come from the product rows, never
// the client.
//
// A gateway failure does not fail the order: the order survives with
// payment_status=failed so the customer can retry payment out-of-band.
func CreateOrder(db *gorm.DB, gw instamojo.Client, mail mailer.Mailer, req CreateOrderRequest, userID *uint) (*models.Order, string, error) {
	method, err := mapPaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, "", err
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		var total int64
		var items []models.OrderItem

		for _, in := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ? AND active = ?", in.ProductID, true).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", ErrProductNotFound, in.ProductID)
				}
				return err
			}
			if product.Stock < in.Quantity {
				return &InsufficientStockError{ProductName: product.Name, Remaining: product.Stock}
			}

			// Conditional decrement: the WHERE clause re-checks stock so two
			// competing orders can never drive it negative.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, in.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", in.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var current models.Product
				tx.Select("stock", "name").First(&current, product.ID)
				return &InsufficientStockError{ProductName: product.Name, Remaining: current.Stock}
			}

			total += product.Price * int64(in.Quantity)
			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    in.Quantity,
			})
		}

		order = models.Order{
			OrderRef:      generateOrderRef(),
			UserID:        userID,
			Items:         items,
			TotalAmount:   total,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			PaymentMethod: method,
			ShippingAddress: models.ShippingAddress{
				Name:       req.ShippingAddress.Name,
				Email:      req.ShippingAddress.Email,
				Phone:      req.ShippingAddress.Phone,
				Address:    req.ShippingAddress.Address,
				City:       req.ShippingAddress.City,
				State:      req.ShippingAddress.State,
				PostalCode: req.ShippingAddress.PostalCode,
			},
			OrderNotes: req.OrderNotes,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, "", err
	}

	var paymentURL string
	if method == models.PaymentMethodInstamojo {
		pr, gerr := gw.CreatePaymentRequest(
			order.TotalAmount,
			"Ergiva order "+order.OrderRef,
			instamojo.Buyer{
				Name:  order.ShippingAddress.Name,
				Email: order.ShippingAddress.Email,
				Phone: order.ShippingAddress.Phone,
			},
		)
		if gerr != nil {
			log.Printf("instamojo payment request failed for order %s: %v", order.OrderRef, gerr)
			if err := db.Model(&order).Update("payment_status", models.PaymentStatusFailed).Error; err != nil {
				log.Printf("failed to mark order %s payment failed: %v", order.OrderRef, err)
			}
			order.PaymentStatus = models.PaymentStatusFailed
		} else {
			// The webhook correlates by request ID, so the mapping must be
			// durable before we answer the client.
			if err := db.Model(&order).Update("payment_request_id", pr.ID).Error; err != nil {
				return nil, "", err
			}
			order.PaymentRequestID = pr.ID
			paymentURL = pr.PaymentURL
		}
	}

	go func(o models.Order) {
		if err := mail.SendOrderConfirmation(o); err != nil {
			log.Printf("order confirmation mail failed for %s: %v", o.OrderRef, err)
		}
	}(order)

	broadcastOrderUpdate(order)
	return &order, paymentURL, nil
}

// applyPaymentOutcome moves an order out of pending exactly once. Repeated
// webhooks and stale polls hit zero affected rows and change nothing, which
// keeps payment_status=completed terminal.
func applyPaymentOutcome(db *gorm.DB, order *models.Order, paymentID string, successful bool) (bool, error) {
	updates := map[string]interface{}{"payment_id": paymentID}
	if successful {
		updates["status"] = models.OrderStatusConfirmed
		updates["payment_status"] = models.PaymentStatusCompleted
	} else {
		updates["status"] = models.OrderStatusCancelled
		updates["payment_status"] = models.PaymentStatusFailed
	}

	res := db.Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", order.ID, models.PaymentStatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	order.PaymentID = paymentID
	if successful {
		order.Status = models.OrderStatusConfirmed
		order.PaymentStatus = models.PaymentStatusCompleted
	} else {
		order.Status = models.OrderStatusCancelled
		order.PaymentStatus = models.PaymentStatusFailed
	}
	return true, nil
}

// -------- Handlers --------

type instamojoPayment struct {
	PaymentRequestID string `json:"payment_request_id"`
	PaymentURL       string `json:"payment_url"`
}

type orderResponse struct {
	models.Order
	InstamojoPayment *instamojoPayment `json:"instamojo_payment,omitempty"`
}

// POST /orders
func CreateOrderHandler(db *gorm.DB, gw instamojo.Client, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var userID *uint
		if v, ok := c.Get("user_id"); ok {
			if id, ok := v.(uint); ok {
				userID = &id
			}
		}

		order, paymentURL, err := CreateOrder(db, gw, mail, req, userID)
		if err != nil {
			var stockErr *InsufficientStockError
			switch {
			case errors.Is(err, ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.As(err, &stockErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, ErrInvalidPaymentMethod):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				log.Printf("order creation failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			}
			return
		}

		resp := orderResponse{Order: *order}
		if paymentURL != "" {
			resp.InstamojoPayment = &instamojoPayment{
				PaymentRequestID: order.PaymentRequestID,
				PaymentURL:       paymentURL,
			}
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "order": resp})
	}
}

// GET /orders/:id — accepts numeric ID or order_ref. Returns full detail with
// or without auth; see DESIGN.md for the access-control open question.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order id is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("Items").
			Where("id = ? OR order_ref = ?", id, id).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// GET /orders/my-orders
func MyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

// GET /orders/admin/all
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if ps := c.Query("payment_status"); ps != "" {
			q = q.Where("payment_status = ?", ps)
		}

		var orders []models.Order
		if err := q.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

// PUT /orders/:id/status — admin-only transitions (shipped, delivered, ...).
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{"status": newStatus}
		if req.TrackingNumber != "" {
			updates["tracking_number"] = req.TrackingNumber
		}

		res := db.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "order status updated"})
	}
}

package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	// Order statuses
	OrderStatusPending   OrderStatus = "pending"   // Placed, awaiting payment outcome
	OrderStatusConfirmed OrderStatus = "confirmed" // Payment completed
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the items
	OrderStatusCancelled OrderStatus = "cancelled" // Payment failed or cancelled before shipping

	// Payment statuses. Completed is terminal: once set it is never overwritten.
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"

	// Payment methods
	PaymentMethodInstamojo  PaymentMethod = "instamojo"
	PaymentMethodPayOnVisit PaymentMethod = "pay_on_visit"
)

// ShippingAddress is embedded in Order. All fields are snapshots taken at
// checkout, independent of the user profile.
type ShippingAddress struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderRef        string          `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID          *uint           `gorm:"index" json:"user_id"` // nil for guest checkout
	User            *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     int64           `gorm:"not null" json:"total_amount"` // paise
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod   PaymentMethod   `gorm:"type:VARCHAR(20)" json:"payment_method"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`

	// Gateway correlation: the webhook carries the payment request ID, not our
	// order ID, so PaymentRequestID must be persisted before checkout returns.
	PaymentRequestID string `gorm:"index" json:"payment_request_id"`
	PaymentID        string `json:"payment_id"`

	TrackingNumber string    `json:"tracking_number"`
	OrderNotes     string    `json:"order_notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OrderItem snapshots name and unit price at purchase time; later product
// edits must not change past orders.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderID     uint   `gorm:"index" json:"order_id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"` // paise
	Quantity    int    `json:"quantity"`
}

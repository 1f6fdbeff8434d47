package orderControllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/gateway/instamojo"
	"github.com/contact-ergiva-dev/ergiva-api/mailer"
	"github.com/contact-ergiva-dev/ergiva-api/models"
)

const testSalt = "test-salt"

func webhookGateway() instamojo.Client {
	return instamojo.NewClient(instamojo.Config{
		APIKey:    "k",
		AuthToken: "t",
		Salt:      testSalt,
	})
}

func newWebhookRouter(db *gorm.DB, gw instamojo.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders/instamojo/webhook", InstamojoWebhookHandler(db, gw, mailer.Noop{}))
	return r
}

func seedPendingOrder(t *testing.T, db *gorm.DB, requestID string) models.Order {
	t.Helper()
	order := models.Order{
		OrderRef:         generateOrderRef(),
		TotalAmount:      100000,
		Status:           models.OrderStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
		PaymentMethod:    models.PaymentMethodInstamojo,
		PaymentRequestID: requestID,
		ShippingAddress: models.ShippingAddress{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "+919999999999",
		},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

// signedWebhookForm builds a provider-shaped payload with a valid MAC.
func signedWebhookForm(paymentID, requestID, status string) url.Values {
	form := url.Values{}
	form.Set("payment_id", paymentID)
	form.Set("payment_request_id", requestID)
	form.Set("status", status)
	form.Set("buyer_name", "Asha Rao")
	form.Set("buyer", "asha@example.com")
	form.Set("buyer_phone", "+919999999999")
	form.Set("amount", "1000.00")
	form.Set("currency", "INR")
	form.Set("fees", "20.00")

	values := []string{
		paymentID, requestID, status,
		"Asha Rao", "asha@example.com", "+919999999999",
		"1000.00", "INR", "20.00",
	}
	form.Set("mac", instamojo.ComputeMAC(testSalt, values))
	return form
}

func postWebhook(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders/instamojo/webhook",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookConfirmsOrderOnCredit(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "req_123")
	r := newWebhookRouter(db, webhookGateway())

	w := postWebhook(r, signedWebhookForm("MOJO1", "req_123", "Credit"))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, got.Status)
	assert.Equal(t, models.PaymentStatusCompleted, got.PaymentStatus)
	assert.Equal(t, "MOJO1", got.PaymentID)
}

func TestWebhookCancelsOrderOnFailure(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "req_123")
	r := newWebhookRouter(db, webhookGateway())

	w := postWebhook(r, signedWebhookForm("MOJO1", "req_123", "Failed"))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)
	assert.Equal(t, models.PaymentStatusFailed, got.PaymentStatus)
}

func TestWebhookRejectsTamperedPayload(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "req_123")
	r := newWebhookRouter(db, webhookGateway())

	form := signedWebhookForm("MOJO1", "req_123", "Credit")
	form.Set("amount", "1.00") // tamper after signing

	w := postWebhook(r, form)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// No state change on a bad signature.
	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.Equal(t, models.PaymentStatusPending, got.PaymentStatus)
	assert.Empty(t, got.PaymentID)
}

func TestWebhookIsIdempotentOnRetry(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "req_123")
	r := newWebhookRouter(db, webhookGateway())

	form := signedWebhookForm("MOJO1", "req_123", "Credit")
	first := postWebhook(r, form)
	second := postWebhook(r, form)

	// The provider retry is acked without re-firing the transition.
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "already settled")

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, got.PaymentStatus)
}

func TestWebhookLateFailureCannotRegressCompleted(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "req_123")
	r := newWebhookRouter(db, webhookGateway())

	postWebhook(r, signedWebhookForm("MOJO1", "req_123", "Credit"))
	w := postWebhook(r, signedWebhookForm("MOJO1", "req_123", "Failed"))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, got.PaymentStatus, "completed is terminal")
	assert.Equal(t, models.OrderStatusConfirmed, got.Status)
}

func TestWebhookForUnknownRequestIDIsAcked(t *testing.T) {
	db := setupTestDB(t)
	r := newWebhookRouter(db, webhookGateway())

	w := postWebhook(r, signedWebhookForm("MOJO1", "req_unknown", "Credit"))
	// 200 so the gateway stops retrying a webhook we can never match.
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "no matching order")
}

package orderControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/contact-ergiva-dev/ergiva-api/gateway/instamojo"
	"github.com/contact-ergiva-dev/ergiva-api/mailer"
	"github.com/contact-ergiva-dev/ergiva-api/models"
)

func newVerifyRouter(db *gorm.DB, gw instamojo.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders/verify-payment", VerifyPaymentHandler(db, gw, mailer.Noop{}))
	return r
}

func postVerify(r *gin.Engine, body VerifyPaymentRequest) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/orders/verify-payment", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyPaymentConfirmsPendingOrder(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "req_123")
	gw := &fakeGateway{status: &instamojo.StatusResult{
		PaymentID: "MOJO1", RawStatus: "Credit", IsSuccessful: true,
	}}
	r := newVerifyRouter(db, gw)

	w := postVerify(r, VerifyPaymentRequest{OrderID: order.ID, PaymentRequestID: "req_123"})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, got.Status)
	assert.Equal(t, models.PaymentStatusCompleted, got.PaymentStatus)
	assert.Equal(t, "MOJO1", got.PaymentID)
}

func TestStalePollCannotRegressCompletedPayment(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "req_123")

	// Webhook already confirmed the payment.
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":         models.OrderStatusConfirmed,
			"payment_status": models.PaymentStatusCompleted,
			"payment_id":     "MOJO1",
		}).Error)

	// A stale poll reports failure.
	gw := &fakeGateway{status: &instamojo.StatusResult{
		RawStatus: "Failed", IsFailed: true,
	}}
	r := newVerifyRouter(db, gw)

	w := postVerify(r, VerifyPaymentRequest{OrderID: order.ID, PaymentRequestID: "req_123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already confirmed")

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, got.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, got.Status)
	assert.Equal(t, "MOJO1", got.PaymentID)
}

func TestVerifyPaymentFailedOutcomeCancelsOrder(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "req_123")
	gw := &fakeGateway{status: &instamojo.StatusResult{
		PaymentID: "MOJO1", RawStatus: "Failed", IsFailed: true,
	}}
	r := newVerifyRouter(db, gw)

	w := postVerify(r, VerifyPaymentRequest{OrderID: order.ID, PaymentRequestID: "req_123"})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)
	assert.Equal(t, models.PaymentStatusFailed, got.PaymentStatus)
}

func TestVerifyPaymentPendingStatusLeavesOrderPayable(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "req_123")

	// The customer polls before completing checkout on the gateway page.
	gw := &fakeGateway{status: &instamojo.StatusResult{RawStatus: "Pending"}}
	r := newVerifyRouter(db, gw)

	w := postVerify(r, VerifyPaymentRequest{OrderID: order.ID, PaymentRequestID: "req_123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "payment not completed")

	// An in-flight payment is not an outcome: the order must stay pending.
	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.Equal(t, models.PaymentStatusPending, got.PaymentStatus)

	// The Credit webhook that lands afterwards still confirms the order.
	wr := newWebhookRouter(db, webhookGateway())
	ww := postWebhook(wr, signedWebhookForm("MOJO1", "req_123", "Credit"))
	require.Equal(t, http.StatusOK, ww.Code)

	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, got.Status)
	assert.Equal(t, models.PaymentStatusCompleted, got.PaymentStatus)
	assert.Equal(t, "MOJO1", got.PaymentID)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	r := newVerifyRouter(db, &fakeGateway{})

	w := postVerify(r, VerifyPaymentRequest{OrderID: 42, PaymentRequestID: "req_missing"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyPaymentGatewayErrorSurfacesAs502(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "req_123")
	gw := &fakeGateway{statusErr: &instamojo.GatewayError{Message: "upstream down"}}
	r := newVerifyRouter(db, gw)

	w := postVerify(r, VerifyPaymentRequest{OrderID: order.ID, PaymentRequestID: "req_123"})
	require.Equal(t, http.StatusBadGateway, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, got.PaymentStatus)
}

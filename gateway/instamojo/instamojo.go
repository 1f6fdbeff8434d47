package instamojo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Buyer is the contact attached to a payment request.
type Buyer struct {
	Name  string
	Email string
	Phone string
}

// PaymentRequest is the gateway's reply to a create call.
type PaymentRequest struct {
	ID         string
	PaymentURL string
}

// StatusResult is a normalized status read for the poll fallback. A payment
// that is still in flight sets neither flag: only a credited or definitively
// failed payment is an outcome.
type StatusResult struct {
	PaymentID    string
	RawStatus    string
	IsSuccessful bool
	IsFailed     bool
}

// WebhookEvent is a verified, normalized webhook payload. ProcessWebhook only
// returns one after the MAC has been checked, so callers cannot forget the
// signature check.
type WebhookEvent struct {
	PaymentID        string
	PaymentRequestID string
	Status           string
	BuyerName        string
	BuyerEmail       string
	BuyerPhone       string
	Amount           string
	Currency         string
	Fees             string
	IsSuccessful     bool
}

// Client is the narrow gateway interface the order flow depends on. Tests and
// the service layer use doubles behind it.
type Client interface {
	CreatePaymentRequest(amountPaise int64, purpose string, buyer Buyer) (*PaymentRequest, error)
	GetPaymentStatus(requestID, paymentID string) (*StatusResult, error)
	ProcessWebhook(form url.Values) (*WebhookEvent, error)
}

// GatewayError carries the provider's message. Callers decide whether it is
// fatal; order creation treats it as non-fatal.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return "instamojo: " + e.Message
}

type Config struct {
	APIKey      string
	AuthToken   string
	Salt        string
	BaseURL     string
	RedirectURL string // where the customer lands after paying
	WebhookURL  string // where the gateway posts payment events
}

const defaultBaseURL = "https://www.instamojo.com/api/1.1"

// NewFromEnv builds a client from INSTAMOJO_* and PAYMENT_* environment
// variables and fails when any credential or callback URL is missing. There
// is no insecure default.
func NewFromEnv() (*HTTPClient, error) {
	cfg := Config{
		APIKey:      os.Getenv("INSTAMOJO_API_KEY"),
		AuthToken:   os.Getenv("INSTAMOJO_AUTH_TOKEN"),
		Salt:        os.Getenv("INSTAMOJO_SALT"),
		BaseURL:     os.Getenv("INSTAMOJO_BASE_URL"),
		RedirectURL: os.Getenv("PAYMENT_REDIRECT_URL"),
		WebhookURL:  os.Getenv("PAYMENT_WEBHOOK_URL"),
	}
	if cfg.APIKey == "" || cfg.AuthToken == "" || cfg.Salt == "" {
		return nil, fmt.Errorf("instamojo configuration missing")
	}
	if cfg.RedirectURL == "" || cfg.WebhookURL == "" {
		return nil, fmt.Errorf("PAYMENT_REDIRECT_URL and PAYMENT_WEBHOOK_URL must be set")
	}
	return NewClient(cfg), nil
}

// HTTPClient talks to the Instamojo REST API.
type HTTPClient struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *HTTPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 8 * time.Second},
	}
}

// formatRupees renders paise as a rupee string ("100000" -> "1000.00"), the
// amount format the gateway API expects.
func formatRupees(paise int64) string {
	return fmt.Sprintf("%d.%02d", paise/100, paise%100)
}

type paymentRequestResponse struct {
	Success        bool `json:"success"`
	PaymentRequest struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		LongURL  string `json:"longurl"`
		Payments []struct {
			PaymentID string `json:"payment_id"`
			Status    string `json:"status"`
		} `json:"payments"`
		Payment struct {
			PaymentID string `json:"payment_id"`
			Status    string `json:"status"`
		} `json:"payment"`
	} `json:"payment_request"`
	Message json.RawMessage `json:"message"`
}

func (c *HTTPClient) CreatePaymentRequest(amountPaise int64, purpose string, buyer Buyer) (*PaymentRequest, error) {
	if amountPaise <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	if purpose == "" {
		return nil, fmt.Errorf("payment purpose is required")
	}
	if buyer.Email == "" {
		return nil, fmt.Errorf("buyer email is required")
	}

	form := url.Values{}
	form.Set("amount", formatRupees(amountPaise))
	form.Set("purpose", purpose)
	form.Set("buyer_name", buyer.Name)
	form.Set("email", buyer.Email)
	form.Set("phone", buyer.Phone)
	form.Set("redirect_url", c.cfg.RedirectURL)
	form.Set("webhook", c.cfg.WebhookURL)
	form.Set("allow_repeated_payments", "False")

	var out paymentRequestResponse
	if err := c.do("POST", "/payment-requests/", form, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.PaymentRequest.ID == "" {
		return nil, &GatewayError{Message: rawMessage(out.Message, "payment request rejected")}
	}
	if out.PaymentRequest.LongURL == "" {
		return nil, &GatewayError{Message: "empty payment URL in response"}
	}
	return &PaymentRequest{ID: out.PaymentRequest.ID, PaymentURL: out.PaymentRequest.LongURL}, nil
}

// GetPaymentStatus reads payment state. With a payment ID it fetches that
// payment's record; without one it reads the payment request and inspects the
// payments it carries.
func (c *HTTPClient) GetPaymentStatus(requestID, paymentID string) (*StatusResult, error) {
	if requestID == "" {
		return nil, fmt.Errorf("payment request id is required")
	}

	path := "/payment-requests/" + requestID + "/"
	if paymentID != "" {
		path = "/payment-requests/" + requestID + "/" + paymentID + "/"
	}

	var out paymentRequestResponse
	if err := c.do("GET", path, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &GatewayError{Message: rawMessage(out.Message, "status lookup rejected")}
	}

	if paymentID != "" {
		p := out.PaymentRequest.Payment
		return &StatusResult{
			PaymentID:    p.PaymentID,
			RawStatus:    p.Status,
			IsSuccessful: isPaidStatus(p.Status),
			IsFailed:     isFailedStatus(p.Status),
		}, nil
	}

	// Request-level read: "Completed" on the request, or a credited payment.
	// A request that is merely Pending/Sent is still payable, so it maps to
	// neither outcome flag.
	res := &StatusResult{RawStatus: out.PaymentRequest.Status}
	if strings.EqualFold(out.PaymentRequest.Status, "Completed") {
		res.IsSuccessful = true
	}
	for _, p := range out.PaymentRequest.Payments {
		if isPaidStatus(p.Status) {
			res.PaymentID = p.PaymentID
			res.RawStatus = p.Status
			res.IsSuccessful = true
			break
		}
	}
	if !res.IsSuccessful {
		res.IsFailed = isFailedStatus(res.RawStatus)
	}
	return res, nil
}

// ProcessWebhook verifies the MAC before trusting any field.
func (c *HTTPClient) ProcessWebhook(form url.Values) (*WebhookEvent, error) {
	values := make([]string, len(macFieldOrder))
	for i, f := range macFieldOrder {
		values[i] = form.Get(f)
	}
	if !verifyMAC(c.cfg.Salt, values, form.Get("mac")) {
		return nil, ErrInvalidSignature
	}

	status := form.Get("status")
	return &WebhookEvent{
		PaymentID:        form.Get("payment_id"),
		PaymentRequestID: form.Get("payment_request_id"),
		Status:           status,
		BuyerName:        form.Get("buyer_name"),
		BuyerEmail:       form.Get("buyer"),
		BuyerPhone:       form.Get("buyer_phone"),
		Amount:           form.Get("amount"),
		Currency:         form.Get("currency"),
		Fees:             form.Get("fees"),
		IsSuccessful:     isPaidStatus(status),
	}, nil
}

func isPaidStatus(status string) bool {
	return strings.EqualFold(status, "Credit") || strings.EqualFold(status, "Completed")
}

func isFailedStatus(status string) bool {
	return strings.EqualFold(status, "Failed")
}

func (c *HTTPClient) do(method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, c.cfg.BaseURL+path, body)
	if err != nil {
		return err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.cfg.APIKey)
	req.Header.Set("X-Auth-Token", c.cfg.AuthToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return &GatewayError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &GatewayError{Message: fmt.Sprintf("read response: %v", err)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &GatewayError{Message: fmt.Sprintf("API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &GatewayError{Message: fmt.Sprintf("parse response: %v", err)}
	}
	return nil
}

func rawMessage(raw json.RawMessage, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	return string(raw)
}

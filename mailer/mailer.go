package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/contact-ergiva-dev/ergiva-api/models"
)

// Mailer sends customer notifications. All sends are best-effort: callers log
// failures and never propagate them into request handling.
type Mailer interface {
	SendOrderConfirmation(order models.Order) error
	SendBookingConfirmation(booking models.Booking) error
}

// NewFromEnv returns an SMTP mailer, or a no-op one when SMTP_HOST is unset.
func NewFromEnv() Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("SMTP_HOST not set, mail notifications disabled")
		return Noop{}
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
		opsEmail: os.Getenv("OPS_EMAIL"),
	}
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	opsEmail string
}

func (m *SMTPMailer) SendOrderConfirmation(order models.Order) error {
	var lines []string
	for _, it := range order.Items {
		lines = append(lines, fmt.Sprintf("  %s x%d @ %s", it.ProductName, it.Quantity, rupees(it.UnitPrice)))
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nThank you for your order %s.\n\nItems:\n%s\n\nTotal: %s\nPayment: %s (%s)\n\nErgiva Team",
		order.ShippingAddress.Name,
		order.OrderRef,
		strings.Join(lines, "\n"),
		rupees(order.TotalAmount),
		order.PaymentMethod,
		order.PaymentStatus,
	)
	return m.send(order.ShippingAddress.Email, "Your Ergiva order "+order.OrderRef, body)
}

func (m *SMTPMailer) SendBookingConfirmation(booking models.Booking) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour session request is in.\n\nService: %s\nDate: %s\nSlot: %s\nStatus: %s\n\nWe will confirm shortly.\n\nErgiva Team",
		booking.PatientName,
		booking.Service.Name,
		booking.Date.Format("2006-01-02"),
		booking.Slot,
		booking.Status,
	)
	return m.send(booking.Email, "Your Ergiva session request", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	recipients := []string{to}
	if m.opsEmail != "" {
		recipients = append(recipients, m.opsEmail)
	}
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(msg)
}

func rupees(paise int64) string {
	return fmt.Sprintf("Rs %d.%02d", paise/100, paise%100)
}

// Noop is used when SMTP is not configured and in tests.
type Noop struct{}

func (Noop) SendOrderConfirmation(models.Order) error     { return nil }
func (Noop) SendBookingConfirmation(models.Booking) error { return nil }

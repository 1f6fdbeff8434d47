package instamojo

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// macFieldOrder is Instamojo's documented signing order. The MAC is an
// HMAC-SHA1 over these values joined with "|"; changing the order breaks the
// external contract.
var macFieldOrder = []string{
	"payment_id", "payment_request_id", "status",
	"buyer_name", "buyer", "buyer_phone",
	"amount", "currency", "fees",
}

// ComputeMAC returns the hex HMAC-SHA1 of the values joined with "|".
func ComputeMAC(salt string, values []string) string {
	mac := hmac.New(sha1.New, []byte(salt))
	mac.Write([]byte(strings.Join(values, "|")))
	return hex.EncodeToString(mac.Sum(nil))
}

// verifyMAC fails closed: an empty salt or signature is never valid.
// Comparison is constant-time.
func verifyMAC(salt string, values []string, received string) bool {
	if salt == "" || received == "" {
		return false
	}
	got, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(received)))
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(ComputeMAC(salt, values))
	if err != nil {
		return false
	}
	return hmac.Equal(want, got)
}

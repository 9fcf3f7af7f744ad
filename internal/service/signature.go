package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// fallbackSignature computes the hex HMAC-SHA256 the fallback provider
// signs its callbacks with: HMAC(secret, "<orderID>|<paymentID>").
func fallbackSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyFallbackSignature reports whether a client-supplied signature
// matches the recomputed one. Comparison is constant-time.
func VerifyFallbackSignature(secret, orderID, paymentID, signature string) bool {
	expected := fallbackSignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

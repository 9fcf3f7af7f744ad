package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackSignatureRoundTrip(t *testing.T) {
	sig := fallbackSignature("secret", "order_1", "pay_1")

	assert.Len(t, sig, 64, "hex-encoded sha256 digest")
	assert.True(t, VerifyFallbackSignature("secret", "order_1", "pay_1", sig))
}

func TestVerifyFallbackSignatureRejectsTampering(t *testing.T) {
	sig := fallbackSignature("secret", "order_1", "pay_1")

	// Any single changed input must fail verification.
	assert.False(t, VerifyFallbackSignature("other", "order_1", "pay_1", sig))
	assert.False(t, VerifyFallbackSignature("secret", "order_2", "pay_1", sig))
	assert.False(t, VerifyFallbackSignature("secret", "order_1", "pay_2", sig))

	// Flip one character of the signature itself.
	tampered := []byte(sig)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	assert.False(t, VerifyFallbackSignature("secret", "order_1", "pay_1", string(tampered)))
}

func TestVerifyFallbackSignatureRejectsEmpty(t *testing.T) {
	assert.False(t, VerifyFallbackSignature("secret", "order_1", "pay_1", ""))
}

package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// VerifyWebhookSignature checks the x-paystack-signature header against an
// HMAC-SHA512 of the raw body keyed with the account secret. Paystack signs
// with the same secret key used for API calls.
func VerifyWebhookSignature(payload []byte, signatureHeader, secretKey string) bool {
	sig := strings.TrimSpace(signatureHeader)
	secret := strings.TrimSpace(secretKey)
	if sig == "" || secret == "" {
		return false
	}

	decodedSig, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), decodedSig)
}

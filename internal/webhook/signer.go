package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader carries the payload signature on every delivery.
const SignatureHeader = "X-Crosswatch-Signature"

// Signer produces HMAC-SHA256 signatures over delivery payloads so
// subscribers can verify origin and integrity.
type Signer struct {
	secretKey []byte
}

// NewSigner creates a signer for one subscriber's shared secret.
func NewSigner(secret string) *Signer {
	return &Signer{secretKey: []byte(secret)}
}

// Sign returns the hex-encoded HMAC-SHA256 of the payload.
func (s *Signer) Sign(payload []byte) string {
	h := hmac.New(sha256.New, s.secretKey)
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify checks a signature in constant time.
func (s *Signer) Verify(payload []byte, signature string) bool {
	expected := s.Sign(payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

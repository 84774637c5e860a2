package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HMACSHA256 implements Hash with a keyed SHA-256 digest, hex-encoded.
type HMACSHA256 struct {
	secret []byte
}

// NewHMACSHA256 creates a hasher keyed with the given secret.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret)}
}

// Hash returns the hex-encoded HMAC of the input. The error is always nil;
// it exists to satisfy the Hash interface.
func (s *HMACSHA256) Hash(str string) ([]byte, error) {
	return s.digest(str), nil
}

// Verify reports whether str hashes to hashed, in constant time.
func (s *HMACSHA256) Verify(hashed, str string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), s.digest(str)) == 1
}

func (s *HMACSHA256) digest(str string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(str))
	sum := h.Sum(nil)
	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum)
	return out
}

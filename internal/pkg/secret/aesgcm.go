package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

var (
	// ErrInvalidKeySize is returned when the key is not 32 bytes.
	ErrInvalidKeySize = errors.New("secret: key must be 32 bytes (AES-256)")

	// ErrMalformedValue is returned when a stored value cannot be decoded.
	ErrMalformedValue = errors.New("secret: malformed stored value")
)

// AESGCM encrypts values with AES-256-GCM before storage.
//
// Stored values are base64(nonce || ciphertext).
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM creates an AES-GCM codec from a 32-byte key.
func NewAESGCM(key []byte) (*AESGCM, error) {
	if len(key) != 32 {
		return nil, ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &AESGCM{aead: aead}, nil
}

// Encode encrypts the plaintext and returns a base64 value.
func (c *AESGCM) Encode(plain string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plain), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decode decrypts a stored value back to plaintext.
func (c *AESGCM) Decode(stored string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", ErrMalformedValue
	}

	if len(raw) < c.aead.NonceSize() {
		return "", ErrMalformedValue
	}

	nonce, ciphertext := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrMalformedValue
	}

	return string(plain), nil
}

// Package secret encodes stored credential values.
//
// The default codec stores values as-is so that they can be shown back to the
// owner. An AES-GCM codec is available for deployments that want values
// encrypted at rest while keeping them recoverable.
package secret

// Codec encodes a value for storage and decodes it back to plaintext.
type Codec interface {
	// Encode prepares a plaintext value for storage.
	Encode(plain string) (string, error)
	// Decode recovers the plaintext from a stored value.
	Decode(stored string) (string, error)
}

// Plaintext stores values unchanged.
type Plaintext struct{}

// NewPlaintext returns a pass-through codec.
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// Encode returns the value unchanged.
func (*Plaintext) Encode(plain string) (string, error) {
	return plain, nil
}

// Decode returns the value unchanged.
func (*Plaintext) Decode(stored string) (string, error) {
	return stored, nil
}

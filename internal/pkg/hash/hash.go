package hash

// Hash abstracts one-way hashing of secrets.
type Hash interface {
	// Hash returns the hash of the input string.
	Hash(str string) ([]byte, error)
	// Verify checks whether the plaintext string matches the given hash.
	Verify(hashed, str string) bool
}

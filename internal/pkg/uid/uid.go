// Package uid provides unique identifier generators used across the app.
package uid

// StringID generates string-form unique identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates numeric unique identifiers.
type NumberID interface {
	Generate() int64
}

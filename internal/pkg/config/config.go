package config

import (
	"io"
	"time"
)

// Config reads typed configuration values by dotted key. Implementations
// return the type's zero value when a key is missing or cannot be converted,
// so callers decide what a sensible default is.
type Config interface {
	io.Closer

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetInt32 returns the value for key as an int32.
	GetInt32(key string) int32

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64

	// GetUint16 returns the value for key as a uint16.
	GetUint16(key string) uint16

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetSecond returns the integer value for key as a duration in seconds.
	GetSecond(key string) time.Duration

	// GetMinute returns the integer value for key as a duration in minutes.
	GetMinute(key string) time.Duration

	// GetBinary returns the base64-encoded value for key as decoded bytes,
	// or nil when the value is missing or not valid base64.
	GetBinary(key string) []byte

	// GetArray returns the value for key as a string slice. Both native
	// lists and comma-separated strings are accepted.
	GetArray(key string) []string
}

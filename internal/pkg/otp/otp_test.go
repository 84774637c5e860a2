package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumeric(t *testing.T) {
	gen, err := NewNumeric(DefaultDigits)
	require.NoError(t, err)
	assert.NotNil(t, gen)

	_, err = NewNumeric(3)
	assert.ErrorIs(t, err, ErrInvalidDigits)

	_, err = NewNumeric(11)
	assert.ErrorIs(t, err, ErrInvalidDigits)
}

func TestNumericGenerate(t *testing.T) {
	gen, err := NewNumeric(6)
	require.NoError(t, err)

	for range 100 {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			require.True(t, c >= '0' && c <= '9', "code %q contains non-digit", code)
		}
	}
}

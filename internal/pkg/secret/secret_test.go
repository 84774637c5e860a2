package secret

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaintext(t *testing.T) {
	codec := NewPlaintext()

	stored, err := codec.Encode("s3cr3t")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", stored)

	plain, err := codec.Decode(stored)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", plain)
}

func TestNewAESGCMKeySize(t *testing.T) {
	_, err := NewAESGCM(make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidKeySize)

	_, err = NewAESGCM(nil)
	assert.ErrorIs(t, err, ErrInvalidKeySize)

	_, err = NewAESGCM(make([]byte, 32))
	assert.NoError(t, err)
}

func TestAESGCMRoundTrip(t *testing.T) {
	codec, err := NewAESGCM(bytes.Repeat([]byte{7}, 32))
	require.NoError(t, err)

	stored, err := codec.Encode("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", stored)

	plain, err := codec.Decode(stored)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)

	// A fresh nonce per encode means equal inputs never share ciphertext.
	again, err := codec.Encode("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, stored, again)
}

func TestAESGCMDecodeErrors(t *testing.T) {
	codec, err := NewAESGCM(bytes.Repeat([]byte{7}, 32))
	require.NoError(t, err)

	_, err = codec.Decode("not base64!!")
	assert.ErrorIs(t, err, ErrMalformedValue)

	_, err = codec.Decode(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.ErrorIs(t, err, ErrMalformedValue)

	stored, err := codec.Encode("hunter2")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(stored)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	_, err = codec.Decode(base64.StdEncoding.EncodeToString(raw))
	assert.ErrorIs(t, err, ErrMalformedValue)
}

func TestAESGCMWrongKey(t *testing.T) {
	codecA, err := NewAESGCM(bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)
	codecB, err := NewAESGCM(bytes.Repeat([]byte{2}, 32))
	require.NoError(t, err)

	stored, err := codecA.Encode("hunter2")
	require.NoError(t, err)

	_, err = codecB.Decode(stored)
	assert.ErrorIs(t, err, ErrMalformedValue)
}

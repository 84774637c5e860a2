package uid

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// ErrStableNodeIdentityUnavailable indicates no stable node identity is available.
var ErrStableNodeIdentityUnavailable = errors.New("uid: cannot determine stable node identity (machine-id/hostname unavailable)")

// ObjectIDGenerator generates 32-byte IDs encoded as 64 hex characters.
// The layout is 6 bytes of millisecond timestamp, 6 bytes of node identity,
// 2 bytes of pid, a 4-byte counter and 14 random bytes, which keeps IDs
// sortable by creation time and collision-safe across processes.
type ObjectIDGenerator struct {
	nodeID  [6]byte
	pid     uint16
	counter uint32
}

// NewObjectIDGenerator creates a generator bound to this machine and process.
func NewObjectIDGenerator() (*ObjectIDGenerator, error) {
	g := &ObjectIDGenerator{pid: uint16(os.Getpid())}

	src, err := stableNodeIdentity()
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256([]byte(src))
	copy(g.nodeID[:], sum[:6])

	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, err
	}
	g.counter = binary.BigEndian.Uint32(b[:])

	return g, nil
}

// stableNodeIdentity prefers /etc/machine-id and falls back to the hostname.
func stableNodeIdentity() (string, error) {
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			return s, nil
		}
	}

	if h, err := os.Hostname(); err == nil {
		if h = strings.TrimSpace(h); h != "" {
			return h, nil
		}
	}

	return "", ErrStableNodeIdentityUnavailable
}

// Generate returns a 64-character hex string.
func (g *ObjectIDGenerator) Generate() string {
	var raw [32]byte

	ts := uint64(time.Now().UnixMilli())
	raw[0] = byte(ts >> 40)
	raw[1] = byte(ts >> 32)
	raw[2] = byte(ts >> 24)
	raw[3] = byte(ts >> 16)
	raw[4] = byte(ts >> 8)
	raw[5] = byte(ts)

	copy(raw[6:12], g.nodeID[:])
	binary.BigEndian.PutUint16(raw[12:14], g.pid)
	binary.BigEndian.PutUint32(raw[14:18], atomic.AddUint32(&g.counter, 1))

	// Random tail, with a deterministic hash fallback if the source fails.
	if _, err := rand.Read(raw[18:]); err != nil {
		sum := sha256.Sum256(raw[:18])
		copy(raw[18:], sum[:14])
	}

	var hexBuf [64]byte
	hex.Encode(hexBuf[:], raw[:])
	return string(hexBuf[:])
}

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpiresAt(t *testing.T) {
	reset := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	cred := Credential{LastReset: &reset}
	expiry, ok := cred.ExpiresAt()
	assert.True(t, ok)
	assert.Equal(t, reset.Add(30*24*time.Hour), expiry)

	_, ok = Credential{}.ExpiresAt()
	assert.False(t, ok)
}

func TestDueForReset(t *testing.T) {
	reset := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cred := Credential{LastReset: &reset}
	windowOpen := reset.Add(23 * 24 * time.Hour)
	expiry := reset.Add(30 * 24 * time.Hour)

	tests := []struct {
		name string
		cred Credential
		now  time.Time
		want bool
	}{
		{name: "no reset recorded", cred: Credential{}, now: expiry, want: false},
		{name: "before window", cred: cred, now: windowOpen.Add(-time.Second), want: false},
		{name: "window opens", cred: cred, now: windowOpen, want: true},
		{name: "inside window", cred: cred, now: reset.Add(26 * 24 * time.Hour), want: true},
		{name: "just before expiry", cred: cred, now: expiry.Add(-time.Second), want: true},
		{name: "at expiry", cred: cred, now: expiry, want: false},
		{name: "past expiry", cred: cred, now: expiry.Add(24 * time.Hour), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cred.DueForReset(tc.now))
		})
	}
}

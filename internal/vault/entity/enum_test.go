package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUpdatableField(t *testing.T) {
	for _, raw := range []string{"supplier_name", "office_id", "login_id", "password", "url"} {
		field := ParseUpdatableField(raw)
		assert.Equal(t, raw, field.String())
		assert.False(t, field.IsUnknown())
	}

	assert.Equal(t, FieldUnknown, ParseUpdatableField("owner_user_id"))
	assert.Equal(t, FieldUnknown, ParseUpdatableField("Password"))
	assert.Equal(t, FieldUnknown, ParseUpdatableField(""))
	assert.True(t, UpdatableField("id").IsUnknown())
}

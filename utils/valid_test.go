package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.NotContains(t, SanitizeInput("<script>alert(1)</script>hi"), "<script>")
	assert.Equal(t, "ab", SanitizeInput("a\x00b\x1f "))
}

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Owner@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)
}

func TestSanitizePhone(t *testing.T) {
	t.Run("normalizes separators", func(t *testing.T) {
		phone, err := SanitizePhone("+961 (70) 123-456")
		require.NoError(t, err)
		assert.Equal(t, "+96170123456", phone)
	})

	t.Run("prepends plus", func(t *testing.T) {
		phone, err := SanitizePhone("96170123456")
		require.NoError(t, err)
		assert.Equal(t, "+96170123456", phone)
	})

	t.Run("two spellings collapse to one key", func(t *testing.T) {
		a, err := SanitizePhone("+961-70-123456")
		require.NoError(t, err)
		b, err := SanitizePhone("961 70 123 456")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("length bounds", func(t *testing.T) {
		_, err := SanitizePhone("123")
		assert.Error(t, err)
		_, err = SanitizePhone("1234567890123456789")
		assert.Error(t, err)
	})

	t.Run("empty passes through", func(t *testing.T) {
		phone, err := SanitizePhone("  ")
		require.NoError(t, err)
		assert.Empty(t, phone)
	})
}

func TestValidWorkingTime(t *testing.T) {
	for _, valid := range []string{"00:00", "09:30", "18:00", "23:59"} {
		assert.True(t, ValidWorkingTime(valid), valid)
	}
	for _, invalid := range []string{"24:00", "9:30", "18:60", "noon", ""} {
		assert.False(t, ValidWorkingTime(invalid), invalid)
	}
}

package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingCode(t *testing.T) {
	pattern := regexp.MustCompile(`^APT-[A-Z0-9]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateBookingCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 90, "codes should be mostly unique")
}

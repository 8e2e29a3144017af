// utils/booking.go
package utils

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// GenerateBookingCode generates a unique human-readable appointment code
// Format: APT-{RANDOM} where RANDOM is 6 alphanumeric characters
// Example: APT-ABC123
func GenerateBookingCode() (string, error) {
	randomBytes := make([]byte, 4)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	randomStr := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	randomStr = randomStr[:6]

	randomStr = strings.ToUpper(randomStr)
	randomStr = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, randomStr)

	if len(randomStr) < 6 {
		randomStr = randomStr + strings.Repeat("0", 6-len(randomStr))
	}

	return "APT-" + randomStr, nil
}

package middleware

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlacklistToken(t *testing.T) {
	BlacklistToken("token-a", time.Now().Add(time.Hour))

	assert.True(t, IsTokenBlacklisted("token-a"))
	assert.False(t, IsTokenBlacklisted("token-b"))
}

// Logout blacklists tokens while every authenticated request checks the
// blacklist, so reads and writes must be safe from concurrent goroutines.
func TestBlacklistConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		token := fmt.Sprintf("concurrent-token-%d", i)
		go func() {
			defer wg.Done()
			BlacklistToken(token, time.Now().Add(time.Hour))
		}()
		go func() {
			defer wg.Done()
			IsTokenBlacklisted(token)
		}()
	}
	wg.Wait()

	assert.True(t, IsTokenBlacklisted("concurrent-token-0"))
}

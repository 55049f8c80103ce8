package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(2, time.Minute)

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow(), "bucket must be empty after capacity draws")
}

func TestRateLimiterRefills(t *testing.T) {
	t.Parallel()

	// 100 tokens per second refills within a short sleep.
	rl := NewRateLimiter(100, time.Second)
	for i := 0; i < 100; i++ {
		rl.Allow()
	}
	assert.False(t, rl.Allow())

	time.Sleep(50 * time.Millisecond)
	assert.True(t, rl.Allow())
}

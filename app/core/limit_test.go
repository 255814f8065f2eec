package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GenerateLimiterPerUser(t *testing.T) {
	limiter := NewGenerateLimiter(2)

	assert.True(t, limiter.Allow("u1"))
	assert.True(t, limiter.Allow("u1"))
	assert.False(t, limiter.Allow("u1"))

	// another user has their own bucket
	assert.True(t, limiter.Allow("u2"))
}

func Test_GenerateLimiterDisabled(t *testing.T) {
	limiter := NewGenerateLimiter(0)
	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow("u1"))
	}
}

func Test_Semaphore(t *testing.T) {
	sem := NewSemaphore(2)

	assert.True(t, sem.TryAcquire())
	assert.True(t, sem.TryAcquire())
	assert.False(t, sem.TryAcquire())

	sem.Release()
	assert.True(t, sem.TryAcquire())
}

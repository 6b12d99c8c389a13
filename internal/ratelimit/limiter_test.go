package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryAcquire_RespectsBurstThenDenies(t *testing.T) {
	l := New()
	l.Configure("test", Config{RequestsPerSecond: 1, Burst: 3})

	for i := 0; i < 3; i++ {
		assert.True(t, l.TryAcquire("test"), "burst token %d should be available", i)
	}
	assert.False(t, l.TryAcquire("test"), "burst exhausted, next call should be denied")
}

func TestTryAcquire_UnknownProviderUsesFallbackLimit(t *testing.T) {
	l := New()
	assert.True(t, l.TryAcquire("some-unregistered-provider"))
}

func TestConfigure_ReplacesExistingBucket(t *testing.T) {
	l := New()
	l.Configure("test", Config{RequestsPerSecond: 1, Burst: 1})
	assert.True(t, l.TryAcquire("test"))
	assert.False(t, l.TryAcquire("test"))

	l.Configure("test", Config{RequestsPerSecond: 1, Burst: 5})
	for i := 0; i < 5; i++ {
		assert.True(t, l.TryAcquire("test"))
	}
}

func TestAcquire_BlocksUntilTokenAvailable(t *testing.T) {
	l := New()
	l.Configure("test", Config{RequestsPerSecond: 20, Burst: 1})

	ctx := context.Background()
	require.NoError(t, l.Acquire(ctx, "test"))

	start := time.Now()
	require.NoError(t, l.Acquire(ctx, "test"))
	elapsed := time.Since(start)
	assert.Greater(t, elapsed, 10*time.Millisecond)
}

func TestAcquire_RespectsContextCancellation(t *testing.T) {
	l := New()
	l.Configure("test", Config{RequestsPerSecond: 0.1, Burst: 1})
	require.True(t, l.TryAcquire("test"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Acquire(ctx, "test")
	assert.Error(t, err)
}

func TestBucketFor_IsolatesProvidersIndependently(t *testing.T) {
	l := New()
	l.Configure("a", Config{RequestsPerSecond: 1, Burst: 1})
	l.Configure("b", Config{RequestsPerSecond: 1, Burst: 1})

	assert.True(t, l.TryAcquire("a"))
	assert.True(t, l.TryAcquire("b"), "provider b's bucket must be independent of a's")
	assert.False(t, l.TryAcquire("a"))
}

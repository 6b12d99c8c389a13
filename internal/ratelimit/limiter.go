// Package ratelimit implements the token-bucket rate limiter used to
// pace provider liveness probes.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config parameterizes one provider's bucket: steady-state rate in
// tokens/second and burst capacity.
type Config struct {
	RequestsPerSecond float64
	Burst             int
}

// defaultLimits holds conservative per-provider defaults: at most a
// handful of requests per second, with small bursts.
var defaultLimits = map[string]Config{
	"openai":         {RequestsPerSecond: 2, Burst: 10},
	"anthropic":      {RequestsPerSecond: 2, Burst: 10},
	"huggingface":    {RequestsPerSecond: 5, Burst: 10},
	"cohere":         {RequestsPerSecond: 2, Burst: 10},
	"replicate":      {RequestsPerSecond: 2, Burst: 10},
	"google_gemini":  {RequestsPerSecond: 2, Burst: 10},
	"groq":           {RequestsPerSecond: 5, Burst: 10},
	"langsmith":      {RequestsPerSecond: 2, Burst: 10},
}

// fallbackLimit is used for any provider name not covered above.
var fallbackLimit = Config{RequestsPerSecond: 1, Burst: 5}

// bucket pairs a golang.org/x/time/rate.Limiter (the actual token
// source) with a plain mutex that serializes waiters into arrival
// order. rate.Limiter alone computes reservations under its own lock
// but lets callers sleep concurrently once a reservation is granted;
// wrapping it in a queueing mutex is what gives waiters a FIFO-ish
// ordering guarantee in practice, at the cost of one waiter blocking the
// next until its own wait completes — acceptable here since probes are
// already individually rate-limited to a few per second.
type bucket struct {
	mu      sync.Mutex
	limiter *rate.Limiter
}

// Limiter holds one bucket per provider, created lazily on first use.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	configs map[string]Config
}

// New creates an empty Limiter. Providers not explicitly configured via
// Configure fall back to defaultLimits, then fallbackLimit.
func New() *Limiter {
	return &Limiter{buckets: make(map[string]*bucket)}
}

// Configure sets a custom bucket configuration for a provider,
// replacing any existing bucket for it.
func (l *Limiter) Configure(provider string, cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.configs == nil {
		l.configs = make(map[string]Config)
	}
	l.configs[provider] = cfg
	delete(l.buckets, provider)
}

func (l *Limiter) bucketFor(provider string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[provider]; ok {
		return b
	}

	cfg, ok := l.configs[provider]
	if !ok {
		cfg, ok = defaultLimits[provider]
	}
	if !ok {
		cfg = fallbackLimit
	}

	b := &bucket{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)}
	l.buckets[provider] = b
	return b
}

// Acquire blocks until a token is available for provider, or ctx is
// canceled. Each call consumes exactly one token; call it repeatedly to
// acquire more than one.
func (l *Limiter) Acquire(ctx context.Context, provider string) error {
	b := l.bucketFor(provider)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.limiter.Wait(ctx)
}

// TryAcquire is the non-blocking variant: it returns immediately with
// whether a token was available and consumed.
func (l *Limiter) TryAcquire(provider string) bool {
	b := l.bucketFor(provider)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.limiter.Allow()
}

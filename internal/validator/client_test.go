package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/providers"
	"github.com/chayuto/ai-truffle-hog/internal/ratelimit"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body map[string]any) *http.Response {
	raw, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(raw)),
		Header:     make(http.Header),
	}
}

func unlimitedLimiter() *ratelimit.Limiter {
	l := ratelimit.New()
	for _, name := range []string{"openai", "anthropic", "huggingface", "cohere", "replicate", "google_gemini", "groq", "langsmith"} {
		l.Configure(name, ratelimit.Config{RequestsPerSecond: 1000, Burst: 1000})
	}
	return l
}

func TestValidateOne_ScenarioE_OpenAIUnauthorizedIsInvalid(t *testing.T) {
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(401, nil), nil
	})
	c := New(Config{Timeout: time.Second, MaxConcurrent: 1, Transport: transport}, nil, unlimitedLimiter())

	p, ok := providers.Default().Get("openai")
	require.True(t, ok)

	out := c.ValidateOne(context.Background(), p, "sk-bad-key")
	assert.Equal(t, model.Invalid, out.class)
	assert.Equal(t, 401, out.httpStatus)
}

func TestValidateOne_ScenarioF_AnthropicCreditIssueIsQuotaExceeded(t *testing.T) {
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(400, map[string]any{
			"error": map[string]any{"message": "Your credit balance is too low"},
		}), nil
	})
	c := New(Config{Timeout: time.Second, MaxConcurrent: 1, Transport: transport}, nil, unlimitedLimiter())

	p, ok := providers.Default().Get("anthropic")
	require.True(t, ok)

	out := c.ValidateOne(context.Background(), p, "sk-ant-api03-somekey")
	assert.Equal(t, model.QuotaExceeded, out.class)
	assert.Equal(t, 400, out.httpStatus)
}

func TestValidateOne_SkipValidationMarksSkippedWithoutHTTPCall(t *testing.T) {
	called := false
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(200, nil), nil
	})
	c := New(Config{SkipValidation: true, Transport: transport}, nil, unlimitedLimiter())

	p, ok := providers.Default().Get("openai")
	require.True(t, ok)

	out := c.ValidateOne(context.Background(), p, "sk-anything")
	assert.Equal(t, model.Skipped, out.class)
	assert.False(t, called)
}

func TestValidateOne_IssuesExactlyOneProbePerCandidate(t *testing.T) {
	var attempts int32
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(429, nil), nil
	})
	c := New(Config{Timeout: time.Second, MaxConcurrent: 1, Transport: transport}, nil, unlimitedLimiter())

	p, ok := providers.Default().Get("openai")
	require.True(t, ok)

	out := c.ValidateOne(context.Background(), p, "sk-key")
	// OpenAI classifies 429 as QuotaExceeded.
	assert.Equal(t, model.QuotaExceeded, out.class)
	assert.Equal(t, int32(1), attempts, "the validator must not retry a 429 response itself")
}

func TestValidateBatch_ScenarioG_BoundsConcurrencyToMaxConcurrent(t *testing.T) {
	const (
		total         = 50
		maxConcurrent = 5
		latency       = 100 * time.Millisecond
	)

	var (
		mu       sync.Mutex
		inFlight int
		peak     int
	)

	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(latency)

		mu.Lock()
		inFlight--
		mu.Unlock()

		return jsonResponse(200, nil), nil
	})

	c := New(Config{Timeout: 5 * time.Second, MaxConcurrent: maxConcurrent, Transport: transport}, nil, unlimitedLimiter())

	candidates := make([]model.Candidate, total)
	for i := range candidates {
		candidates[i] = model.NewCandidate("openai", "OpenAI Secret Key", "f.go", i+1, 1, 10, "sk-key")
	}

	start := time.Now()
	got := c.ValidateBatch(context.Background(), candidates)
	elapsed := time.Since(start)

	for _, cand := range got {
		assert.Equal(t, model.Valid, cand.Classification)
	}

	mu.Lock()
	finalPeak := peak
	mu.Unlock()
	assert.LessOrEqual(t, finalPeak, maxConcurrent, "in-flight requests must never exceed the configured bound")

	expectedMinimum := time.Duration(total/maxConcurrent) * latency
	assert.GreaterOrEqual(t, elapsed, expectedMinimum-20*time.Millisecond)
}

func TestValidateBatch_UnknownProviderIsSkippedWithoutHTTPCall(t *testing.T) {
	called := false
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(200, nil), nil
	})
	c := New(Config{Timeout: time.Second, MaxConcurrent: 1, Transport: transport}, nil, unlimitedLimiter())

	candidates := []model.Candidate{
		model.NewCandidate("does-not-exist", "Unknown", "f.go", 1, 1, 5, "secret"),
	}
	got := c.ValidateBatch(context.Background(), candidates)
	assert.Equal(t, model.Skipped, got[0].Classification)
	assert.False(t, called)
}

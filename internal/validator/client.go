// Package validator implements the concurrent liveness-validation client:
// issuing each provider's probe request against a Candidate's secret
// value, rate-limited per provider and bounded to a fixed number of
// requests in flight, and recording the resulting classification back
// onto the Candidate.
package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/semgroup"

	"github.com/chayuto/ai-truffle-hog/internal/logging"
	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/providers"
	"github.com/chayuto/ai-truffle-hog/internal/ratelimit"
)

// Config tunes a Client's HTTP behavior and concurrency bound.
type Config struct {
	// Timeout bounds a single probe request, including connection setup.
	Timeout time.Duration
	// MaxConcurrent caps the number of in-flight probe requests across
	// the whole batch, regardless of how many distinct providers are
	// involved.
	MaxConcurrent int
	// SkipValidation marks every candidate Skipped without making any
	// HTTP request, for dry runs and offline tests.
	SkipValidation bool
	// Transport overrides the HTTP client's RoundTripper. Nil uses
	// http.DefaultTransport; tests inject a fake here to avoid real
	// network calls.
	Transport http.RoundTripper
}

// DefaultConfig holds conservative defaults: a ten second timeout,
// five requests in flight.
func DefaultConfig() Config {
	return Config{
		Timeout:       10 * time.Second,
		MaxConcurrent: 5,
	}
}

// Client validates Candidates against their provider's liveness endpoint.
type Client struct {
	cfg      Config
	registry *providers.Registry
	limiter  *ratelimit.Limiter
	http     *http.Client
}

// New builds a Client. A nil registry uses providers.Default(); a nil
// limiter builds a fresh ratelimit.Limiter with the built-in per-provider
// defaults.
func New(cfg Config, registry *providers.Registry, limiter *ratelimit.Limiter) *Client {
	if registry == nil {
		registry = providers.Default()
	}
	if limiter == nil {
		limiter = ratelimit.New()
	}
	return &Client{
		cfg:      cfg,
		registry: registry,
		limiter:  limiter,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
	}
}

// outcome is the internal result of one probe attempt, before it is
// written back onto a Candidate.
type outcome struct {
	class      model.ValidationClassification
	httpStatus int
	message    string
	meta       map[string]string
}

// ValidateOne issues exactly one HTTP probe for secret and returns its
// classification. It never mutates a Candidate; callers combine it with
// model.Candidate.SetClassification. Retrying a RateLimited (or any
// other) outcome is an orchestrator concern, not this layer's.
func (c *Client) ValidateOne(ctx context.Context, provider providers.Provider, secret string) outcome {
	if c.cfg.SkipValidation {
		return outcome{class: model.Skipped, message: "validation skipped by configuration"}
	}

	return c.probe(ctx, provider, secret)
}

func (c *Client) probe(ctx context.Context, provider providers.Provider, secret string) outcome {
	if err := c.limiter.Acquire(ctx, provider.Name()); err != nil {
		return outcome{class: model.ProbeError, message: "rate limiter: " + err.Error()}
	}

	req := provider.BuildProbeRequest(secret)

	if err := assertMinimalProbe(req.Body); err != nil {
		// A provider implementation that violates its own billable-token
		// budget is a programming error: it is logged at error level and
		// the candidate is classified ProbeError without sending anything.
		logging.Error().Str("provider", provider.Name()).Err(err).Msg("refusing to send non-minimal probe request")
		return outcome{class: model.ProbeError, message: "probe request rejected: " + err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader(req.Body))
	if err != nil {
		return outcome{class: model.ProbeError, message: "building request: " + err.Error()}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return outcome{class: model.ProbeError, message: "request timed out"}
		}
		return outcome{class: model.ProbeError, message: "request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var decoded map[string]any
	_ = json.Unmarshal(raw, &decoded) // a non-JSON body just means decoded stays nil

	class := provider.ClassifyResponse(resp.StatusCode, decoded)

	var meta map[string]string
	if extractor, ok := provider.(providers.MetadataExtractor); ok && class == model.Valid && decoded != nil {
		meta = extractor.Metadata(decoded)
	}

	return outcome{
		class:      class,
		httpStatus: resp.StatusCode,
		message:    fmt.Sprintf("%s responded %d", provider.Name(), resp.StatusCode),
		meta:       meta,
	}
}

func bodyReader(body []byte) io.Reader {
	if body == nil {
		return nil
	}
	return bytes.NewReader(body)
}

// ValidateBatch validates every candidate in place, concurrently, bounded
// to cfg.MaxConcurrent in-flight requests, and preserves candidates'
// input order in the returned slice (the slice is the same one passed
// in, mutated and returned for convenience). A candidate naming a
// provider absent from the registry is marked Skipped rather than
// erroring the whole batch.
func (c *Client) ValidateBatch(ctx context.Context, candidates []model.Candidate) []model.Candidate {
	maxConcurrent := c.cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	sg := semgroup.NewGroup(ctx, int64(maxConcurrent))
	now := func() time.Time { return time.Now().UTC() }

	for i := range candidates {
		i := i
		sg.Go(func() error {
			cand := &candidates[i]

			provider, ok := c.registry.Get(cand.Provider)
			if !ok {
				cand.SetClassification(model.Skipped, 0, "unknown provider: "+cand.Provider, nil, now())
				return nil
			}

			result := c.ValidateOne(ctx, provider, cand.SecretValue)
			cand.SetClassification(result.class, result.httpStatus, result.message, result.meta, now())
			return nil
		})
	}

	// semgroup aggregates per-task errors, but every task above returns
	// nil unconditionally and records failures as a Candidate
	// classification instead. The only aggregate error is semgroup's own,
	// when ctx is done before a task gets a slot; that task never runs
	// and its candidate keeps NotAttempted.
	_ = sg.Wait()

	return candidates
}

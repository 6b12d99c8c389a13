// Package orchestrator ties the fetcher, file walker, pattern scanner,
// and validation client into a single scan-a-target operation,
// producing a model.ScanResult per target and a model.ScanSession
// across all of them.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chayuto/ai-truffle-hog/internal/fetch"
	"github.com/chayuto/ai-truffle-hog/internal/logging"
	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/providers"
	"github.com/chayuto/ai-truffle-hog/internal/scanner"
	"github.com/chayuto/ai-truffle-hog/internal/validator"
)

// maxConcurrentScans bounds how many files are handed to ScanBuffer at
// once; the file walk itself stays sequential (directory traversal is
// not worth parallelizing), but regex evaluation across many files is.
const maxConcurrentScans = 8

// Options configures one orchestrated run across one or more targets.
type Options struct {
	ScanOptions     scanner.Options
	Validate        bool
	ValidatorConfig validator.Config
}

// Orchestrator resolves targets, scans them, optionally validates
// discovered candidates, and aggregates everything into a ScanSession.
type Orchestrator struct {
	registry *providers.Registry
	scanner  *scanner.Scanner
	client   *validator.Client
}

// New builds an Orchestrator. A nil registry falls back to
// providers.Default().
func New(registry *providers.Registry, opts Options) *Orchestrator {
	if registry == nil {
		registry = providers.Default()
	}
	return &Orchestrator{
		registry: registry,
		scanner:  scanner.New(registry),
		client:   validator.New(opts.ValidatorConfig, registry, nil),
	}
}

// Run scans every target in sequence, optionally validates the union of
// discovered candidates, and returns the completed ScanSession.
func (o *Orchestrator) Run(ctx context.Context, targets []string, opts Options) (*model.ScanSession, error) {
	session := model.NewScanSession(opts.Validate)
	session.Targets = targets

	for _, target := range targets {
		result, err := o.scanTarget(ctx, target, opts.ScanOptions)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
		session.Results = append(session.Results, result)
	}

	if opts.Validate {
		o.validateSession(ctx, session)
	}

	session.CompletedAt = time.Now().UTC()
	return session, nil
}

func (o *Orchestrator) scanTarget(ctx context.Context, target string, opts scanner.Options) (model.ScanResult, error) {
	result := model.ScanResult{Target: target, ScanStartedAt: time.Now().UTC()}

	dir, cleanup, err := fetch.Resolve(ctx, target)
	if err != nil {
		result.ScanCompletedAt = time.Now().UTC()
		return result, err
	}
	defer cleanup()

	result.CommitHash = fetch.HeadCommit(ctx, dir)

	var (
		mu         sync.Mutex
		candidates []model.Candidate
	)

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentScans)

	walker := fetch.NewWalker()
	filesScanned, walkErrs := walker.Walk(dir, func(path, content string) {
		group.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			found := o.scanner.ScanBuffer(content, path, opts)
			if len(found) == 0 {
				return nil
			}
			mu.Lock()
			candidates = append(candidates, found...)
			mu.Unlock()
			return nil
		})
	})

	// group.Wait's error only reflects context cancellation; ScanBuffer
	// itself never returns an error, so there is nothing else to surface.
	_ = group.Wait()

	result.Candidates = candidates
	result.FilesScanned = filesScanned
	result.Errors = append(result.Errors, walkErrs...)
	result.ScanCompletedAt = time.Now().UTC()

	logging.Info().
		Str("target", target).
		Int("files_scanned", filesScanned).
		Int("candidates", len(result.Candidates)).
		Msg("scan complete")

	return result, nil
}

func (o *Orchestrator) validateSession(ctx context.Context, session *model.ScanSession) {
	for i := range session.Results {
		if len(session.Results[i].Candidates) == 0 {
			continue
		}
		session.Results[i].Candidates = o.client.ValidateBatch(ctx, session.Results[i].Candidates)
	}
}

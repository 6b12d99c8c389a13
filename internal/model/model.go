// Package model defines the data types shared by the scanner, provider
// registry, and validation client: Candidate, ScanResult, ScanSession,
// and the closed ValidationClassification enum.
package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ValidationClassification is the closed set of liveness outcomes a
// Candidate can carry. It is modeled as a dedicated string type rather
// than bare strings so signatures name the set; the compiler does not
// restrict it to the constants below or check switches for exhaustiveness.
type ValidationClassification string

const (
	NotAttempted  ValidationClassification = "not_attempted"
	Valid         ValidationClassification = "valid"
	Invalid       ValidationClassification = "invalid"
	QuotaExceeded ValidationClassification = "quota_exceeded"
	RateLimited   ValidationClassification = "rate_limited"
	ProbeError    ValidationClassification = "probe_error"
	Skipped       ValidationClassification = "skipped"
)

// terminal reports whether a classification, once set, must never
// change again.
func (c ValidationClassification) terminal() bool {
	return c != NotAttempted
}

// Candidate is a single positioned potential-secret finding.
type Candidate struct {
	ID uuid.UUID

	Provider    string
	PatternName string

	FilePath    string
	LineNumber  int
	ColumnStart int
	ColumnEnd   int

	SecretValue  string
	ContextLines []string
	VariableName string

	Entropy float64

	Classification    ValidationClassification
	HTTPStatusCode    int
	ValidationMessage string
	ValidationTime    *time.Time
	ValidationMeta    map[string]string
}

// NewCandidate constructs a Candidate with a fresh ID, initially in the
// not-attempted validation state.
func NewCandidate(provider, patternName, filePath string, line, colStart, colEnd int, secret string) Candidate {
	return Candidate{
		ID:             uuid.New(),
		Provider:       provider,
		PatternName:    patternName,
		FilePath:       filePath,
		LineNumber:     line,
		ColumnStart:    colStart,
		ColumnEnd:      colEnd,
		SecretValue:    secret,
		Classification: NotAttempted,
	}
}

// SetClassification applies a validation outcome, enforcing monotonicity:
// NotAttempted may transition exactly once; a terminal state never
// changes again. Calling this on an already-terminal Candidate is a
// no-op, not an error, so repeated validation attempts are idempotent.
func (c *Candidate) SetClassification(class ValidationClassification, httpStatus int, message string, meta map[string]string, at time.Time) {
	if c.Classification.terminal() {
		return
	}
	c.Classification = class
	c.HTTPStatusCode = httpStatus
	c.ValidationMessage = message
	c.ValidationMeta = meta
	c.ValidationTime = &at
}

// DedupeKey identifies a Candidate for the purposes of the scanner's
// within-scan deduplication rule.
func (c Candidate) DedupeKey() string {
	return c.FilePath + "\x00" + strconv.Itoa(c.LineNumber) + "\x00" + strconv.Itoa(c.ColumnStart) + "\x00" + c.SecretValue
}

// ScanResult aggregates all Candidates and errors for a single target
// (a path or URL).
type ScanResult struct {
	Target          string
	CommitHash      string
	ScanStartedAt   time.Time
	ScanCompletedAt time.Time
	FilesScanned    int
	Candidates      []Candidate
	Errors          []string
}

// Duration returns the elapsed wall time between scan start and
// completion, or zero if the scan has not completed.
func (r ScanResult) Duration() time.Duration {
	if r.ScanCompletedAt.IsZero() {
		return 0
	}
	return r.ScanCompletedAt.Sub(r.ScanStartedAt)
}

// ScanSession is the outermost aggregate for one invocation of the
// system, possibly covering multiple targets.
type ScanSession struct {
	ID           uuid.UUID
	StartedAt    time.Time
	CompletedAt  time.Time
	Targets      []string
	Results      []ScanResult
	ValidateKeys bool
}

// NewScanSession starts a session with a fresh opaque ID.
func NewScanSession(validateKeys bool) *ScanSession {
	return &ScanSession{
		ID:           uuid.New(),
		StartedAt:    time.Now().UTC(),
		ValidateKeys: validateKeys,
	}
}

// TotalCandidates returns the sum of Candidates across all results.
func (s ScanSession) TotalCandidates() int {
	total := 0
	for _, r := range s.Results {
		total += len(r.Candidates)
	}
	return total
}

// Duration returns the elapsed wall time of the session, or zero if it
// has not completed.
func (s ScanSession) Duration() time.Duration {
	if s.CompletedAt.IsZero() {
		return 0
	}
	return s.CompletedAt.Sub(s.StartedAt)
}

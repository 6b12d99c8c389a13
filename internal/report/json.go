// Package report renders a ScanSession as JSON, SARIF 2.1.0, or a plain
// text table.
package report

import (
	"encoding/json"
	"io"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

// candidateJSON is the wire shape for a single finding. Field names are
// snake_case so downstream tooling consuming this report format keeps
// working regardless of implementation language.
type candidateJSON struct {
	ID                string            `json:"id"`
	Provider          string            `json:"provider"`
	PatternName       string            `json:"pattern_name"`
	FilePath          string            `json:"file_path"`
	LineNumber        int               `json:"line_number"`
	ColumnStart       int               `json:"column_start"`
	ColumnEnd         int               `json:"column_end"`
	RedactedSecret    string            `json:"redacted_secret"`
	VariableName      string            `json:"variable_name,omitempty"`
	Entropy           float64           `json:"entropy"`
	Classification    string            `json:"classification"`
	HTTPStatusCode    int               `json:"http_status_code,omitempty"`
	ValidationMessage string            `json:"validation_message,omitempty"`
	ValidationMeta    map[string]string `json:"validation_meta,omitempty"`
}

type resultJSON struct {
	Target       string          `json:"target"`
	CommitHash   string          `json:"commit_hash,omitempty"`
	FilesScanned int             `json:"files_scanned"`
	DurationMS   int64           `json:"duration_ms"`
	Candidates   []candidateJSON `json:"candidates"`
	Errors       []string        `json:"errors,omitempty"`
}

type sessionJSON struct {
	ID              string       `json:"id"`
	ValidateEnabled bool         `json:"validate_enabled"`
	TotalCandidates int          `json:"total_candidates"`
	DurationMS      int64        `json:"duration_ms"`
	Results         []resultJSON `json:"results"`
}

// Redactor masks a secret value for display; callers pass
// entropy.RedactDefault or equivalent so raw secrets never reach a
// report.
type Redactor func(secret string) string

// WriteJSON serializes session to w, redacting every secret value with
// redact before it is ever marshaled.
func WriteJSON(w io.Writer, session *model.ScanSession, redact Redactor) error {
	out := sessionJSON{
		ID:              session.ID.String(),
		ValidateEnabled: session.ValidateKeys,
		TotalCandidates: session.TotalCandidates(),
		DurationMS:      session.Duration().Milliseconds(),
	}

	for _, r := range session.Results {
		rj := resultJSON{
			Target:       r.Target,
			CommitHash:   r.CommitHash,
			FilesScanned: r.FilesScanned,
			DurationMS:   r.Duration().Milliseconds(),
			Errors:       r.Errors,
		}
		for _, c := range r.Candidates {
			rj.Candidates = append(rj.Candidates, candidateJSON{
				ID:                c.ID.String(),
				Provider:          c.Provider,
				PatternName:       c.PatternName,
				FilePath:          c.FilePath,
				LineNumber:        c.LineNumber,
				ColumnStart:       c.ColumnStart,
				ColumnEnd:         c.ColumnEnd,
				RedactedSecret:    redact(c.SecretValue),
				VariableName:      c.VariableName,
				Entropy:           c.Entropy,
				Classification:    string(c.Classification),
				HTTPStatusCode:    c.HTTPStatusCode,
				ValidationMessage: c.ValidationMessage,
				ValidationMeta:    c.ValidationMeta,
			})
		}
		out.Results = append(out.Results, rj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

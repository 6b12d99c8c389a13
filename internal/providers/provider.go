// Package providers defines the provider contract and the
// fixed catalog of AI service providers: identity,
// detection patterns, probe construction, and response classification.
package providers

import (
	"regexp"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

// Pattern is one compiled detection pattern belonging to a Provider.
// Capture group 1 is always the secret substring;
// the full match may extend beyond it to cover surrounding context such
// as a variable-assignment prefix.
type Pattern struct {
	Name string
	Re   *regexp.Regexp
}

// HTTPRequest describes a liveness probe request in provider-agnostic
// terms, independent of whatever HTTP client executes it.
type HTTPRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Provider is the uniform capability set every registered provider
// satisfies: identity, an ordered non-empty pattern list, a
// probe-request builder, and a total response classifier. It is an
// interface, not a base class — the registry holds a polymorphic
// collection of these, and adding a provider never touches the scanner
// or validator.
type Provider interface {
	Name() string
	DisplayName() string
	Patterns() []Pattern
	ValidationEndpoint() string
	BuildProbeRequest(key string) HTTPRequest
	ClassifyResponse(statusCode int, body map[string]any) model.ValidationClassification
}

// KeywordHints returns short literal substrings that must appear in a
// buffer for p to have any chance of matching. Used to build the
// scanner's Aho-Corasick prefilter. A provider whose patterns have no
// fixed literal prefix (none in the catalog) would return nil here,
// which turns the scanner's prefilter off.
type KeywordHinter interface {
	KeywordHints() []string
}

// MetadataExtractor is an optional Provider capability: providers whose
// successful responses carry structured data worth surfacing (e.g.
// Hugging Face's username/scopes) implement it. The validator calls
// Metadata only after a Valid classification.
type MetadataExtractor interface {
	Metadata(body map[string]any) map[string]string
}

package providers

import (
	"regexp"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

type cohere struct {
	patterns []Pattern
}

// NewCohere returns the Cohere provider. Cohere keys have
// no distinguishing prefix, so detection is contextual: either the word
// "cohere" within 30 characters, or an explicit COHERE_API_KEY
// assignment.
func NewCohere() Provider {
	return &cohere{
		patterns: []Pattern{
			{
				Name: "Cohere Key (contextual)",
				Re:   regexp.MustCompile(`(?i)\bcohere[\s\S]{0,30}?([A-Za-z0-9]{40})\b`),
			},
			{
				Name: "Cohere Key (COHERE_API_KEY)",
				Re:   regexp.MustCompile(`\bCOHERE_API_KEY\b\s*[:=]\s*["']?([A-Za-z0-9]{40})\b`),
			},
		},
	}
}

func (p *cohere) Name() string           { return "cohere" }
func (p *cohere) DisplayName() string    { return "Cohere" }
func (p *cohere) Patterns() []Pattern    { return p.patterns }
func (p *cohere) KeywordHints() []string { return []string{"cohere", "COHERE_API_KEY"} }
func (p *cohere) ValidationEndpoint() string {
	return "https://api.cohere.ai/v1/check-api-key"
}

func (p *cohere) BuildProbeRequest(key string) HTTPRequest {
	return HTTPRequest{
		Method: "POST",
		URL:    p.ValidationEndpoint(),
		Headers: map[string]string{
			"Authorization": "Bearer " + key,
			"content-type":  "application/json",
		},
		Body: []byte("{}"),
	}
}

func (p *cohere) ClassifyResponse(status int, body map[string]any) model.ValidationClassification {
	switch status {
	case 200:
		if valid, ok := body["valid"].(bool); ok && !valid {
			return model.Invalid
		}
		return model.Valid
	case 401:
		return model.Invalid
	default:
		return model.ProbeError
	}
}

package providers

import (
	"net/url"
	"regexp"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

type googleGemini struct {
	patterns []Pattern
}

// NewGoogleGemini returns the Google Gemini provider.
// Gemini keys share a prefix with other Google Cloud API keys; a 400 or
// 403 here is a best-effort statement about Gemini liveness only, not a
// universal claim about the key.
func NewGoogleGemini() Provider {
	return &googleGemini{
		patterns: []Pattern{
			{
				Name: "Google Gemini API Key",
				Re:   regexp.MustCompile(`\b(AIza[A-Za-z0-9_-]{35})\b`),
			},
		},
	}
}

func (p *googleGemini) Name() string           { return "google_gemini" }
func (p *googleGemini) DisplayName() string    { return "Google Gemini" }
func (p *googleGemini) Patterns() []Pattern    { return p.patterns }
func (p *googleGemini) KeywordHints() []string { return []string{"AIza"} }
func (p *googleGemini) ValidationEndpoint() string {
	return "https://generativelanguage.googleapis.com/v1beta/models"
}

func (p *googleGemini) BuildProbeRequest(key string) HTTPRequest {
	q := url.Values{"key": {key}}
	return HTTPRequest{
		Method: "GET",
		URL:    p.ValidationEndpoint() + "?" + q.Encode(),
	}
}

func (p *googleGemini) ClassifyResponse(status int, _ map[string]any) model.ValidationClassification {
	switch status {
	case 200:
		return model.Valid
	case 400, 403:
		return model.Invalid
	default:
		return model.ProbeError
	}
}

package providers

import (
	"regexp"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

type openAI struct {
	patterns []Pattern
}

// NewOpenAI returns the OpenAI provider.
func NewOpenAI() Provider {
	return &openAI{
		patterns: []Pattern{
			{
				Name: "OpenAI Secret Key",
				Re:   regexp.MustCompile(`\b(sk-(?:proj-|org-|admin-|svcacct-)?[A-Za-z0-9]{20,150})\b`),
			},
		},
	}
}

func (p *openAI) Name() string        { return "openai" }
func (p *openAI) DisplayName() string { return "OpenAI" }
func (p *openAI) Patterns() []Pattern { return p.patterns }
func (p *openAI) ValidationEndpoint() string {
	return "https://api.openai.com/v1/models"
}
func (p *openAI) KeywordHints() []string { return []string{"sk-"} }

func (p *openAI) BuildProbeRequest(key string) HTTPRequest {
	return HTTPRequest{
		Method: "GET",
		URL:    p.ValidationEndpoint(),
		Headers: map[string]string{
			"Authorization": "Bearer " + key,
		},
	}
}

func (p *openAI) ClassifyResponse(status int, _ map[string]any) model.ValidationClassification {
	switch status {
	case 200:
		return model.Valid
	case 401:
		return model.Invalid
	case 403:
		// Scoped key — valid but lacking permission for this endpoint.
		return model.Valid
	case 429:
		return model.QuotaExceeded
	default:
		return model.ProbeError
	}
}

package providers

import (
	"regexp"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

type groq struct {
	patterns []Pattern
}

// NewGroq returns the Groq provider.
func NewGroq() Provider {
	return &groq{
		patterns: []Pattern{
			{
				Name: "Groq API Key",
				Re:   regexp.MustCompile(`\b(gsk_[A-Za-z0-9]{50,})\b`),
			},
		},
	}
}

func (p *groq) Name() string           { return "groq" }
func (p *groq) DisplayName() string    { return "Groq" }
func (p *groq) Patterns() []Pattern    { return p.patterns }
func (p *groq) KeywordHints() []string { return []string{"gsk_"} }
func (p *groq) ValidationEndpoint() string {
	return "https://api.groq.com/openai/v1/models"
}

func (p *groq) BuildProbeRequest(key string) HTTPRequest {
	return HTTPRequest{
		Method: "GET",
		URL:    p.ValidationEndpoint(),
		Headers: map[string]string{
			"Authorization": "Bearer " + key,
		},
	}
}

func (p *groq) ClassifyResponse(status int, _ map[string]any) model.ValidationClassification {
	switch status {
	case 200:
		return model.Valid
	case 401:
		return model.Invalid
	default:
		return model.ProbeError
	}
}

package providers

import (
	"regexp"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

type langSmith struct {
	patterns []Pattern
}

// NewLangSmith returns the LangSmith provider.
func NewLangSmith() Provider {
	return &langSmith{
		patterns: []Pattern{
			{
				Name: "LangSmith API Key",
				Re:   regexp.MustCompile(`\b(lsv2_(?:sk|pt)_[A-Za-z0-9]{32,})\b`),
			},
		},
	}
}

func (p *langSmith) Name() string           { return "langsmith" }
func (p *langSmith) DisplayName() string    { return "LangSmith" }
func (p *langSmith) Patterns() []Pattern    { return p.patterns }
func (p *langSmith) KeywordHints() []string { return []string{"lsv2_"} }
func (p *langSmith) ValidationEndpoint() string {
	return "https://api.smith.langchain.com/api/v1/sessions"
}

func (p *langSmith) BuildProbeRequest(key string) HTTPRequest {
	return HTTPRequest{
		Method: "GET",
		URL:    p.ValidationEndpoint(),
		Headers: map[string]string{
			"x-api-key": key,
		},
	}
}

func (p *langSmith) ClassifyResponse(status int, _ map[string]any) model.ValidationClassification {
	switch status {
	case 200:
		return model.Valid
	case 401:
		return model.Invalid
	case 403:
		// Scoped key — valid but lacking permission for this endpoint.
		return model.Valid
	default:
		return model.ProbeError
	}
}

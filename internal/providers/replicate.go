package providers

import (
	"regexp"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

type replicate struct {
	patterns []Pattern
}

// NewReplicate returns the Replicate provider.
func NewReplicate() Provider {
	return &replicate{
		patterns: []Pattern{
			{
				Name: "Replicate API Token",
				Re:   regexp.MustCompile(`\b(r8_[A-Za-z0-9]{37})\b`),
			},
		},
	}
}

func (p *replicate) Name() string           { return "replicate" }
func (p *replicate) DisplayName() string    { return "Replicate" }
func (p *replicate) Patterns() []Pattern    { return p.patterns }
func (p *replicate) KeywordHints() []string { return []string{"r8_"} }
func (p *replicate) ValidationEndpoint() string {
	return "https://api.replicate.com/v1/account"
}

func (p *replicate) BuildProbeRequest(key string) HTTPRequest {
	return HTTPRequest{
		Method: "GET",
		URL:    p.ValidationEndpoint(),
		Headers: map[string]string{
			"Authorization": "Bearer " + key,
		},
	}
}

func (p *replicate) ClassifyResponse(status int, _ map[string]any) model.ValidationClassification {
	switch status {
	case 200:
		return model.Valid
	case 401:
		return model.Invalid
	default:
		return model.ProbeError
	}
}

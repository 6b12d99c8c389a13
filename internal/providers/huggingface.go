package providers

import (
	"regexp"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

type huggingFace struct {
	patterns []Pattern
}

// NewHuggingFace returns the Hugging Face provider.
func NewHuggingFace() Provider {
	return &huggingFace{
		patterns: []Pattern{
			{
				Name: "Hugging Face Token",
				Re:   regexp.MustCompile(`\b(hf_[A-Za-z0-9]{34})\b`),
			},
		},
	}
}

func (p *huggingFace) Name() string           { return "huggingface" }
func (p *huggingFace) DisplayName() string    { return "Hugging Face" }
func (p *huggingFace) Patterns() []Pattern    { return p.patterns }
func (p *huggingFace) KeywordHints() []string { return []string{"hf_"} }
func (p *huggingFace) ValidationEndpoint() string {
	return "https://huggingface.co/api/whoami-v2"
}

func (p *huggingFace) BuildProbeRequest(key string) HTTPRequest {
	return HTTPRequest{
		Method: "GET",
		URL:    p.ValidationEndpoint(),
		Headers: map[string]string{
			"Authorization": "Bearer " + key,
		},
	}
}

func (p *huggingFace) ClassifyResponse(status int, body map[string]any) model.ValidationClassification {
	switch status {
	case 200:
		return model.Valid
	case 401:
		return model.Invalid
	default:
		return model.ProbeError
	}
}

// Metadata extracts the username/scopes metadata attached to a
// successful Hugging Face probe response. It implements the optional
// providers.MetadataExtractor interface; the validator calls it only
// after a Valid classification.
func (p *huggingFace) Metadata(body map[string]any) map[string]string {
	meta := map[string]string{}
	if body == nil {
		return meta
	}
	if name, ok := body["name"].(string); ok {
		meta["username"] = name
	}
	if scopes, ok := body["auth"].(map[string]any); ok {
		if accessToken, ok := scopes["accessToken"].(map[string]any); ok {
			if role, ok := accessToken["role"].(string); ok {
				meta["scopes"] = role
			}
		}
	}
	return meta
}

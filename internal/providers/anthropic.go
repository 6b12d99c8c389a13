package providers

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

const (
	anthropicVersion       = "2023-06-01"
	anthropicValidateModel = "claude-3-haiku-20240307"
)

type anthropic struct {
	patterns []Pattern
}

// NewAnthropic returns the Anthropic provider. It
// recognizes both standard API keys and admin keys.
func NewAnthropic() Provider {
	return &anthropic{
		patterns: []Pattern{
			{
				Name: "Anthropic API Key",
				Re:   regexp.MustCompile(`\b(sk-ant-api\d{2}-[A-Za-z0-9_-]{80,120})\b`),
			},
			{
				Name: "Anthropic Admin Key",
				Re:   regexp.MustCompile(`\b(sk-ant-admin-[A-Za-z0-9_-]{20,})\b`),
			},
		},
	}
}

func (p *anthropic) Name() string           { return "anthropic" }
func (p *anthropic) DisplayName() string    { return "Anthropic" }
func (p *anthropic) Patterns() []Pattern    { return p.patterns }
func (p *anthropic) KeywordHints() []string { return []string{"sk-ant-"} }
func (p *anthropic) ValidationEndpoint() string {
	return "https://api.anthropic.com/v1/messages"
}

// probeBody is the minimal request body sent to prove liveness: one
// token of output, the cheapest model, so the probe never consumes
// billable tokens beyond max_tokens=1. The validation client
// mechanically re-checks this budget against the body before every
// request using a cl100k_base tokenizer.
func (p *anthropic) probeBody() []byte {
	b, _ := json.Marshal(map[string]any{
		"model":      anthropicValidateModel,
		"max_tokens": 1,
		"messages": []map[string]string{
			{"role": "user", "content": "Hi"},
		},
	})
	return b
}

func (p *anthropic) BuildProbeRequest(key string) HTTPRequest {
	return HTTPRequest{
		Method: "POST",
		URL:    p.ValidationEndpoint(),
		Headers: map[string]string{
			"x-api-key":         key,
			"anthropic-version": anthropicVersion,
			"content-type":      "application/json",
		},
		Body: p.probeBody(),
	}
}

func (p *anthropic) ClassifyResponse(status int, body map[string]any) model.ValidationClassification {
	switch status {
	case 200:
		return model.Valid
	case 401:
		return model.Invalid
	case 429:
		return model.RateLimited
	case 400:
		if creditIssue(body) {
			return model.QuotaExceeded
		}
		return model.ProbeError
	default:
		return model.ProbeError
	}
}

func creditIssue(body map[string]any) bool {
	if body == nil {
		return false
	}
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		return false
	}
	msg, _ := errObj["message"].(string)
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "credit") || strings.Contains(msg, "balance")
}

package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

func firstMatch(t *testing.T, p Provider, text string) string {
	t.Helper()
	for _, pat := range p.Patterns() {
		m := pat.Re.FindStringSubmatch(text)
		if len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

func TestOpenAI_PatternMatchesAndClassifies(t *testing.T) {
	p := NewOpenAI()
	secret := "sk-proj-" + repeat("A1b2", 6)
	got := firstMatch(t, p, `OPENAI_API_KEY = "`+secret+`"`)
	require.Equal(t, secret, got)

	assert.Equal(t, model.Valid, p.ClassifyResponse(200, nil))
	assert.Equal(t, model.Invalid, p.ClassifyResponse(401, nil))
	assert.Equal(t, model.QuotaExceeded, p.ClassifyResponse(429, nil))
	assert.Equal(t, model.ProbeError, p.ClassifyResponse(500, nil))
}

func TestAnthropic_DoesNotMatchOpenAIKeys(t *testing.T) {
	// Anthropic's pattern requires hyphens inside the key body (from
	// sk-ant-api<NN>-), which openai's [A-Za-z0-9] class can't produce,
	// so the two never spuriously match the same literal.
	anthropic := NewAnthropic()
	openaiSecret := "sk-proj-" + repeat("A1b2", 6)
	assert.Empty(t, firstMatch(t, anthropic, openaiSecret))
}

func TestAnthropic_ClassifiesCreditIssueAsQuotaExceeded(t *testing.T) {
	p := NewAnthropic()
	body := map[string]any{
		"error": map[string]any{"message": "Your credit balance is too low"},
	}
	assert.Equal(t, model.QuotaExceeded, p.ClassifyResponse(400, body))

	otherBody := map[string]any{
		"error": map[string]any{"message": "invalid request: missing field"},
	}
	assert.Equal(t, model.ProbeError, p.ClassifyResponse(400, otherBody))
	assert.Equal(t, model.RateLimited, p.ClassifyResponse(429, nil))
}

func TestCohere_ContextualPatternMatchesNearby(t *testing.T) {
	p := NewCohere()
	secret := repeat("Xy9Z", 10)
	got := firstMatch(t, p, `cohere_token = "`+secret+`"`)
	assert.Equal(t, secret, got)
}

func TestCohere_ClassifiesExplicitlyInvalidBody(t *testing.T) {
	p := NewCohere()
	assert.Equal(t, model.Invalid, p.ClassifyResponse(200, map[string]any{"valid": false}))
	assert.Equal(t, model.Valid, p.ClassifyResponse(200, map[string]any{"valid": true}))
	assert.Equal(t, model.Invalid, p.ClassifyResponse(401, nil))
}

func TestHuggingFace_MetadataExtraction(t *testing.T) {
	p := NewHuggingFace()
	extractor, ok := p.(MetadataExtractor)
	require.True(t, ok)

	body := map[string]any{
		"name": "alice",
		"auth": map[string]any{
			"accessToken": map[string]any{"role": "write"},
		},
	}
	meta := extractor.Metadata(body)
	assert.Equal(t, "alice", meta["username"])
	assert.Equal(t, "write", meta["scopes"])
}

func TestGoogleGemini_BuildsKeyAsQueryParam(t *testing.T) {
	p := NewGoogleGemini()
	req := p.BuildProbeRequest("AIzaSyTest123")
	assert.Contains(t, req.URL, "key=AIzaSyTest123")
	assert.Empty(t, req.Headers["Authorization"])
}

func TestRegistry_Default_ContainsAllEightProviders(t *testing.T) {
	reg := Default()
	want := []string{
		"openai", "anthropic", "huggingface", "cohere",
		"replicate", "google_gemini", "groq", "langsmith",
	}
	assert.Equal(t, len(want), reg.Len())
	for _, name := range want {
		_, ok := reg.Get(name)
		assert.True(t, ok, "missing provider %s", name)
	}
}

func TestRegistry_GetUnknownProvider(t *testing.T) {
	reg := NewRegistry(NewOpenAI())
	_, ok := reg.Get("does-not-exist")
	assert.False(t, ok)
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

package validator

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// maxProbePromptTokens and maxProbeGeneratedTokens bound what a probe
// request is allowed to imply: a handful of prompt tokens, and at most
// one generated token. A probe body that asks for more than this is
// rejected by assertMinimalProbe before any request is sent.
const (
	maxProbePromptTokens    = 32
	maxProbeGeneratedTokens = 1
)

var (
	tokenizerOnce sync.Once
	tokenizer     *tiktoken.Tiktoken
)

// encoder lazily loads the offline cl100k_base BPE tokenizer used to
// count how many tokens a probe body's prompt content would consume.
func encoder() *tiktoken.Tiktoken {
	tokenizerOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
		tke, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tokenizer = tke
		}
	})
	return tokenizer
}

// assertMinimalProbe inspects a JSON probe request body and returns an
// error if it implies billable usage beyond a liveness check: a
// generation request for more than one output token, or a prompt long
// enough to be mistaken for real usage. A nil or non-JSON body (the GET
// probes most providers use) always passes.
func assertMinimalProbe(body []byte) error {
	if len(body) == 0 {
		return nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil
	}

	if raw, ok := decoded["max_tokens"]; ok {
		n, ok := raw.(float64)
		if !ok || int(n) > maxProbeGeneratedTokens {
			return fmt.Errorf("probe body requests max_tokens=%v, exceeds the minimal-probe budget of %d", raw, maxProbeGeneratedTokens)
		}
	}

	promptTokens := 0
	if enc := encoder(); enc != nil {
		for _, text := range promptStrings(decoded) {
			promptTokens += len(enc.Encode(text, nil, nil))
		}
	}
	if promptTokens > maxProbePromptTokens {
		return fmt.Errorf("probe body's prompt content encodes to %d tokens, exceeds the minimal-probe budget of %d", promptTokens, maxProbePromptTokens)
	}

	return nil
}

// promptStrings walks the common shapes providers use for chat content
// ("messages": [{"content": "..."}], or a bare "prompt" string) and
// returns every text fragment found, so their combined size can be
// token-counted.
func promptStrings(decoded map[string]any) []string {
	var out []string

	if p, ok := decoded["prompt"].(string); ok {
		out = append(out, p)
	}

	messages, ok := decoded["messages"].([]any)
	if !ok {
		return out
	}
	for _, m := range messages {
		msg, ok := m.(map[string]any)
		if !ok {
			continue
		}
		if content, ok := msg["content"].(string); ok {
			out = append(out, content)
		}
	}
	return out
}

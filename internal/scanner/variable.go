package scanner

import "regexp"

// variablePattern recognizes the common assignment shapes a secret is
// likely to appear next to: `IDENT = "..."`, `IDENT: "..."`, and
// `"key": "..."`. Three alternatives cover bare assignment, quoted-key
// assignment, and shouty env-var assignment.
var variablePattern = regexp.MustCompile(
	`(?:([a-zA-Z_][a-zA-Z0-9_]*)\s*[:=]\s*["']|["']?([a-zA-Z_][a-zA-Z0-9_]*)["']?\s*[:=]\s*["']?|\b([A-Z_][A-Z0-9_]*)\s*=)`,
)

// extractVariableName inspects up to the last 100 characters immediately
// preceding a match and returns the identifier of the closest preceding
// assignment, or "" if none is recognizable.
func extractVariableName(precedingText string) string {
	const maxLookback = 100
	if len(precedingText) > maxLookback {
		precedingText = precedingText[len(precedingText)-maxLookback:]
	}

	matches := variablePattern.FindAllStringSubmatch(precedingText, -1)
	if len(matches) == 0 {
		return ""
	}

	last := matches[len(matches)-1]
	for i := 1; i < len(last); i++ {
		if last[i] != "" {
			return last[i]
		}
	}
	return ""
}

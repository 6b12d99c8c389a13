package report

import (
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

const (
	toolName     = "ai-truffle-hog"
	toolInfoURI  = "https://github.com/chayuto/ai-truffle-hog"
	defaultLevel = "error"
)

// ruleID uses a "{provider}/{pattern}" scheme so a SARIF consumer can
// group findings by provider without parsing the message text.
func ruleID(provider, pattern string) string {
	return provider + "/" + pattern
}

// WriteSARIF renders session as a SARIF 2.1.0 log, redacting every
// secret's snippet with redact before it is embedded in the report.
func WriteSARIF(w io.Writer, session *model.ScanSession, redact Redactor) error {
	run := sarif.NewRunWithInformationURI(toolName, toolInfoURI)

	declaredRules := map[string]struct{}{}

	for _, result := range session.Results {
		for _, c := range result.Candidates {
			id := ruleID(c.Provider, c.PatternName)
			if _, ok := declaredRules[id]; !ok {
				run.AddRule(id).
					WithDescription(c.PatternName + " detected for provider " + c.Provider)
				declaredRules[id] = struct{}{}
			}

			region := sarif.NewRegion().
				WithStartLine(c.LineNumber).
				WithEndLine(c.LineNumber).
				WithStartColumn(c.ColumnStart).
				WithEndColumn(c.ColumnEnd).
				WithSnippet(sarif.NewArtifactContent().WithText(redact(c.SecretValue)))

			location := sarif.NewLocation().
				WithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(sarif.NewSimpleArtifactLocation(c.FilePath)).
						WithRegion(region),
				)

			run.AddResult(
				sarif.NewRuleResult(id).
					WithLevel(levelFor(c)).
					WithMessage(sarif.NewTextMessage(resultMessage(c))).
					WithLocations([]*sarif.Location{location}),
			)
		}
	}

	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	doc.AddRun(run)
	return doc.PrettyWrite(w)
}

// levelFor downgrades candidates the validator confirmed dead (Invalid)
// or did not check (Skipped) to "note"; every other classification,
// including ProbeError, stays at defaultLevel.
func levelFor(c model.Candidate) string {
	switch c.Classification {
	case model.Invalid, model.Skipped:
		return "note"
	default:
		return defaultLevel
	}
}

func resultMessage(c model.Candidate) string {
	msg := c.Provider + " " + c.PatternName + " found in " + c.FilePath
	if c.Classification != model.NotAttempted {
		msg += " (" + string(c.Classification) + ")"
	}
	return msg
}

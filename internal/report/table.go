package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

// WriteTable renders session as a human-readable aligned table, one row
// per candidate, redacting every secret value with redact.
func WriteTable(w io.Writer, session *model.ScanSession, redact Redactor) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "PROVIDER\tPATTERN\tFILE\tLINE\tCOLUMN\tSECRET\tSTATUS")
	for _, result := range session.Results {
		for _, c := range result.Candidates {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
				c.Provider, c.PatternName, c.FilePath, c.LineNumber, c.ColumnStart,
				redact(c.SecretValue), statusText(c))
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d candidate(s) across %d target(s)\n",
		session.TotalCandidates(), len(session.Targets))
	return err
}

func statusText(c model.Candidate) string {
	if c.Classification == model.NotAttempted {
		return "unvalidated"
	}
	return string(c.Classification)
}

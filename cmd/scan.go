package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chayuto/ai-truffle-hog/internal/entropy"
	"github.com/chayuto/ai-truffle-hog/internal/logging"
	"github.com/chayuto/ai-truffle-hog/internal/orchestrator"
	"github.com/chayuto/ai-truffle-hog/internal/providers"
	"github.com/chayuto/ai-truffle-hog/internal/report"
	"github.com/chayuto/ai-truffle-hog/internal/scanner"
	"github.com/chayuto/ai-truffle-hog/internal/validator"
)

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("output", "table", "output format: table, json, or sarif")
	scanCmd.Flags().Bool("validate", false, "attempt to validate discovered keys against their provider's API")
	scanCmd.Flags().Int("context-lines", scanner.DefaultContextLines, "lines of context to keep around each match")
	scanCmd.Flags().StringSlice("provider", nil, "restrict scanning to these providers (default: all)")
	scanCmd.Flags().Int("timeout", 10, "validation HTTP timeout in seconds")
	scanCmd.Flags().Int("max-concurrent", 5, "maximum concurrent validation requests")
}

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [target...]",
	Short: "scan one or more local paths or git URLs for leaked AI provider keys",
	Args:  cobra.MinimumNArgs(1),
	Run:   runScan,
}

func runScan(cmd *cobra.Command, args []string) {
	output := mustGetStringFlag(cmd, "output")
	validate := mustGetBoolFlag(cmd, "validate")
	contextLines := mustGetIntFlag(cmd, "context-lines")
	providerFilter := mustGetStringSliceFlag(cmd, "provider")
	timeoutSeconds := mustGetIntFlag(cmd, "timeout")
	maxConcurrent := mustGetIntFlag(cmd, "max-concurrent")

	registry := providers.Default()

	opts := orchestrator.Options{
		ScanOptions: scanner.Options{
			ProviderFilter: providerFilter,
			ContextLines:   contextLines,
		},
		Validate: validate,
		ValidatorConfig: validator.Config{
			Timeout:       time.Duration(timeoutSeconds) * time.Second,
			MaxConcurrent: maxConcurrent,
		},
	}

	orch := orchestrator.New(registry, opts)

	session, err := orch.Run(cmd.Context(), args, opts)
	if err != nil {
		logging.Fatal().Err(err).Msg("scan failed")
	}

	redact := report.Redactor(entropy.RedactDefault)

	var writeErr error
	switch output {
	case "json":
		writeErr = report.WriteJSON(os.Stdout, session, redact)
	case "sarif":
		writeErr = report.WriteSARIF(os.Stdout, session, redact)
	case "table", "":
		writeErr = report.WriteTable(os.Stdout, session, redact)
	default:
		logging.Fatal().Str("output", output).Msg("unknown output format, expected table, json, or sarif")
	}

	if writeErr != nil {
		logging.Fatal().Err(writeErr).Msg("failed to write report")
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chayuto/ai-truffle-hog/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "ai-truffle-hog",
	Short: "detect and validate leaked AI provider API keys",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := mustGetStringFlag(cmd, "log-level")
		jsonLogs := mustGetBoolFlag(cmd, "log-format-json")

		lvl, err := zerolog.ParseLevel(level)
		if err != nil {
			lvl = zerolog.InfoLevel
		}
		logging.Init(lvl, jsonLogs)
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().Bool("log-format-json", false, "emit logs as JSON instead of console text")
}

// Execute runs the root command, printing any returned error and
// exiting non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		logging.Fatal().Err(err).Str("flag", name).Msg("invalid string flag")
	}
	return v
}

func mustGetBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		logging.Fatal().Err(err).Str("flag", name).Msg("invalid bool flag")
	}
	return v
}

func mustGetIntFlag(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		logging.Fatal().Err(err).Str("flag", name).Msg("invalid int flag")
	}
	return v
}

func mustGetStringSliceFlag(cmd *cobra.Command, name string) []string {
	v, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		logging.Fatal().Err(err).Str("flag", name).Msg("invalid string slice flag")
	}
	return v
}

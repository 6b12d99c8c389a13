package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chayuto/ai-truffle-hog/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "display ai-truffle-hog version",
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Println(version.Version)
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dlgate",
	Short: "Release download gateway",
	Long: `dlgate redirects download requests to the newest installer in the release
bucket. It reads the per-platform release manifest first and falls back to
scanning the bucket for the highest version.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

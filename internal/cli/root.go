// Package cli wires the reelops commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reelops",
	Short: "Turn a marketing video into a campaign",
	Long:  "reelops — upload a video or paste a transcript and let the agent pipeline\nproduce a campaign strategy, a TikTok content pack, and a production task list.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(logCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelops/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long:  "Opens the full-screen dashboard: submit a video, watch the agent pipeline, and work with the finalized campaign.",
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := mustConfig()
	if err != nil {
		return err
	}
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	coord := newCoordinator(cfg, store)
	coord.Restore()

	if err := tui.Run(coord); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

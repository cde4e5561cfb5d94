package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the current session",
	Long:  "Removes the restorable session so the next dashboard start opens on the submit form. --all also wipes the campaign history.",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "also clear the campaign history")
}

func runReset(cmd *cobra.Command, args []string) error {
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearCurrent(); err != nil {
		return err
	}
	if resetAll {
		if err := store.ClearCampaigns(); err != nil {
			return err
		}
		fmt.Println("Cleared session and campaign history")
		return nil
	}
	fmt.Println("Cleared session")
	return nil
}

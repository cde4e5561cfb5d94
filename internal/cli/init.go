package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reelops/internal/config"
	"reelops/internal/session"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize reelops in the current directory",
	Long:  "Creates a .reelops/ directory with default config and state database.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(reelopsDirName); err == nil {
		return fmt.Errorf("reelops already initialized in this directory (.reelops/ exists)")
	}

	if err := os.MkdirAll(reelopsDirName, 0755); err != nil {
		return fmt.Errorf("create %s: %w", reelopsDirName, err)
	}

	cfgPath := reelopsPath("config.yaml")
	if err := config.Save(cfgPath, config.Default()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Create the database by opening the store; migration runs automatically.
	store, err := session.New(reelopsPath("reelops.db"))
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	store.Close()

	fmt.Println("Initialized reelops in .reelops/")
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit .reelops/config.yaml to point backend_url at your campaign backend")
	fmt.Println("  2. Run: reelops run --file your-video.mp4")
	fmt.Println("  3. Run: reelops dashboard")

	return nil
}

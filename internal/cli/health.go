package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"reelops/internal/backend"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the campaign backend",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := mustConfig()
	if err != nil {
		return err
	}
	if cfg.DemoMode {
		fmt.Println(warnStyle.Render("demo mode: no backend configured"))
		return nil
	}

	client := backend.New(cfg.BackendURL)
	hs, err := client.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("backend unreachable at %s: %w", cfg.BackendURL, err)
	}

	fmt.Printf("%s %s\n", okStyle.Render("●"), hs.Status)

	names := make([]string, 0, len(hs.Services))
	for name := range hs.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mark := okStyle.Render("●")
		if !hs.Services[name] {
			mark = failStyle.Render("✗")
		}
		fmt.Printf("  %s %s\n", mark, name)
	}
	return nil
}

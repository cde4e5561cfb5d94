package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reelops/internal/campaign"
	"reelops/internal/export"
)

var (
	exportFormat string
	exportID     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current campaign",
	Long:  "Writes the current campaign (or a history entry via --id) to stdout as JSON, a CSV task list, or a mailto share link.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "o", "json", "output format: json, csv, or mailto")
	exportCmd.Flags().StringVar(&exportID, "id", "", "export a history entry instead of the current session")
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var c *campaign.Campaign
	title := "Current session"
	if exportID != "" {
		if c, err = store.GetCampaign(exportID); err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("no campaign with id %s", exportID)
		}
		title = exportID
	} else {
		if c, err = store.LoadCurrent(); err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("no active session to export. Run: reelops run")
		}
	}

	switch exportFormat {
	case "json":
		return export.WriteJSON(os.Stdout, c)
	case "csv":
		return export.WriteCSV(os.Stdout, c)
	case "mailto":
		fmt.Println(export.MailtoLink(title, c))
		return nil
	default:
		return fmt.Errorf("unknown format %q: use json, csv, or mailto", exportFormat)
	}
}

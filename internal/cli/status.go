package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session and campaign history",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	current, err := store.LoadCurrent()
	if err != nil {
		return err
	}
	if current == nil {
		fmt.Println(faintTxt.Render("no active session"))
	} else {
		fmt.Println(headStyle.Render("Current session"))
		fmt.Printf("  %s\n", current.Strategy.PrimaryAngle)
		fmt.Printf("  tasks: %d/%d done\n", current.TasksDone(), len(current.Tasks))
	}

	records, err := store.ListCampaigns()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println(faintTxt.Render("no campaign history"))
		return nil
	}

	fmt.Println()
	fmt.Println(headStyle.Render("History"))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "VIDEO", "CREATED"})
	for _, r := range records {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		t.AppendRow(table.Row{id, r.VideoTitle, r.CreatedAt.Local().Format("2006-01-02 15:04")})
	}
	t.Render()
	return nil
}

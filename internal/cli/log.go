package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logLimit int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent pipeline events",
	RunE:  runLog,
}

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 30, "number of events to show")
}

func runLog(cmd *cobra.Command, args []string) error {
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	events, err := store.ListEvents(logLimit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println(faintTxt.Render("no events yet"))
		return nil
	}

	for _, e := range events {
		ts := e.Timestamp.Local().Format("15:04:05")
		src := e.Source
		if src == "" {
			src = "-"
		}
		fmt.Printf("%s %s %s  %s\n",
			faintTxt.Render(ts), headStyle.Render(src), e.Type, faintTxt.Render(e.Content))
	}
	return nil
}

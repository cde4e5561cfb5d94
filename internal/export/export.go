// Package export renders a finalized campaign for handoff: pretty JSON,
// a CSV task list, and a prefilled mailto link.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"reelops/internal/campaign"
)

// WriteJSON writes the canonical campaign JSON, indented for humans.
func WriteJSON(w io.Writer, c *campaign.Campaign) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode campaign: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// WriteCSV writes the production task list as a spreadsheet-friendly table.
func WriteCSV(w io.Writer, c *campaign.Campaign) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"task", "priority", "estimated_time", "completed"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, task := range c.Tasks {
		row := []string{task.Task, string(task.Priority), task.EstimatedTime, strconv.FormatBool(task.Completed)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Summary renders a short plain-text digest of the campaign, used as the
// shared email body.
func Summary(title string, c *campaign.Campaign) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Campaign: %s\n\n", title)
	fmt.Fprintf(&b, "Strategy\n")
	fmt.Fprintf(&b, "  Angle: %s\n", c.Strategy.PrimaryAngle)
	fmt.Fprintf(&b, "  Audience: %s\n", c.Strategy.TargetAudience)
	for _, m := range c.Strategy.KeyMessages {
		fmt.Fprintf(&b, "  - %s\n", m)
	}

	fmt.Fprintf(&b, "\nTikTok\n")
	fmt.Fprintf(&b, "  Hook: %s\n", c.TikTok.Hook)
	fmt.Fprintf(&b, "  Caption: %s\n", c.TikTok.Caption)
	if len(c.TikTok.Hashtags) > 0 {
		fmt.Fprintf(&b, "  Hashtags: %s\n", strings.Join(c.TikTok.Hashtags, " "))
	}
	fmt.Fprintf(&b, "  Post at: %s\n", c.TikTok.OptimalTime)

	fmt.Fprintf(&b, "\nTasks (%d/%d done)\n", c.TasksDone(), len(c.Tasks))
	for _, task := range c.Tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "  [%s] %s (%s, %s)\n", mark, task.Task, task.Priority, task.EstimatedTime)
	}

	return b.String()
}

// MailtoLink builds a mailto URL with the campaign summary prefilled.
func MailtoLink(title string, c *campaign.Campaign) string {
	subject := url.QueryEscape("Marketing campaign: " + title)
	body := url.QueryEscape(Summary(title, c))
	return fmt.Sprintf("mailto:?subject=%s&body=%s", subject, body)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reelops/internal/campaign"
	"reelops/internal/pipeline"
)

// --- Color palette ---
var (
	clrSubtle    = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#666666"}
	clrHighlight = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	clrGreen     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	clrYellow    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	clrRed       = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	clrDim       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}
)

// --- Styles ---
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	dimStyle     = lipgloss.NewStyle().Foreground(clrDim)
	subtleStyle  = lipgloss.NewStyle().Foreground(clrSubtle)
	spinnerStyle = lipgloss.NewStyle().Foreground(clrHighlight)

	doneStyle   = lipgloss.NewStyle().Foreground(clrGreen)
	activeStyle = lipgloss.NewStyle().Foreground(clrYellow).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(clrRed).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrSubtle).
			Padding(0, 1).
			Width(60)

	footerKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	footerDescStyle = lipgloss.NewStyle().Foreground(clrSubtle)
)

var priorityStyles = map[campaign.Priority]lipgloss.Style{
	campaign.PriorityHigh:   lipgloss.NewStyle().Foreground(clrRed).Bold(true),
	campaign.PriorityMedium: lipgloss.NewStyle().Foreground(clrYellow),
	campaign.PriorityLow:    lipgloss.NewStyle().Foreground(clrGreen),
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.currentView {
	case viewSubmit:
		body = m.viewSubmit()
	case viewPipeline:
		body = m.viewPipeline()
	case viewCampaign:
		body = m.viewCampaign()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("REELOPS") + dimStyle.Render("  video in, campaign out"))
	b.WriteString("\n\n")
	b.WriteString(body)
	if m.statusMsg != "" {
		b.WriteString("\n" + subtleStyle.Render(m.statusMsg))
	}
	b.WriteString("\n" + m.footer())
	return b.String()
}

func (m Model) viewSubmit() string {
	labels := [numInputs]string{"Video file", "Transcript", "Title"}

	var b strings.Builder
	b.WriteString(subtleStyle.Render("New campaign") + "\n\n")
	for i, in := range m.inputs {
		label := labels[i]
		if i == m.focused {
			label = titleStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s\n%s\n\n", label, in.View()))
	}
	b.WriteString(dimStyle.Render("MP4, MOV or WebM up to 500 MB, or a pasted transcript."))
	return panelStyle.Render(b.String())
}

func (m Model) viewPipeline() string {
	var b strings.Builder

	switch m.snap.Status {
	case pipeline.StatusUploading:
		b.WriteString(m.spinner.View() + activeStyle.Render(" Uploading and transcribing") + "\n\n")
	case pipeline.StatusError:
		b.WriteString(errorStyle.Render("✗ Campaign generation failed") + "\n")
		b.WriteString(subtleStyle.Render(m.snap.Err) + "\n\n")
	default:
		b.WriteString(m.spinner.View() + activeStyle.Render(" Orchestrating agents") + "\n\n")
	}

	for _, st := range m.snap.Stages {
		b.WriteString(renderStage(st) + "\n")
	}
	return panelStyle.Render(b.String())
}

func renderStage(st pipeline.Stage) string {
	switch st.State {
	case pipeline.StageCompleted:
		return doneStyle.Render("● " + st.Name)
	case pipeline.StageProcessing:
		return activeStyle.Render("◉ "+st.Name) + dimStyle.Render("  "+st.Description)
	case pipeline.StageError:
		return errorStyle.Render("✗ " + st.Name)
	default:
		return dimStyle.Render("○ " + st.Name)
	}
}

func (m Model) viewCampaign() string {
	c := m.snap.Campaign
	if c == nil {
		return dimStyle.Render("no campaign")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.snap.VideoTitle) + "\n\n")

	b.WriteString(subtleStyle.Render("STRATEGY") + "\n")
	b.WriteString("  " + c.Strategy.PrimaryAngle + "\n")
	b.WriteString(dimStyle.Render("  for "+c.Strategy.TargetAudience) + "\n")
	for _, msg := range c.Strategy.KeyMessages {
		b.WriteString("  · " + msg + "\n")
	}

	b.WriteString("\n" + subtleStyle.Render("TIKTOK") + "\n")
	b.WriteString("  " + c.TikTok.Hook + "\n")
	b.WriteString(dimStyle.Render("  "+c.TikTok.Caption) + "\n")
	if len(c.TikTok.Hashtags) > 0 {
		b.WriteString("  " + doneStyle.Render(strings.Join(c.TikTok.Hashtags, " ")) + "\n")
	}
	b.WriteString(dimStyle.Render("  post at "+c.TikTok.OptimalTime) + "\n")

	b.WriteString("\n" + subtleStyle.Render(fmt.Sprintf("TASKS  %d/%d", c.TasksDone(), len(c.Tasks))) + "\n")
	for i, task := range c.Tasks {
		mark := "[ ]"
		if task.Completed {
			mark = doneStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s %s", mark, task.Task, priorityStyles[task.Priority].Render(string(task.Priority)))
		if task.EstimatedTime != "" {
			line += dimStyle.Render(" · " + task.EstimatedTime)
		}
		if i == m.taskCursor {
			line = "› " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	return panelStyle.Render(b.String())
}

func (m Model) footer() string {
	key := func(k, desc string) string {
		return footerKeyStyle.Render(k) + footerDescStyle.Render(" "+desc)
	}

	var keys []string
	switch m.currentView {
	case viewSubmit:
		keys = []string{key("tab", "next field"), key("enter", "generate"), key("esc", "quit")}
	case viewPipeline:
		if m.snap.Status == pipeline.StatusError {
			keys = []string{key("r", "retry"), key("q", "quit")}
		} else {
			keys = []string{key("q", "quit")}
		}
	case viewCampaign:
		keys = []string{
			key("space", "toggle task"), key("e", "json"), key("c", "csv"),
			key("s", "share"), key("n", "new"), key("q", "quit"),
		}
	}
	return footerDescStyle.Render(strings.Join(keys, footerDescStyle.Render("  ·  ")))
}

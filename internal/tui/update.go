package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"reelops/internal/export"
	"reelops/internal/pipeline"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.snap = m.coord.Snapshot()
		if m.currentView == viewPipeline {
			switch m.snap.Status {
			case pipeline.StatusCompleted:
				m.currentView = viewCampaign
				m.statusMsg = ""
			case pipeline.StatusError:
				// Stay on the pipeline screen; the error banner renders there.
			}
		}
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	switch m.currentView {
	case viewSubmit:
		return m.handleSubmitKey(msg)
	case viewPipeline:
		return m.handlePipelineKey(msg)
	case viewCampaign:
		return m.handleCampaignKey(msg)
	}
	return m, nil
}

func (m Model) handleSubmitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "shift+tab", "down", "up":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.focused = (m.focused + numInputs - 1) % numInputs
		} else {
			m.focused = (m.focused + 1) % numInputs
		}
		for i := range m.inputs {
			if i == m.focused {
				m.inputs[i].Focus()
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, nil
	case "enter":
		m.submit()
		return m, nil
	}
	return m.updateInputs(msg)
}

func (m Model) handlePipelineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "r":
		// Back to the form after a failure.
		if m.snap.Status == pipeline.StatusError {
			if err := m.coord.Reset(); err != nil {
				m.statusMsg = err.Error()
				return m, nil
			}
			m.snap = m.coord.Snapshot()
			m.currentView = viewSubmit
			m.statusMsg = ""
		}
	}
	return m, nil
}

func (m Model) handleCampaignKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case "down", "j":
		if c := m.snap.Campaign; c != nil && m.taskCursor < len(c.Tasks)-1 {
			m.taskCursor++
		}

	case " ", "x":
		if err := m.coord.ToggleTask(m.taskCursor); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.snap = m.coord.Snapshot()
		}

	case "e":
		m.exportFile("campaign.json", func(f *os.File) error {
			return export.WriteJSON(f, m.snap.Campaign)
		})
	case "c":
		m.exportFile("tasks.csv", func(f *os.File) error {
			return export.WriteCSV(f, m.snap.Campaign)
		})
	case "s":
		m.exportFile("campaign-share.txt", func(f *os.File) error {
			_, err := fmt.Fprintln(f, export.MailtoLink(m.snap.VideoTitle, m.snap.Campaign))
			return err
		})

	case "n":
		if err := m.coord.Reset(); err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.snap = m.coord.Snapshot()
		m.taskCursor = 0
		m.currentView = viewSubmit
		m.statusMsg = "Session cleared"
	}
	return m, nil
}

func (m *Model) exportFile(name string, write func(*os.File) error) {
	if m.snap.Campaign == nil {
		m.statusMsg = "nothing to export"
		return
	}
	f, err := os.Create(name)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.statusMsg = "Wrote " + name
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// Package tui is the interactive dashboard: a submit form, a live view of
// the agent pipeline, and the finalized campaign with exports.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reelops/internal/pipeline"
)

// view represents which screen the dashboard is on.
type view int

const (
	viewSubmit   view = iota // submission form
	viewPipeline             // live stage progress
	viewCampaign             // finalized campaign
)

// input indices on the submit form.
const (
	inputFile = iota
	inputTranscript
	inputTitle
	numInputs
)

// pollInterval is how often the dashboard samples the coordinator.
const pollInterval = 100 * time.Millisecond

// Model is the top-level bubbletea model.
type Model struct {
	coord *pipeline.Coordinator

	width  int
	height int

	currentView view

	// Submit form state.
	inputs  [numInputs]textinput.Model
	focused int

	// Pipeline state, refreshed every tick.
	snap    pipeline.Snapshot
	spinner spinner.Model

	// Campaign screen state.
	taskCursor int

	// Status message at the bottom.
	statusMsg string

	quitting bool
}

// New creates the dashboard model. When the coordinator already holds a
// restored campaign the dashboard opens on it directly.
func New(coord *pipeline.Coordinator) Model {
	file := textinput.New()
	file.Placeholder = "path/to/video.mp4"
	file.Focus()

	transcript := textinput.New()
	transcript.Placeholder = "or paste a transcript"

	title := textinput.New()
	title.Placeholder = "video title (optional)"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		coord:   coord,
		inputs:  [numInputs]textinput.Model{file, transcript, title},
		spinner: sp,
		snap:    coord.Snapshot(),
	}
	if m.snap.Status == pipeline.StatusCompleted {
		m.currentView = viewCampaign
		m.statusMsg = "Restored previous session"
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, tick())
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the dashboard in the alternate screen.
func Run(coord *pipeline.Coordinator) error {
	p := tea.NewProgram(New(coord), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) submit() {
	req := pipeline.Request{
		FilePath:   m.inputs[inputFile].Value(),
		Transcript: m.inputs[inputTranscript].Value(),
		VideoTitle: m.inputs[inputTitle].Value(),
	}
	if err := m.coord.Submit(context.Background(), req); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.statusMsg = ""
	m.taskCursor = 0
	m.currentView = viewPipeline
}

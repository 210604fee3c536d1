package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/enginehost/internal/core"
)

// Engine is the part of a running host the preview drives.
// *host.Host satisfies it.
type Engine interface {
	Step() (bool, error)
	Snapshot() (*image.RGBA, error)
	Frame() (*core.Frame, error)
	Frames() uint64
}

// FrameSaver archives captured frames. *storage.Store satisfies it.
type FrameSaver interface {
	SaveFrame(label string, frame *core.Frame) (int64, error)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Model is the Bubble Tea model for the interactive preview. It steps the
// engine once per tick and shows the latest viewport.
type Model struct {
	engine   Engine
	store    FrameSaver
	label    string
	tickRate int
	keys     PreviewKeyMap
	help     help.Model
	width    int
	height   int
	last     *image.RGBA
	status   string
	err      error
	paused   bool
	finished bool // engine asked to quit
	quitting bool
}

// NewModel creates a preview over a started engine. store may be nil, which
// disables frame archiving. Archived frames are saved under label.
func NewModel(engine Engine, store FrameSaver, label string, tickRate int) Model {
	return Model{
		engine:   engine,
		store:    store,
		label:    label,
		tickRate: tickRate,
		keys:     DefaultPreviewKeyMap(),
		help:     help.New(),
		width:    80,
		height:   24,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused && !m.finished {
			m = m.step()
		}
		if m.finished {
			return m, tea.Quit
		}
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Step):
		if m.paused && !m.finished {
			m = m.step()
		}
	case key.Matches(msg, m.keys.Snapshot):
		m = m.archive()
	}
	return m, nil
}

// step advances the engine one iteration and refreshes the picture.
func (m Model) step() Model {
	quit, err := m.engine.Step()
	if err != nil {
		m.err = err
		m.finished = true
		return m
	}
	if img, err := m.engine.Snapshot(); err == nil {
		m.last = img
	}
	m.finished = quit
	return m
}

func (m Model) archive() Model {
	if m.store == nil {
		m.status = "no frame store"
		return m
	}
	frame, err := m.engine.Frame()
	if err != nil {
		m.status = err.Error()
		return m
	}
	id, err := m.store.SaveFrame(m.label, frame)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.status = fmt.Sprintf("saved frame #%d", id)
	return m
}

// Err returns the step error that ended the preview, if any.
func (m Model) Err() error {
	return m.err
}

// Paused reports whether ticking is suspended.
func (m Model) Paused() bool {
	return m.paused
}

// Finished reports whether the engine requested to quit.
func (m Model) Finished() bool {
	return m.finished
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keys)
	reserved := 1 + lipgloss.Height(helpView)

	var sb strings.Builder
	if m.last == nil {
		sb.WriteString("waiting for the first frame...")
	} else {
		sb.WriteString(RenderImage(m.last, m.width, max(1, m.height-reserved)))
	}
	sb.WriteRune('\n')

	state := "running"
	switch {
	case m.err != nil:
		state = "error: " + m.err.Error()
	case m.finished:
		state = "finished"
	case m.paused:
		state = "paused"
	}
	line := fmt.Sprintf("frame %d  %s", m.engine.Frames(), state)
	if m.status != "" {
		line += "  " + m.status
	}
	sb.WriteString(statusStyle.Render(line))
	sb.WriteRune('\n')
	sb.WriteString(helpView)
	return sb.String()
}

// Run starts the Bubble Tea program with a preview model.
func Run(engine Engine, store FrameSaver, label string, tickRate int, opts ...tea.ProgramOption) error {
	model := NewModel(engine, store, label, tickRate)

	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewerModel shows the frames published to a slot. It never touches the
// engine, so any number of viewers can share one slot.
type ViewerModel struct {
	slot     *FrameSlot
	user     string
	tickRate int
	keys     PreviewKeyMap
	help     help.Model
	width    int
	height   int
	img      *image.RGBA
	seq      uint64
	quitting bool
}

// NewViewerModel creates a viewer of the given terminal size.
func NewViewerModel(slot *FrameSlot, user string, width, height, tickRate int) ViewerModel {
	return ViewerModel{
		slot:     slot,
		user:     user,
		tickRate: tickRate,
		keys:     viewerKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
}

// Init starts the refresh loop.
func (m ViewerModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages for the viewer.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if img, seq := m.slot.Latest(); seq != m.seq {
			m.img, m.seq = img, seq
		}
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

// Seq returns the sequence number of the frame on screen.
func (m ViewerModel) Seq() uint64 {
	return m.seq
}

// View renders the latest frame.
func (m ViewerModel) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keys)
	reserved := 1 + lipgloss.Height(helpView)

	var sb strings.Builder
	if m.img == nil {
		sb.WriteString("waiting for the first frame...")
	} else {
		sb.WriteString(RenderImage(m.img, m.width, max(1, m.height-reserved)))
	}
	sb.WriteRune('\n')

	state := "live"
	if m.slot.Done() {
		state = "ended"
	}
	sb.WriteString(statusStyle.Render(fmt.Sprintf("%s  frame %d  %s", m.user, m.seq, state)))
	sb.WriteRune('\n')
	sb.WriteString(helpView)
	return sb.String()
}

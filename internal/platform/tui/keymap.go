package tui

import "github.com/charmbracelet/bubbles/key"

// PreviewKeyMap defines the key bindings for the preview and the viewer.
type PreviewKeyMap struct {
	Pause    key.Binding
	Step     key.Binding
	Snapshot key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PreviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Snapshot, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PreviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step, k.Snapshot},
		{k.Help, k.Quit},
	}
}

// DefaultPreviewKeyMap returns default key bindings.
func DefaultPreviewKeyMap() PreviewKeyMap {
	return PreviewKeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "step once"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "archive frame"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// viewerKeyMap disables the bindings that would touch the engine.
func viewerKeyMap() PreviewKeyMap {
	k := DefaultPreviewKeyMap()
	k.Pause.SetEnabled(false)
	k.Step.SetEnabled(false)
	k.Snapshot.SetEnabled(false)
	return k
}

package soft

import (
	"sync"

	"github.com/vovakirdan/enginehost/internal/engine"
)

// EventKind identifies a display event.
type EventKind int

const (
	EventClose EventKind = iota // window close request
	EventResize
)

// Event is a queued display event.
type Event struct {
	Kind          EventKind
	Width, Height int
}

// Display is a headless display server: an event queue drained once per step.
// Pushing is safe from any goroutine.
type Display struct {
	mu      sync.Mutex
	queue   []Event
	handler func(Event)
}

// Push queues an event for the next ProcessEvents.
func (d *Display) Push(ev Event) {
	d.mu.Lock()
	d.queue = append(d.queue, ev)
	d.mu.Unlock()
}

// PushClose queues a window close request.
func (d *Display) PushClose() {
	d.Push(Event{Kind: EventClose})
}

// PushResize queues a viewport resize.
func (d *Display) PushResize(width, height int) {
	d.Push(Event{Kind: EventResize, Width: width, Height: height})
}

// Pending returns the number of queued events.
func (d *Display) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// ProcessEvents drains the queue into the engine.
func (d *Display) ProcessEvents() {
	d.mu.Lock()
	events := d.queue
	d.queue = nil
	handler := d.handler
	d.mu.Unlock()

	if handler == nil {
		return
	}
	for _, ev := range events {
		handler(ev)
	}
}

func (d *Display) reset() {
	d.mu.Lock()
	d.queue = nil
	d.handler = nil
	d.mu.Unlock()
}

// MainLoop tracks lifecycle notifications and quit requests.
type MainLoop struct {
	initialized bool
	finalized   bool
	quit        bool
}

// Initialize marks the loop as running.
func (m *MainLoop) Initialize() {
	m.initialized = true
}

// Finalize marks the loop as finished.
func (m *MainLoop) Finalize() {
	m.finalized = true
}

// Initialized reports whether Initialize was called.
func (m *MainLoop) Initialized() bool {
	return m.initialized
}

// Finalized reports whether Finalize was called.
func (m *MainLoop) Finalized() bool {
	return m.finalized
}

// QuitRequested reports whether a close request has been processed.
func (m *MainLoop) QuitRequested() bool {
	return m.quit
}

// Platform is the OS shim for one engine start.
type Platform struct {
	rt *Runtime
}

// MainLoop returns the running main loop, or nil before Start.
func (p *Platform) MainLoop() engine.MainLoop {
	if p.rt.loop == nil {
		return nil
	}
	return p.rt.loop
}

// DisplayServer returns the headless display.
func (p *Platform) DisplayServer() engine.DisplayServer {
	return p.rt.display
}

package tui

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/enginehost/internal/core"
)

type fakeEngine struct {
	steps   int
	quitAt  int // 0 = never
	stepErr error
}

func (e *fakeEngine) Step() (bool, error) {
	if e.stepErr != nil {
		return false, e.stepErr
	}
	e.steps++
	return e.quitAt > 0 && e.steps >= e.quitAt, nil
}

func (e *fakeEngine) Snapshot() (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = uint8(e.steps)
	}
	return img, nil
}

func (e *fakeEngine) Frame() (*core.Frame, error) {
	return core.NewFrame(8, 6), nil
}

func (e *fakeEngine) Frames() uint64 {
	return uint64(e.steps)
}

type fakeStore struct {
	labels []string
}

func (s *fakeStore) SaveFrame(label string, frame *core.Frame) (int64, error) {
	s.labels = append(s.labels, label)
	return int64(len(s.labels)), nil
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm, cmd
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, cols, rows int
		ew, eh           int
	}{
		{640, 360, 80, 24, 80, 44},
		{4, 4, 4, 2, 4, 4},
		{1, 1, 100, 100, 100, 100},
		{10, 10, 0, 5, 0, 0},
		{0, 10, 10, 5, 0, 0},
		{1000, 1, 10, 10, 10, 2},
	}

	for _, tc := range tests {
		w, h := FitSize(tc.w, tc.h, tc.cols, tc.rows)
		if w != tc.ew || h != tc.eh {
			t.Errorf("FitSize(%d,%d,%d,%d) = %d,%d expected %d,%d",
				tc.w, tc.h, tc.cols, tc.rows, w, h, tc.ew, tc.eh)
		}
	}
}

func TestRenderImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 60), uint8(y * 60), 0, 255})
		}
	}

	out := RenderImage(img, 4, 2)
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 2 lines, got %d", got+1)
	}
	if got := strings.Count(out, string(upperHalf)); got != 8 {
		t.Errorf("expected 8 half blocks, got %d", got)
	}

	if RenderImage(nil, 10, 10) != "" {
		t.Error("nil image should render empty")
	}
	if RenderImage(img, 0, 10) != "" {
		t.Error("zero-width terminal should render empty")
	}
}

func TestModelTickSteps(t *testing.T) {
	eng := &fakeEngine{}
	m := NewModel(eng, nil, "test", 30)

	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, TickMsg(time.Now()))
		if cmd == nil {
			t.Fatal("tick should schedule the next tick")
		}
	}
	if eng.steps != 3 {
		t.Errorf("steps = %d, expected 3", eng.steps)
	}
	if m.last == nil {
		t.Error("tick should capture a snapshot")
	}
	if !strings.Contains(m.View(), "frame 3") {
		t.Errorf("View() missing frame counter:\n%s", m.View())
	}
}

func TestModelPauseAndSingleStep(t *testing.T) {
	eng := &fakeEngine{}
	m := NewModel(eng, nil, "test", 30)

	m, _ = update(t, m, runeKey('p'))
	if !m.Paused() {
		t.Fatal("p should pause")
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	if eng.steps != 0 {
		t.Errorf("paused tick stepped the engine")
	}

	m, _ = update(t, m, runeKey('n'))
	if eng.steps != 1 {
		t.Errorf("n while paused should step once, steps = %d", eng.steps)
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("View() should show paused")
	}

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, runeKey('n'))
	if m.Paused() || eng.steps != 1 {
		t.Errorf("n while running should not step, steps = %d", eng.steps)
	}
}

func TestModelFinishesWhenEngineQuits(t *testing.T) {
	eng := &fakeEngine{quitAt: 2}
	m := NewModel(eng, nil, "test", 30)

	m, _ = update(t, m, TickMsg(time.Now()))
	m, cmd := update(t, m, TickMsg(time.Now()))
	if !m.Finished() {
		t.Fatal("model should be finished")
	}
	if cmd == nil {
		t.Fatal("finished model should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("finished model should quit the program")
	}
}

func TestModelViewBeforeFirstFrame(t *testing.T) {
	m := NewModel(&fakeEngine{}, nil, "test", 30)
	if !strings.Contains(m.View(), "waiting for the first frame") {
		t.Error("View() before the first tick should show the placeholder")
	}
}

func TestModelStepError(t *testing.T) {
	boom := errors.New("boom")
	m := NewModel(&fakeEngine{stepErr: boom}, nil, "test", 30)

	m, _ = update(t, m, TickMsg(time.Now()))
	if !errors.Is(m.Err(), boom) {
		t.Errorf("Err() = %v", m.Err())
	}
	if !strings.Contains(m.View(), "error: boom") {
		t.Error("View() should show the error")
	}
}

func TestModelArchive(t *testing.T) {
	store := &fakeStore{}
	m := NewModel(&fakeEngine{}, store, "run-1", 30)

	m, _ = update(t, m, runeKey('s'))
	if len(store.labels) != 1 || store.labels[0] != "run-1" {
		t.Errorf("labels = %v", store.labels)
	}
	if !strings.Contains(m.View(), "saved frame #1") {
		t.Error("View() should confirm the save")
	}

	noStore := NewModel(&fakeEngine{}, nil, "x", 30)
	noStore, _ = update(t, noStore, runeKey('s'))
	if !strings.Contains(noStore.View(), "no frame store") {
		t.Error("View() should report the missing store")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeEngine{}, nil, "x", 30)
	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestFrameSlotCopies(t *testing.T) {
	var slot FrameSlot
	if img, seq := slot.Latest(); img != nil || seq != 0 {
		t.Fatal("empty slot should have no frame")
	}

	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.Pix[0] = 42
	slot.Publish(src)
	src.Pix[0] = 0

	img, seq := slot.Latest()
	if seq != 1 || img.Pix[0] != 42 {
		t.Errorf("slot = seq %d pix %d", seq, img.Pix[0])
	}

	slot.Publish(nil)
	if _, seq := slot.Latest(); seq != 1 {
		t.Error("publishing nil should be ignored")
	}
}

func TestDriveUntilQuit(t *testing.T) {
	eng := &fakeEngine{quitAt: 3}
	var slot FrameSlot

	if err := Drive(context.Background(), eng, &slot, 1000, nil); err != nil {
		t.Fatalf("Drive() failed: %v", err)
	}
	if _, seq := slot.Latest(); seq != 3 {
		t.Errorf("published %d frames, expected 3", seq)
	}
	if !slot.Done() {
		t.Error("slot should be finished")
	}
}

func TestDriveCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var slot FrameSlot
	if err := Drive(ctx, &fakeEngine{}, &slot, 200, nil); err != nil {
		t.Fatalf("Drive() failed: %v", err)
	}
	if !slot.Done() {
		t.Error("slot should be finished after cancel")
	}
}

func TestDriveStepError(t *testing.T) {
	boom := errors.New("boom")
	var slot FrameSlot
	if err := Drive(context.Background(), &fakeEngine{stepErr: boom}, &slot, 1000, nil); !errors.Is(err, boom) {
		t.Errorf("Drive() error = %v", err)
	}
}

func TestViewerFollowsSlot(t *testing.T) {
	var slot FrameSlot
	m := NewViewerModel(&slot, "alice", 40, 12, 15)

	if !strings.Contains(m.View(), "waiting") {
		t.Error("viewer should wait for the first frame")
	}

	slot.Publish(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(ViewerModel)
	if cmd == nil {
		t.Error("viewer tick should reschedule")
	}
	if m.Seq() != 1 {
		t.Errorf("Seq() = %d", m.Seq())
	}

	slot.Finish()
	if view := m.View(); !strings.Contains(view, "alice") || !strings.Contains(view, "ended") {
		t.Errorf("View() = %q", view)
	}

	// Engine bindings are disabled in the viewer
	next, _ = m.Update(runeKey('p'))
	m = next.(ViewerModel)
	next, _ = m.Update(runeKey('q'))
	if next.(ViewerModel).View() != "" {
		t.Error("q should quit the viewer")
	}
}

func TestNewSSHServer(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")

	srv, err := NewSSHServer(cfg, &FrameSlot{}, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
	if srv.Sessions() != 0 {
		t.Errorf("Sessions() = %d", srv.Sessions())
	}
	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
}

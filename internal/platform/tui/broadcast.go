package tui

import (
	"context"
	"image"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// FrameSlot holds the latest published frame. Viewers read it; only the
// driver writes it.
type FrameSlot struct {
	mu   sync.RWMutex
	img  *image.RGBA
	seq  uint64
	done bool
}

// Publish stores a copy of img and bumps the sequence number.
func (s *FrameSlot) Publish(img *image.RGBA) {
	if img == nil {
		return
	}
	c := image.NewRGBA(img.Rect)
	copy(c.Pix, img.Pix)

	s.mu.Lock()
	s.img = c
	s.seq++
	s.mu.Unlock()
}

// Latest returns the current frame and its sequence number. The image is
// shared between viewers and must not be modified.
func (s *FrameSlot) Latest() (*image.RGBA, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img, s.seq
}

// Finish marks the stream as ended.
func (s *FrameSlot) Finish() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
}

// Done reports whether the stream has ended.
func (s *FrameSlot) Done() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

// Drive steps eng at tickRate and publishes every frame to slot until the
// engine quits, a step fails or ctx is cancelled. It is the only goroutine
// that touches eng. The slot is finished on return.
func Drive(ctx context.Context, eng Engine, slot *FrameSlot, tickRate int, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	defer slot.Finish()

	ticker := time.NewTicker(tickInterval(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		quit, err := eng.Step()
		if err != nil {
			logger.Error("engine step failed", "err", err)
			return err
		}
		if img, err := eng.Snapshot(); err == nil {
			slot.Publish(img)
		}
		if quit {
			logger.Info("engine requested quit", "frames", eng.Frames())
			return nil
		}
	}
}

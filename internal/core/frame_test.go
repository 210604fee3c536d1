package core

import "testing"

func TestNewFrame(t *testing.T) {
	f := NewFrame(8, 4)

	if f.Width() != 8 {
		t.Errorf("Width() = %d, expected 8", f.Width())
	}
	if f.Height() != 4 {
		t.Errorf("Height() = %d, expected 4", f.Height())
	}
	if f.Len() != 8*4*3 {
		t.Errorf("Len() = %d, expected %d", f.Len(), 8*4*3)
	}

	// Check that it's initialized black
	for _, b := range f.Pix() {
		if b != 0 {
			t.Fatal("New frame should be black")
		}
	}
}

func TestFrameSetAt(t *testing.T) {
	f := NewFrame(10, 10)

	f.Set(5, 5, 1, 2, 3)
	if r, g, b := f.At(5, 5); r != 1 || g != 2 || b != 3 {
		t.Errorf("At(5, 5) = (%d,%d,%d), expected (1,2,3)", r, g, b)
	}

	// Out of bounds should be silent
	f.Set(-1, 0, 9, 9, 9)
	f.Set(100, 0, 9, 9, 9)
	f.Set(0, -1, 9, 9, 9)
	f.Set(0, 100, 9, 9, 9)

	if r, g, b := f.At(-1, 0); r != 0 || g != 0 || b != 0 {
		t.Error("Out of bounds At should return black")
	}
}

func TestFrameFillAndClone(t *testing.T) {
	f := NewFrame(3, 2)
	f.Fill(10, 20, 30)

	c := f.Clone()
	f.Set(0, 0, 0, 0, 0)

	if r, g, b := c.At(0, 0); r != 10 || g != 20 || b != 30 {
		t.Errorf("Clone should not alias the original, got (%d,%d,%d)", r, g, b)
	}
	if r, _, _ := c.At(2, 1); r != 10 {
		t.Errorf("Fill should cover the last pixel, got %d", r)
	}
}

func TestFrameResize(t *testing.T) {
	f := NewFrame(4, 4)
	f.Fill(1, 1, 1)

	// Same size keeps content
	f.Resize(4, 4)
	if r, _, _ := f.At(3, 3); r != 1 {
		t.Error("Resize to the same size should keep content")
	}

	f.Resize(2, 6)
	if f.Len() != 2*6*3 {
		t.Errorf("Len() after resize = %d, expected %d", f.Len(), 2*6*3)
	}
}

func TestFrameFromRGB(t *testing.T) {
	pix := make([]byte, 2*2*3+5)
	f := FrameFromRGB(2, 2, pix)
	if f.Len() != 12 {
		t.Errorf("Len() = %d, expected 12", f.Len())
	}
	f.Set(1, 1, 7, 8, 9)
	if pix[9] != 7 {
		t.Error("FrameFromRGB should alias the given bytes")
	}
}

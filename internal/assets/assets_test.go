package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/enginehost/internal/core"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	img.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})
	return img
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, ".png", testImage()); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	desc, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if desc.Format != core.ImageFormatRGBA8 || desc.Width != 2 || desc.Height != 2 {
		t.Fatalf("descriptor = %v %dx%d", desc.Format, desc.Width, desc.Height)
	}
	if len(desc.Data) != 16 {
		t.Fatalf("len(Data) = %d, expected 16", len(desc.Data))
	}
	// Top-left red, bottom-left blue
	if !bytes.Equal(desc.Data[0:4], []byte{255, 0, 0, 255}) {
		t.Errorf("pixel (0,0) = %v", desc.Data[0:4])
	}
	if !bytes.Equal(desc.Data[8:12], []byte{0, 0, 255, 255}) {
		t.Errorf("pixel (0,1) = %v", desc.Data[8:12])
	}
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, ".BMP", testImage()); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	desc, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if !bytes.Equal(desc.Data[4:8], []byte{0, 255, 0, 255}) {
		t.Errorf("pixel (1,0) = %v", desc.Data[4:8])
	}
}

func TestDescriptorOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(5, 5, color.NRGBA{1, 2, 3, 255})

	desc := Descriptor(src)
	if desc.Width != 2 || desc.Height != 1 {
		t.Fatalf("size = %dx%d", desc.Width, desc.Height)
	}
	if !bytes.Equal(desc.Data[0:4], []byte{1, 2, 3, 255}) {
		t.Errorf("origin not normalized: %v", desc.Data[0:4])
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Decode() should fail on garbage")
	}
}

func TestEncodeUnsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, ".gif", testImage()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Encode(.gif) error = %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "x.jpg"), testImage()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Save(.jpg) error = %v", err)
	}
}

func TestSaveAndDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Save(path, testImage()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	desc, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() failed: %v", err)
	}
	if desc.Width != 2 {
		t.Errorf("width = %d", desc.Width)
	}
}

func TestFrameImage(t *testing.T) {
	frame := core.NewFrame(2, 1)
	frame.Set(1, 0, 9, 8, 7)

	img := FrameImage(frame)
	c := img.RGBAAt(1, 0)
	if c.R != 9 || c.G != 8 || c.B != 7 || c.A != 255 {
		t.Errorf("pixel = %+v", c)
	}
	if img.RGBAAt(0, 0).A != 255 {
		t.Error("frame image should be opaque")
	}
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	if err := Save(filepath.Join(dir, "brick.png"), testImage()); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := Save(filepath.Join(dir, "sub", "tile.bmp"), testImage()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewDirLoader(dir, nil)

	tests := []struct {
		name string
		ok   bool
	}{
		{"brick", true},
		{"brick.png", true},
		{"sub/tile", true},
		{"missing", false},
		{"broken", false},
		{"", false},
		{"../escape", false},
		{"sub/../../escape", false},
		{"sub", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			desc, ok := l.LoadImage(tc.name)
			if ok != tc.ok {
				t.Fatalf("LoadImage(%q) ok = %v, expected %v", tc.name, ok, tc.ok)
			}
			if ok && desc.Width != 2 {
				t.Errorf("width = %d", desc.Width)
			}
		})
	}
}

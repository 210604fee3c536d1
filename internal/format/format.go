// Package format maps the boundary's pixel formats onto the engine's.
//
// The two enumerations share ordinals, so the mapping is a direct numeric
// conversion. The constants below stop compilation if their sizes drift.
package format

import (
	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
)

// Either expression overflows uint when the enumerations differ in size.
const (
	_ = uint(int(core.ImageFormatMax) - int(engine.FormatMax))
	_ = uint(int(engine.FormatMax) - int(core.ImageFormatMax))
)

// ToEngine converts a boundary format to the engine format with the same
// ordinal. Out-of-range values are passed through; the engine rejects them.
func ToEngine(f core.ImageFormat) engine.Format {
	return engine.Format(f)
}

// FromEngine is the inverse of ToEngine.
func FromEngine(f engine.Format) core.ImageFormat {
	return core.ImageFormat(f)
}

// Valid reports whether f maps to a real engine format.
func Valid(f core.ImageFormat) bool {
	return ToEngine(f).Valid()
}

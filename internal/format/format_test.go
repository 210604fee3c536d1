package format

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
)

func TestCardinality(t *testing.T) {
	if int(core.ImageFormatMax) != int(engine.FormatMax) {
		t.Fatalf("format counts differ: boundary=%d engine=%d", core.ImageFormatMax, engine.FormatMax)
	}
}

func TestNamesAgree(t *testing.T) {
	for f := core.ImageFormat(0); f < core.ImageFormatMax; f++ {
		if got := ToEngine(f).String(); got != f.String() {
			t.Errorf("ToEngine(%s) = %s", f, got)
		}
	}
}

func TestKnownMappings(t *testing.T) {
	tests := []struct {
		in       core.ImageFormat
		expected engine.Format
	}{
		{core.ImageFormatL8, engine.FormatL8},
		{core.ImageFormatRGBA8, engine.FormatRGBA8},
		{core.ImageFormatRGB565, engine.FormatRGB565},
		{core.ImageFormatDXT5, engine.FormatDXT5},
		{core.ImageFormatETC2RAAsRG, engine.FormatETC2RAAsRG},
		{core.ImageFormatASTC8x8HDR, engine.FormatASTC8x8HDR},
	}

	for _, tc := range tests {
		if got := ToEngine(tc.in); got != tc.expected {
			t.Errorf("ToEngine(%s) = %s, expected %s", tc.in, got, tc.expected)
		}
	}
}

func TestMappingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every boundary format maps to the same ordinal", prop.ForAll(
		func(v int) bool {
			f := core.ImageFormat(v)
			return int(ToEngine(f)) == v && FromEngine(ToEngine(f)) == f
		},
		gen.IntRange(0, int(core.ImageFormatMax)-1),
	))

	properties.Property("validity is preserved", prop.ForAll(
		func(v int) bool {
			f := core.ImageFormat(v)
			return Valid(f) == f.Valid()
		},
		gen.IntRange(-5, int(core.ImageFormatMax)+5),
	))

	properties.TestingRun(t)
}

package engine

import "fmt"

// Format is the engine's pixel format enumeration.
type Format int32

const (
	FormatL8 Format = iota
	FormatLA8
	FormatR8
	FormatRG8
	FormatRGB8
	FormatRGBA8
	FormatRGBA4444
	FormatRGB565
	FormatRF
	FormatRGF
	FormatRGBF
	FormatRGBAF
	FormatRH
	FormatRGH
	FormatRGBH
	FormatRGBAH
	FormatRGBE9995
	FormatDXT1
	FormatDXT3
	FormatDXT5
	FormatRGTCR
	FormatRGTCRG
	FormatBPTCRGBA
	FormatBPTCRGBF
	FormatBPTCRGBFU
	FormatETC
	FormatETC2R11
	FormatETC2R11S
	FormatETC2RG11
	FormatETC2RG11S
	FormatETC2RGB8
	FormatETC2RGBA8
	FormatETC2RGB8A1
	FormatETC2RAAsRG
	FormatDXT5RAAsRG
	FormatASTC4x4
	FormatASTC4x4HDR
	FormatASTC8x8
	FormatASTC8x8HDR
	FormatMax
)

// formatInfo describes storage for one format. Uncompressed formats have a
// 1x1 block; blockBytes is then the pixel size.
type formatInfo struct {
	name       string
	blockW     int
	blockH     int
	blockBytes int
	channels   int // 8-bit channels per pixel, 0 if not byte-per-channel
}

var formats = [FormatMax]formatInfo{
	FormatL8:         {"L8", 1, 1, 1, 1},
	FormatLA8:        {"LA8", 1, 1, 2, 2},
	FormatR8:         {"R8", 1, 1, 1, 1},
	FormatRG8:        {"RG8", 1, 1, 2, 2},
	FormatRGB8:       {"RGB8", 1, 1, 3, 3},
	FormatRGBA8:      {"RGBA8", 1, 1, 4, 4},
	FormatRGBA4444:   {"RGBA4444", 1, 1, 2, 0},
	FormatRGB565:     {"RGB565", 1, 1, 2, 0},
	FormatRF:         {"RF", 1, 1, 4, 0},
	FormatRGF:        {"RGF", 1, 1, 8, 0},
	FormatRGBF:       {"RGBF", 1, 1, 12, 0},
	FormatRGBAF:      {"RGBAF", 1, 1, 16, 0},
	FormatRH:         {"RH", 1, 1, 2, 0},
	FormatRGH:        {"RGH", 1, 1, 4, 0},
	FormatRGBH:       {"RGBH", 1, 1, 6, 0},
	FormatRGBAH:      {"RGBAH", 1, 1, 8, 0},
	FormatRGBE9995:   {"RGBE9995", 1, 1, 4, 0},
	FormatDXT1:       {"DXT1", 4, 4, 8, 0},
	FormatDXT3:       {"DXT3", 4, 4, 16, 0},
	FormatDXT5:       {"DXT5", 4, 4, 16, 0},
	FormatRGTCR:      {"RGTC_R", 4, 4, 8, 0},
	FormatRGTCRG:     {"RGTC_RG", 4, 4, 16, 0},
	FormatBPTCRGBA:   {"BPTC_RGBA", 4, 4, 16, 0},
	FormatBPTCRGBF:   {"BPTC_RGBF", 4, 4, 16, 0},
	FormatBPTCRGBFU:  {"BPTC_RGBFU", 4, 4, 16, 0},
	FormatETC:        {"ETC", 4, 4, 8, 0},
	FormatETC2R11:    {"ETC2_R11", 4, 4, 8, 0},
	FormatETC2R11S:   {"ETC2_R11S", 4, 4, 8, 0},
	FormatETC2RG11:   {"ETC2_RG11", 4, 4, 16, 0},
	FormatETC2RG11S:  {"ETC2_RG11S", 4, 4, 16, 0},
	FormatETC2RGB8:   {"ETC2_RGB8", 4, 4, 8, 0},
	FormatETC2RGBA8:  {"ETC2_RGBA8", 4, 4, 16, 0},
	FormatETC2RGB8A1: {"ETC2_RGB8A1", 4, 4, 8, 0},
	FormatETC2RAAsRG: {"ETC2_RA_AS_RG", 4, 4, 16, 0},
	FormatDXT5RAAsRG: {"DXT5_RA_AS_RG", 4, 4, 16, 0},
	FormatASTC4x4:    {"ASTC_4x4", 4, 4, 16, 0},
	FormatASTC4x4HDR: {"ASTC_4x4_HDR", 4, 4, 16, 0},
	FormatASTC8x8:    {"ASTC_8x8", 8, 8, 16, 0},
	FormatASTC8x8HDR: {"ASTC_8x8_HDR", 8, 8, 16, 0},
}

// Valid reports whether f is a real format (excludes FormatMax).
func (f Format) Valid() bool {
	return f >= 0 && f < FormatMax
}

func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", int32(f))
	}
	return formats[f].name
}

// Compressed reports whether f is a block-compressed format.
func (f Format) Compressed() bool {
	return f.Valid() && formats[f].blockW > 1
}

// LevelSize returns the byte size of one mip level of width x height.
func (f Format) LevelSize(width, height int) int {
	if !f.Valid() || width <= 0 || height <= 0 {
		return 0
	}
	fi := formats[f]
	bw := (width + fi.blockW - 1) / fi.blockW
	bh := (height + fi.blockH - 1) / fi.blockH
	return bw * bh * fi.blockBytes
}

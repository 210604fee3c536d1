package core

import (
	"fmt"
	"strings"
)

// ImageFormat is the boundary's stable pixel-format enumeration. Hosts send
// these values over the plain-data interface, so the numeric values are part
// of the ABI: append only, never reorder.
type ImageFormat int32

const (
	ImageFormatL8  ImageFormat = iota // luminance
	ImageFormatLA8                    // luminance-alpha
	ImageFormatR8
	ImageFormatRG8
	ImageFormatRGB8
	ImageFormatRGBA8
	ImageFormatRGBA4444
	ImageFormatRGB565
	ImageFormatRF // float
	ImageFormatRGF
	ImageFormatRGBF
	ImageFormatRGBAF
	ImageFormatRH // half float
	ImageFormatRGH
	ImageFormatRGBH
	ImageFormatRGBAH
	ImageFormatRGBE9995
	ImageFormatDXT1 // s3tc bc1
	ImageFormatDXT3 // bc2
	ImageFormatDXT5 // bc3
	ImageFormatRGTCR
	ImageFormatRGTCRG
	ImageFormatBPTCRGBA  // bc7
	ImageFormatBPTCRGBF  // bc6h
	ImageFormatBPTCRGBFU // bc6h unsigned
	ImageFormatETC       // etc1
	ImageFormatETC2R11
	ImageFormatETC2R11S // signed, not srgb
	ImageFormatETC2RG11
	ImageFormatETC2RG11S
	ImageFormatETC2RGB8
	ImageFormatETC2RGBA8
	ImageFormatETC2RGB8A1
	ImageFormatETC2RAAsRG
	ImageFormatDXT5RAAsRG
	ImageFormatASTC4x4
	ImageFormatASTC4x4HDR
	ImageFormatASTC8x8
	ImageFormatASTC8x8HDR
	ImageFormatMax // number of formats, not a format
)

var imageFormatNames = [ImageFormatMax]string{
	"L8", "LA8", "R8", "RG8", "RGB8", "RGBA8", "RGBA4444", "RGB565",
	"RF", "RGF", "RGBF", "RGBAF", "RH", "RGH", "RGBH", "RGBAH", "RGBE9995",
	"DXT1", "DXT3", "DXT5", "RGTC_R", "RGTC_RG", "BPTC_RGBA", "BPTC_RGBF", "BPTC_RGBFU",
	"ETC", "ETC2_R11", "ETC2_R11S", "ETC2_RG11", "ETC2_RG11S", "ETC2_RGB8", "ETC2_RGBA8",
	"ETC2_RGB8A1", "ETC2_RA_AS_RG", "DXT5_RA_AS_RG",
	"ASTC_4x4", "ASTC_4x4_HDR", "ASTC_8x8", "ASTC_8x8_HDR",
}

// Valid reports whether f names a format (excludes ImageFormatMax).
func (f ImageFormat) Valid() bool {
	return f >= 0 && f < ImageFormatMax
}

// String returns the format's boundary name (e.g. "RGBA8").
func (f ImageFormat) String() string {
	if !f.Valid() {
		return fmt.Sprintf("ImageFormat(%d)", int32(f))
	}
	return imageFormatNames[f]
}

// ParseImageFormat resolves a boundary format name, case-insensitively.
func ParseImageFormat(name string) (ImageFormat, error) {
	for i, n := range imageFormatNames {
		if strings.EqualFold(n, name) {
			return ImageFormat(i), nil
		}
	}
	return 0, fmt.Errorf("core: unknown image format %q", name)
}

// ImageDescriptor is what a host image loader hands back for a named image.
// Data is borrowed: it belongs to the loader and is only valid for the duration
// of the call that received it. len(Data) is the byte length.
type ImageDescriptor struct {
	Format ImageFormat
	Width  uint32
	Height uint32
	Data   []byte
}

// Empty reports whether the descriptor carries no pixel data.
func (d ImageDescriptor) Empty() bool {
	return len(d.Data) == 0
}

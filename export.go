package gfx

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageFormat selects the encoding used by EncodeImage.
type ImageFormat int

const (
	// PNG is lossless and the default.
	PNG ImageFormat = iota
	BMP
	TIFF
)

func (f ImageFormat) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return fmt.Sprintf("ImageFormat(%d)", f)
	}
}

// FormatFromPath picks an image format from a file extension. Unknown
// extensions select PNG.
func FormatFromPath(path string) ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	default:
		return PNG
	}
}

// EncodeImage writes img to w in the given format.
func EncodeImage(w io.Writer, img image.Image, format ImageFormat) error {
	var err error
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("gfx: unknown image format %v", format)
	}
	if err != nil {
		return fmt.Errorf("gfx: encode %v: %w", format, err)
	}
	return nil
}

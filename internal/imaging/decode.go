package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

const (
	// PointsPerInch is the number of typographic points in one inch.
	PointsPerInch = 72.0

	// DefaultDPI is the resolution assumed when an image carries no usable
	// density metadata.
	DefaultDPI = 96.0
)

// Decoded is a fully decoded image together with the metadata needed to
// place it on a page.
type Decoded struct {
	// Image holds the decoded pixels.
	Image image.Image

	// Format is the decoder name reported by the image package:
	// "png", "jpeg", "gif", "bmp", "tiff" or "webp".
	Format string

	// Width and Height are the pixel dimensions.
	Width  int
	Height int

	// DPIX and DPIY are the horizontal and vertical resolution in dots per
	// inch. They are never zero; DefaultDPI is substituted when the source
	// does not say.
	DPIX float64
	DPIY float64

	// Data is the encoded source exactly as it was read.
	Data []byte
}

// Decode decodes an encoded image held in memory.
//
// The format is sniffed from the content, not from any file name. Besides
// PNG, JPEG and GIF, the BMP, TIFF and WebP decoders are registered so that
// callers can tell an image they do not support apart from bytes that are not
// an image at all.
func Decode(data []byte) (*Decoded, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	dpiX, dpiY := readDensity(format, data)
	bounds := img.Bounds()

	return &Decoded{
		Image:  img,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		DPIX:   dpiX,
		DPIY:   dpiY,
		Data:   data,
	}, nil
}

// Open reads and decodes the image file at path.
func Open(path string) (*Decoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return Decode(data)
}

// SizeInPoints returns the physical size of the image at its own resolution.
func (d *Decoded) SizeInPoints() (width, height float64) {
	width = float64(d.Width) / d.DPIX * PointsPerInch
	height = float64(d.Height) / d.DPIY * PointsPerInch
	return width, height
}

// Encode encodes img in the named format ("png", "jpeg", "jpg", "gif", "bmp",
// "tiff"). WebP has no encoder and is rejected.
func Encode(img image.Image, format string) ([]byte, error) {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return nil, fmt.Errorf("cannot encode %q: %w", format, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// CanEncode reports whether Encode supports the named format.
func CanEncode(format string) bool {
	_, err := imaging.FormatFromExtension(format)
	return err == nil
}

package rtf

import "errors"

var (
	// ErrDecode is returned when image data cannot be decoded.
	ErrDecode = errors.New("rtf: cannot decode image")

	// ErrUnsupportedFormat is returned when an image decodes to a format other
	// than JPEG, PNG or GIF.
	ErrUnsupportedFormat = errors.New("rtf: unsupported image format")

	// ErrUnsupportedImageType is returned by Render when the block holds a
	// format tag that has no picture type. Construction prevents this, so it
	// indicates a programming error.
	ErrUnsupportedImageType = errors.New("rtf: unsupported image type")
)

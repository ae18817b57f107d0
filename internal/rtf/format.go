package rtf

import (
	"fmt"
	"strings"
)

// ImageFormat identifies the encoding of an embedded picture.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota + 1
	FormatPNG
	FormatGIF
)

func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatGIF:
		return "gif"
	}
	return fmt.Sprintf("ImageFormat(%d)", int(f))
}

// pictureTypes maps each format to its picture-type control word. RTF
// readers have no GIF blip, so GIF payloads are declared as PNG.
var pictureTypes = map[ImageFormat]string{
	FormatJPEG: `\jpegblip`,
	FormatPNG:  `\pngblip`,
	FormatGIF:  `\pngblip`,
}

// PictureType returns the control word that declares a picture of format f.
func PictureType(f ImageFormat) (string, error) {
	word, ok := pictureTypes[f]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImageType, f)
	}
	return word, nil
}

// ParseImageFormat converts a format name or file extension such as "png",
// ".JPG" or "jpeg" to an ImageFormat.
func ParseImageFormat(name string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "gif":
		return FormatGIF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// detectedFormats maps decoder names to the formats that may be embedded.
var detectedFormats = map[string]ImageFormat{
	"jpeg": FormatJPEG,
	"png":  FormatPNG,
	"gif":  FormatGIF,
}

func (f ImageFormat) valid() bool {
	_, ok := pictureTypes[f]
	return ok
}

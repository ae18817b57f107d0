package rtf

import (
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/rtfimage/internal/imaging"
)

// ImageBlock is a picture embedded in an RTF document.
//
// Width and height are in points. Both constructors decode the image
// immediately, so an ImageBlock always holds a payload in one of the
// supported formats. An ImageBlock is not safe for concurrent mutation;
// Render only reads it.
type ImageBlock struct {
	format  ImageFormat
	payload []byte

	width           float64
	height          float64
	keepAspectRatio bool

	alignment         Align
	margins           Margins
	startNewPage      bool
	startNewParagraph bool

	blockHead string
	blockTail string
}

var _ Block = (*ImageBlock)(nil)

func newImageBlock(format ImageFormat, payload []byte, align Align) *ImageBlock {
	return &ImageBlock{
		format:          format,
		payload:         payload,
		keepAspectRatio: true,
		alignment:       align,
		margins:         NewMargins(),
		blockHead:       defaultBlockHead,
		blockTail:       defaultBlockTail,
	}
}

// FromFile builds an image block from the file at path, declared to be of
// the given format.
//
// The size is the pixel size divided by the resolution recorded in the
// file. The payload is the decoded image encoded again in the format it was
// stored in, not the original file bytes. Alignment defaults to AlignNone.
func FromFile(path string, format ImageFormat) (*ImageBlock, error) {
	if !format.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	dec, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	native := dec.Format
	if !imaging.CanEncode(native) {
		native = format.String()
	}
	payload, err := imaging.Encode(dec.Image, native)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode %s: %w", path, err)
	}

	img := newImageBlock(format, payload, AlignNone)
	img.width, img.height = dec.SizeInPoints()
	return img, nil
}

// FromStream builds an image block from encoded image data, detecting the
// format from the content.
//
// The bytes read from r are embedded unchanged. Formats other than JPEG, PNG
// and GIF fail with ErrUnsupportedFormat. Alignment defaults to AlignLeft.
//
// The size is computed as pixel size over bounds size times 72, which is
// always 72pt for a non-empty image regardless of its resolution. Callers
// that need the physical size should set it explicitly.
func FromStream(r io.Reader) (*ImageBlock, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image stream: %w", err)
	}

	dec, err := imaging.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	format, ok := detectedFormats[dec.Format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, dec.Format)
	}

	img := newImageBlock(format, data, AlignLeft)
	bounds := dec.Image.Bounds()
	img.width = boundsRatio(dec.Width, bounds.Dx()) * imaging.PointsPerInch
	img.height = boundsRatio(dec.Height, bounds.Dy()) * imaging.PointsPerInch
	return img, nil
}

// Open builds an image block from the file at path. A declared format
// behaves like FromFile; the zero ImageFormat embeds the file's bytes as-is
// like FromStream.
func Open(path string, format ImageFormat) (*ImageBlock, error) {
	if format != 0 {
		return FromFile(path, format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := FromStream(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func boundsRatio(pixels, bounds int) float64 {
	if bounds == 0 {
		return 0
	}
	return float64(pixels) / float64(bounds)
}

// Format returns the declared picture format.
func (img *ImageBlock) Format() ImageFormat { return img.format }

// Payload returns the encoded image bytes that are embedded. The slice is
// shared with the block and must not be modified.
func (img *ImageBlock) Payload() []byte { return img.payload }

// Width returns the target width in points.
func (img *ImageBlock) Width() float64 { return img.width }

// SetWidth sets the target width in points.
//
// If the aspect ratio is kept and both current dimensions are positive, the
// height is scaled by the current height-to-width ratio first. The ratio is
// taken from the current state, so successive resizes compose rather than
// restoring the image's original proportions.
func (img *ImageBlock) SetWidth(w float64) {
	if img.keepAspectRatio && img.width > 0 && img.height > 0 {
		img.height = w * (img.height / img.width)
	}
	img.width = w
}

// Height returns the target height in points.
func (img *ImageBlock) Height() float64 { return img.height }

// SetHeight sets the target height in points, scaling the width like
// SetWidth scales the height.
func (img *ImageBlock) SetHeight(h float64) {
	if img.keepAspectRatio && img.width > 0 && img.height > 0 {
		img.width = h * (img.width / img.height)
	}
	img.height = h
}

// KeepAspectRatio reports whether SetWidth and SetHeight rescale the other
// dimension. It is true for new blocks.
func (img *ImageBlock) KeepAspectRatio() bool { return img.keepAspectRatio }

// SetKeepAspectRatio sets whether resizing one dimension rescales the other.
func (img *ImageBlock) SetKeepAspectRatio(keep bool) { img.keepAspectRatio = keep }

// Alignment returns the horizontal alignment.
func (img *ImageBlock) Alignment() Align { return img.alignment }

// SetAlignment sets the horizontal alignment. AlignNone writes no alignment
// control word.
func (img *ImageBlock) SetAlignment(a Align) { img.alignment = a }

// Margins returns the block margins for in-place edits.
func (img *ImageBlock) Margins() *Margins { return &img.margins }

// StartNewPage reports whether the picture begins on a new page.
func (img *ImageBlock) StartNewPage() bool { return img.startNewPage }

// SetStartNewPage sets whether the picture begins on a new page.
func (img *ImageBlock) SetStartNewPage(v bool) { img.startNewPage = v }

// StartNewParagraph reports whether a paragraph break follows the picture.
func (img *ImageBlock) StartNewParagraph() bool { return img.startNewParagraph }

// SetStartNewParagraph sets whether a \par follows the picture. New blocks
// default to false.
func (img *ImageBlock) SetStartNewParagraph(v bool) { img.startNewParagraph = v }

// DefaultCharFormat is always nil; a picture has no text to format.
func (img *ImageBlock) DefaultCharFormat() *CharFormat { return nil }

// BlockHead returns the text written before the layout control words.
func (img *ImageBlock) BlockHead() string { return img.blockHead }

// SetBlockHead replaces the block head, for example to nest the picture in
// a table cell.
func (img *ImageBlock) SetBlockHead(s string) { img.blockHead = s }

// BlockTail returns the text written after the picture group.
func (img *ImageBlock) BlockTail() string { return img.blockTail }

// SetBlockTail replaces the block tail.
func (img *ImageBlock) SetBlockTail(s string) { img.blockTail = s }

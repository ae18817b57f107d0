package rtf

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultFont is the font used when none is configured.
const DefaultFont = "Times New Roman"

// Document is an ordered list of blocks rendered into one RTF file.
type Document struct {
	font   string
	blocks []Block
}

// NewDocument returns an empty document using DefaultFont.
func NewDocument() *Document {
	return &Document{font: DefaultFont}
}

// SetFont sets the document's default font.
func (d *Document) SetFont(name string) {
	if name != "" {
		d.font = name
	}
}

// Font returns the document's default font.
func (d *Document) Font() string { return d.font }

// AddBlock appends b to the document.
func (d *Document) AddBlock(b Block) {
	d.blocks = append(d.blocks, b)
}

// Blocks returns the document's blocks in order.
func (d *Document) Blocks() []Block { return d.blocks }

// AddParagraph appends a paragraph of text and returns it.
func (d *Document) AddParagraph(text string) *Paragraph {
	p := NewParagraph(text)
	d.AddBlock(p)
	return p
}

// AddImageFromFile appends an image built by FromFile and returns it.
func (d *Document) AddImageFromFile(path string, format ImageFormat) (*ImageBlock, error) {
	img, err := FromFile(path, format)
	if err != nil {
		return nil, err
	}
	d.AddBlock(img)
	return img, nil
}

// AddImageFromStream appends an image built by FromStream and returns it.
func (d *Document) AddImageFromStream(r io.Reader) (*ImageBlock, error) {
	img, err := FromStream(r)
	if err != nil {
		return nil, err
	}
	d.AddBlock(img)
	return img, nil
}

// Render returns the complete document.
func (d *Document) Render() (string, error) {
	var b strings.Builder
	b.WriteString(`{\rtf1\ansi\deff0{\fonttbl{\f0 `)
	writeEscaped(&b, d.font)
	b.WriteString(";}}\n")

	for i, blk := range d.blocks {
		s, err := blk.Render()
		if err != nil {
			return "", fmt.Errorf("block %d: %w", i, err)
		}
		b.WriteString(s)
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// WriteTo renders the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	s, err := d.Render()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, s)
	return int64(n), err
}

// Save renders the document to the file at path.
func (d *Document) Save(path string) error {
	s, err := d.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

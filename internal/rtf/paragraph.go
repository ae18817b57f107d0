package rtf

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// CharFormat is the character formatting of a run of text.
type CharFormat struct {
	Bold      bool
	Italic    bool
	Underline bool

	// FontSize is in points; zero keeps the document default.
	FontSize float64
}

// writeTo writes the formatting control words and reports whether it wrote any.
func (f *CharFormat) writeTo(b *strings.Builder) bool {
	n := b.Len()
	if f.Bold {
		b.WriteString(`\b`)
	}
	if f.Italic {
		b.WriteString(`\i`)
	}
	if f.Underline {
		b.WriteString(`\ul`)
	}
	if f.FontSize > 0 {
		// \fs counts half-points
		b.WriteString(`\fs`)
		b.WriteString(strconv.Itoa(int(f.FontSize*2 + 0.5)))
	}
	return b.Len() > n
}

// Paragraph is a block of plain text.
type Paragraph struct {
	text string

	alignment    Align
	margins      Margins
	startNewPage bool
	charFormat   CharFormat

	blockHead string
	blockTail string
}

var _ Block = (*Paragraph)(nil)

// NewParagraph returns a left-aligned paragraph holding text.
func NewParagraph(text string) *Paragraph {
	return &Paragraph{
		text:      text,
		alignment: AlignLeft,
		margins:   NewMargins(),
		blockHead: defaultBlockHead,
		blockTail: `\par}`,
	}
}

// Text returns the paragraph text.
func (p *Paragraph) Text() string { return p.text }

// SetText replaces the paragraph text.
func (p *Paragraph) SetText(s string) { p.text = s }

// Alignment returns the horizontal alignment.
func (p *Paragraph) Alignment() Align { return p.alignment }

// SetAlignment sets the horizontal alignment.
func (p *Paragraph) SetAlignment(a Align) { p.alignment = a }

// Margins returns the paragraph margins for in-place edits.
func (p *Paragraph) Margins() *Margins { return &p.margins }

// StartNewPage reports whether the paragraph begins on a new page.
func (p *Paragraph) StartNewPage() bool { return p.startNewPage }

// SetStartNewPage sets whether the paragraph begins on a new page.
func (p *Paragraph) SetStartNewPage(v bool) { p.startNewPage = v }

// DefaultCharFormat returns the formatting applied to the whole text.
func (p *Paragraph) DefaultCharFormat() *CharFormat { return &p.charFormat }

// SetBlockHead replaces the text written before the layout control words.
func (p *Paragraph) SetBlockHead(s string) { p.blockHead = s }

// SetBlockTail replaces the text written after the paragraph text.
func (p *Paragraph) SetBlockTail(s string) { p.blockTail = s }

// Render returns the paragraph as an RTF fragment ending in a newline.
func (p *Paragraph) Render() (string, error) {
	var b strings.Builder
	b.WriteString(p.blockHead)
	writeLayout(&b, p.startNewPage, &p.margins, p.alignment)
	b.WriteByte('{')
	if p.charFormat.writeTo(&b) {
		b.WriteByte(' ')
	}
	writeEscaped(&b, p.text)
	b.WriteByte('}')
	b.WriteString(p.blockTail)
	b.WriteByte('\n')
	return b.String(), nil
}

// writeEscaped writes s as RTF text. Characters outside ASCII use \u with a
// '?' fallback for readers without Unicode support. Other control
// characters are written as \'hh.
func writeEscaped(b *strings.Builder, s string) {
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\line `)
		case r == '\t':
			b.WriteString(`\tab `)
		case r == '\r':
		case r < 0x20:
			writeHexEscape(b, byte(r))
		case r < 0x80:
			b.WriteRune(r)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			writeUnicode(b, hi)
			writeUnicode(b, lo)
		default:
			writeUnicode(b, r)
		}
	}
}

// writeUnicode writes one UTF-16 code unit; \u takes a signed 16-bit value.
func writeUnicode(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	b.WriteString(strconv.Itoa(int(int16(uint16(r)))))
	b.WriteByte('?')
}

func writeHexEscape(b *strings.Builder, c byte) {
	const hexDigits = "0123456789abcdef"
	b.WriteString(`\'`)
	b.WriteByte(hexDigits[c>>4])
	b.WriteByte(hexDigits[c&0x0f])
}

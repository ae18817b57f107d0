package rtf

import (
	"math"
	"strconv"
	"strings"
)

// TwipsPerPoint is the number of twips (1/1440 inch) in one point.
const TwipsPerPoint = 20

const (
	defaultBlockHead = `{\pard`
	defaultBlockTail = `}`
)

// Block is a renderable unit of an RTF document.
type Block interface {
	Alignment() Align
	SetAlignment(Align)

	// Margins returns the block's margins for in-place modification.
	Margins() *Margins

	StartNewPage() bool
	SetStartNewPage(bool)

	// DefaultCharFormat returns the character format applied to the block's
	// text, or nil when the block has no text.
	DefaultCharFormat() *CharFormat

	// SetBlockHead and SetBlockTail override the delimiters that open and
	// close the block, e.g. to place it inside a table cell.
	SetBlockHead(string)
	SetBlockTail(string)

	// Render returns the block's complete markup.
	Render() (string, error)
}

// NestInCell replaces b's delimiters so that it renders as the content of a
// table cell.
func NestInCell(b Block) {
	b.SetBlockHead(`\pard\intbl`)
	b.SetBlockTail(`\cell`)
}

// Align is the horizontal alignment of a block.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignRight
	AlignCenter
)

var alignNames = map[Align]string{
	AlignNone:   "none",
	AlignLeft:   "left",
	AlignRight:  "right",
	AlignCenter: "center",
}

var alignWords = map[Align]string{
	AlignLeft:   `\ql`,
	AlignRight:  `\qr`,
	AlignCenter: `\qc`,
}

func (a Align) String() string {
	if s, ok := alignNames[a]; ok {
		return s
	}
	return "Align(" + strconv.Itoa(int(a)) + ")"
}

// ParseAlign converts "none", "left", "right" or "center" to an Align.
// The empty string is AlignNone.
func ParseAlign(s string) (Align, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AlignNone, true
	}
	for a, name := range alignNames {
		if name == s {
			return a, true
		}
	}
	return AlignNone, false
}

// Direction selects one side of a block.
type Direction int

const (
	Top Direction = iota
	Bottom
	Left
	Right
)

// margin control words, in render order
var marginWords = [...]string{
	Top:    `\sb`,
	Bottom: `\sa`,
	Left:   `\li`,
	Right:  `\ri`,
}

// Margins holds the four block offsets in points. A negative value means the
// side is unset and contributes nothing to the output.
type Margins struct {
	values [4]float64
}

// NewMargins returns margins with every side unset.
func NewMargins() Margins {
	return Margins{values: [4]float64{-1, -1, -1, -1}}
}

// Get returns the margin of side d in points; negative if unset.
func (m *Margins) Get(d Direction) float64 {
	return m.values[d]
}

// Set sets the margin of side d in points.
func (m *Margins) Set(d Direction, pt float64) {
	m.values[d] = pt
}

// Unset clears the margin of side d.
func (m *Margins) Unset(d Direction) {
	m.values[d] = -1
}

// IsSet reports whether side d has a margin.
func (m *Margins) IsSet(d Direction) bool {
	return m.values[d] >= 0
}

// PtToTwip converts points to twips, rounding half to even. NaN maps to 0.
func PtToTwip(pt float64) int {
	if math.IsNaN(pt) {
		return 0
	}
	return int(math.RoundToEven(pt * TwipsPerPoint))
}

// writeLayout emits the page break, margin and alignment control words shared
// by all block types.
func writeLayout(b *strings.Builder, startNewPage bool, m *Margins, a Align) {
	if startNewPage {
		b.WriteString(`\pagebb`)
	}
	for d, word := range marginWords {
		if m.IsSet(Direction(d)) {
			b.WriteString(word)
			b.WriteString(strconv.Itoa(PtToTwip(m.Get(Direction(d)))))
		}
	}
	b.WriteString(alignWords[a])
}

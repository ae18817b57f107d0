package rtf

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexLineWidth is the number of hex digits written per line of an embedded
// picture.
const HexLineWidth = 60

// EncodeHex writes data as lowercase hex digit pairs, breaking the text with
// '\n' after every HexLineWidth digits. There is no trailing line break, and
// empty input gives the empty string.
func EncodeHex(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	const perLine = HexLineWidth / 2
	var b strings.Builder
	b.Grow(2*len(data) + len(data)/perLine)

	line := make([]byte, HexLineWidth)
	for start := 0; start < len(data); start += perLine {
		end := min(start+perLine, len(data))
		if start > 0 {
			b.WriteByte('\n')
		}
		n := hex.Encode(line, data[start:end])
		b.Write(line[:n])
	}
	return b.String()
}

// DecodeHex reverses EncodeHex. Line breaks and other whitespace between
// digits are ignored.
func DecodeHex(s string) ([]byte, error) {
	digits := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	data, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("invalid picture data: %w", err)
	}
	return data, nil
}

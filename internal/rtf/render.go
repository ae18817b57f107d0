package rtf

import (
	"strconv"
	"strings"
)

// Render returns the picture's markup:
//
//	<head>[\pagebb][\sbN][\saN][\liN][\riN][\ql|\qr|\qc]
//	{\*\shppict{\pict<blip>[\pichgoalN][\picwgoalN]
//	<hex payload>
//	}}
//	[\par]<tail>
//
// Dimensions and margins are written in twips. Render does not modify the
// block, so repeated calls give identical output.
func (img *ImageBlock) Render() (string, error) {
	blip, err := PictureType(img.format)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(img.blockHead) + 2*len(img.payload) + len(img.payload)/30 + 128)

	b.WriteString(img.blockHead)
	writeLayout(&b, img.startNewPage, &img.margins, img.alignment)
	b.WriteByte('\n')

	b.WriteString(`{\*\shppict{\pict`)
	b.WriteString(blip)
	if img.height > 0 {
		b.WriteString(`\pichgoal`)
		b.WriteString(strconv.Itoa(PtToTwip(img.height)))
	}
	if img.width > 0 {
		b.WriteString(`\picwgoal`)
		b.WriteString(strconv.Itoa(PtToTwip(img.width)))
	}
	b.WriteByte('\n')

	b.WriteString(EncodeHex(img.payload))
	b.WriteByte('\n')
	b.WriteString("}}\n")

	if img.startNewParagraph {
		b.WriteString(`\par`)
	}
	b.WriteString(img.blockTail)
	b.WriteByte('\n')

	return b.String(), nil
}

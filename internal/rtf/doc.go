// Package rtf renders document blocks as Rich Text Format markup.
//
// The central type is ImageBlock, which embeds a JPEG, PNG or GIF picture as
// a \pict group with the payload written as hex text. Image blocks are built
// with FromFile, when the caller knows the format, or FromStream, which
// detects it. Layout (alignment, margins, target size, page and paragraph
// breaks) is adjusted through setters before Render is called.
//
// All lengths in this package are in points; they are converted to twips
// only when markup is written.
//
// A Document collects blocks and writes them out as a complete RTF file:
//
//	doc := rtf.NewDocument()
//	img, err := doc.AddImageFromFile("chart.png", rtf.FormatPNG)
//	if err != nil {
//	    return err
//	}
//	img.SetAlignment(rtf.AlignCenter)
//	img.SetWidth(288)
//	return doc.Save("report.rtf")
package rtf

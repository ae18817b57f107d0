package imaging

import (
	"bytes"
	"encoding/binary"
)

const (
	inchesPerMetre = 39.3700787
	cmPerInch      = 2.54
)

var (
	pngSignature = []byte("\x89PNG\r\n\x1a\n")
	jfifID       = []byte("JFIF\x00")
)

// readDensity extracts the resolution stored in the image header. Formats
// without resolution metadata, and headers that omit it, yield DefaultDPI.
func readDensity(format string, data []byte) (dpiX, dpiY float64) {
	switch format {
	case "png":
		dpiX, dpiY = pngDensity(data)
	case "jpeg":
		dpiX, dpiY = jfifDensity(data)
	case "bmp":
		dpiX, dpiY = bmpDensity(data)
	}
	if dpiX <= 0 || dpiY <= 0 {
		return DefaultDPI, DefaultDPI
	}
	return dpiX, dpiY
}

// pngDensity reads the pHYs chunk. Only the metre unit carries an absolute
// resolution; unit 0 is an aspect ratio and is ignored.
func pngDensity(data []byte) (float64, float64) {
	if !bytes.HasPrefix(data, pngSignature) {
		return 0, 0
	}
	pos := len(pngSignature)
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos:]))
		kind := string(data[pos+4 : pos+8])
		body := pos + 8
		if length < 0 || body+length > len(data) {
			return 0, 0
		}
		switch kind {
		case "pHYs":
			if length < 9 || data[body+8] != 1 {
				return 0, 0
			}
			x := float64(binary.BigEndian.Uint32(data[body:]))
			y := float64(binary.BigEndian.Uint32(data[body+4:]))
			return x / inchesPerMetre, y / inchesPerMetre
		case "IDAT", "IEND":
			// pHYs must precede the image data.
			return 0, 0
		}
		pos = body + length + 4 // skip CRC
	}
	return 0, 0
}

// jfifDensity reads the density fields of a JFIF APP0 segment.
func jfifDensity(data []byte) (float64, float64) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return 0, 0
	}
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return 0, 0
		}
		marker := data[pos+1]
		switch {
		case marker == 0xFF:
			// fill byte
			pos++
			continue
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7):
			pos += 2
			continue
		case marker == 0xDA || marker == 0xD9:
			return 0, 0
		}

		length := int(binary.BigEndian.Uint16(data[pos+2:]))
		if length < 2 || pos+2+length > len(data) {
			return 0, 0
		}
		seg := data[pos+4 : pos+2+length]
		if marker == 0xE0 && bytes.HasPrefix(seg, jfifID) && len(seg) >= 12 {
			units := seg[7]
			x := float64(binary.BigEndian.Uint16(seg[8:]))
			y := float64(binary.BigEndian.Uint16(seg[10:]))
			switch units {
			case 1:
				return x, y
			case 2:
				return x * cmPerInch, y * cmPerInch
			}
			return 0, 0
		}
		pos += 2 + length
	}
	return 0, 0
}

// bmpDensity reads biXPelsPerMeter and biYPelsPerMeter from the info header.
func bmpDensity(data []byte) (float64, float64) {
	if len(data) < 46 || data[0] != 'B' || data[1] != 'M' {
		return 0, 0
	}
	x := float64(int32(binary.LittleEndian.Uint32(data[38:])))
	y := float64(int32(binary.LittleEndian.Uint32(data[42:])))
	return x / inchesPerMetre, y / inchesPerMetre
}

// Package imaging decodes raster images and reports what a document writer
// needs to embed them: the pixel buffer, the sniffed format, the pixel
// dimensions, and the resolution the image was authored at.
//
// # Formats
//
// PNG, JPEG and GIF are the formats that can be embedded. BMP, TIFF and WebP
// decoders are registered as well, so that such inputs decode successfully and
// can be reported as unsupported rather than as corrupt data.
//
// # Resolution
//
// Resolution is read from the file header:
//   - PNG: the pHYs chunk, when its unit is the metre
//   - JPEG: the JFIF APP0 density, in dots per inch or per centimetre
//   - BMP: the pixels-per-metre fields of the info header
//
// Anything else, including GIF and headers without density information,
// is treated as DefaultDPI (96 dots per inch).
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Decode, Open and Encode are
// stateless and can be called concurrently.
package imaging

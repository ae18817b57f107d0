package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
)

// ImageCache keeps decoded images keyed by file path so that repeated tool
// calls on the same file skip disk I/O and header parsing.
//
// Paths are made absolute and cleaned before lookup, so "a.png" and
// "./a.png" share an entry. Cached values are shared between callers and must
// be treated as read-only. Entries stay until Evict or Clear; each one holds
// the pixel buffer and the encoded source bytes.
//
// ImageCache is safe for concurrent use.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*Decoded
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*Decoded),
	}
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Load returns the decoded image at path, reading and decoding the file on
// the first request only. Failed loads are not cached.
func (c *ImageCache) Load(path string) (*Decoded, error) {
	key := cacheKey(path)

	c.mu.RLock()
	dec, ok := c.images[key]
	c.mu.RUnlock()
	if ok {
		return dec, nil
	}

	dec, err := Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have decoded the same file meanwhile; keep the
	// first entry so every caller shares one value.
	if existing, ok := c.images[key]; ok {
		return existing, nil
	}
	c.images[key] = dec
	return dec, nil
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Decoded)
	c.mu.Unlock()
}

// Evict drops the image cached for path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, cacheKey(path))
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo describes an image file as reported by the image_info tool and
// the info command.
type ImageInfo struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Format string `json:"format" yaml:"format"`

	// DPIX and DPIY are the resolution in dots per inch, DefaultDPI when the
	// file records none.
	DPIX float64 `json:"dpi_x" yaml:"dpi_x"`
	DPIY float64 `json:"dpi_y" yaml:"dpi_y"`

	// WidthPt and HeightPt are the physical size in points at that resolution.
	WidthPt  float64 `json:"width_pt" yaml:"width_pt"`
	HeightPt float64 `json:"height_pt" yaml:"height_pt"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth    string `json:"color_depth" yaml:"color_depth"`
	HasAlpha      bool   `json:"has_alpha" yaml:"has_alpha"`
	FileSizeBytes int64  `json:"file_size_bytes" yaml:"file_size_bytes"`
}

// LoadImageInfo loads the image at path through cache and describes it.
//
// Color depth and alpha are inferred from the decoded pixel type: the 16-bit
// types report "16-bit", and the RGBA/NRGBA types report an alpha channel.
// Paletted GIFs report no alpha even when one palette entry is transparent.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	dec, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := &ImageInfo{
		Width:         dec.Width,
		Height:        dec.Height,
		Format:        dec.Format,
		DPIX:          dec.DPIX,
		DPIY:          dec.DPIY,
		ColorDepth:    "8-bit",
		FileSizeBytes: stat.Size(),
	}
	info.WidthPt, info.HeightPt = dec.SizeInPoints()

	switch dec.Image.(type) {
	case *image.RGBA, *image.NRGBA:
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	case *image.Gray16:
		info.ColorDepth = "16-bit"
	}
	return info, nil
}

// Package config manages application configuration.
package config

import (
	"fmt"

	"github.com/ironsheep/rtfimage/internal/rtf"
)

// Config represents the application configuration.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Image    ImageDefaults  `yaml:"image"`
	Document DocumentConfig `yaml:"document"`
}

// ImageDefaults is the layout applied to every image block the tools build.
type ImageDefaults struct {
	// Align is "none", "left", "right" or "center". Empty keeps the
	// constructor's default.
	Align             string       `yaml:"align,omitempty"`
	KeepAspectRatio   bool         `yaml:"keep_aspect_ratio"`
	StartNewPage      bool         `yaml:"start_new_page"`
	StartNewParagraph bool         `yaml:"start_new_paragraph"`
	Margins           MarginConfig `yaml:"margins,omitempty"`
}

// MarginConfig holds optional margins in points; nil sides stay unset.
type MarginConfig struct {
	Top    *float64 `yaml:"top,omitempty" json:"top,omitempty"`
	Bottom *float64 `yaml:"bottom,omitempty" json:"bottom,omitempty"`
	Left   *float64 `yaml:"left,omitempty" json:"left,omitempty"`
	Right  *float64 `yaml:"right,omitempty" json:"right,omitempty"`
}

// DocumentConfig contains document-wide options.
type DocumentConfig struct {
	Font string `yaml:"font"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Image: ImageDefaults{
			KeepAspectRatio:   true,
			StartNewParagraph: true,
		},
		Document: DocumentConfig{
			Font: rtf.DefaultFont,
		},
	}
}

// Validate checks values that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if _, ok := rtf.ParseAlign(c.Image.Align); !ok {
		return fmt.Errorf("invalid image.align %q", c.Image.Align)
	}
	switch c.LogLevel {
	case "", "debug", "info":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Apply sets the defaults on a freshly constructed image block.
func (d *ImageDefaults) Apply(img *rtf.ImageBlock) error {
	if d.Align != "" {
		a, ok := rtf.ParseAlign(d.Align)
		if !ok {
			return fmt.Errorf("invalid alignment %q", d.Align)
		}
		img.SetAlignment(a)
	}
	img.SetKeepAspectRatio(d.KeepAspectRatio)
	img.SetStartNewPage(d.StartNewPage)
	img.SetStartNewParagraph(d.StartNewParagraph)
	d.Margins.Apply(img.Margins())
	return nil
}

// Apply sets each configured side on m.
func (c *MarginConfig) Apply(m *rtf.Margins) {
	sides := []struct {
		dir rtf.Direction
		val *float64
	}{
		{rtf.Top, c.Top},
		{rtf.Bottom, c.Bottom},
		{rtf.Left, c.Left},
		{rtf.Right, c.Right},
	}
	for _, s := range sides {
		if s.val != nil {
			m.Set(s.dir, *s.val)
		}
	}
}

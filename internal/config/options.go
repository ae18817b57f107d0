package config

import (
	"fmt"

	"github.com/ironsheep/rtfimage/internal/rtf"
)

// BlockOptions are per-image layout settings. Nil and empty fields leave the
// block as ImageDefaults configured it.
type BlockOptions struct {
	Align             string       `json:"align,omitempty" yaml:"align,omitempty"`
	Width             *float64     `json:"width,omitempty" yaml:"width,omitempty"`
	Height            *float64     `json:"height,omitempty" yaml:"height,omitempty"`
	KeepAspectRatio   *bool        `json:"keep_aspect_ratio,omitempty" yaml:"keep_aspect_ratio,omitempty"`
	StartNewPage      *bool        `json:"start_new_page,omitempty" yaml:"start_new_page,omitempty"`
	StartNewParagraph *bool        `json:"start_new_paragraph,omitempty" yaml:"start_new_paragraph,omitempty"`
	Margins           MarginConfig `json:"margins,omitempty" yaml:"margins,omitempty"`
}

// Apply sets the options on img. When both Width and Height are given they
// are taken literally; a single dimension follows img's aspect ratio setting.
func (o *BlockOptions) Apply(img *rtf.ImageBlock) error {
	if o.Align != "" {
		align, ok := rtf.ParseAlign(o.Align)
		if !ok {
			return fmt.Errorf("invalid align %q", o.Align)
		}
		img.SetAlignment(align)
	}
	if o.KeepAspectRatio != nil {
		img.SetKeepAspectRatio(*o.KeepAspectRatio)
	}
	if o.StartNewPage != nil {
		img.SetStartNewPage(*o.StartNewPage)
	}
	if o.StartNewParagraph != nil {
		img.SetStartNewParagraph(*o.StartNewParagraph)
	}
	o.Margins.Apply(img.Margins())

	switch {
	case o.Width != nil && o.Height != nil:
		keep := img.KeepAspectRatio()
		img.SetKeepAspectRatio(false)
		img.SetWidth(*o.Width)
		img.SetHeight(*o.Height)
		img.SetKeepAspectRatio(keep)
	case o.Width != nil:
		img.SetWidth(*o.Width)
	case o.Height != nil:
		img.SetHeight(*o.Height)
	}
	return nil
}

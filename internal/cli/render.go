package cli

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ironsheep/rtfimage/internal/config"
	"github.com/ironsheep/rtfimage/internal/rtf"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	output    string
	format    string
	align     string
	width     float64
	height    float64
	pageBreak bool
	noPara    bool
	font      string
	title     string
	quiet     bool
}

func newRenderCmd(newLoader loaderFunc) *cobra.Command {
	var o renderOptions

	cmd := &cobra.Command{
		Use:   "render <image>...",
		Short: "Build an RTF document from images",
		Long: `Builds an RTF document with one picture block per image.

Without --format the file bytes are embedded unchanged and the format is
detected from the content. With --format the image is decoded, re-encoded
and sized from the resolution recorded in the file. Use --format ext to take
the format from each file's extension.

Examples:
  rtfimage render chart.png -o report.rtf
  rtfimage render a.jpg b.png --align center --width 300 -o out.rtf
  rtfimage render scan.png --format png --page-break`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newLoader.load()
			if err != nil {
				return err
			}
			return runRender(cmd, cfg, &o, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	f.StringVar(&o.format, "format", "", "declared format: png, jpeg, gif or ext")
	f.StringVar(&o.align, "align", "", "alignment: none, left, right or center")
	f.Float64Var(&o.width, "width", 0, "width in points")
	f.Float64Var(&o.height, "height", 0, "height in points")
	f.BoolVar(&o.pageBreak, "page-break", false, "start each image on a new page")
	f.BoolVar(&o.noPara, "no-para", false, "omit the paragraph break after each image")
	f.StringVar(&o.font, "font", "", "document font")
	f.StringVar(&o.title, "title", "", "centred bold title paragraph")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "no progress output")

	return cmd
}

// blockOptions converts the flags the user actually set.
func (o *renderOptions) blockOptions(cmd *cobra.Command) config.BlockOptions {
	var opts config.BlockOptions
	flags := cmd.Flags()

	opts.Align = o.align
	if flags.Changed("width") {
		w := o.width
		opts.Width = &w
	}
	if flags.Changed("height") {
		h := o.height
		opts.Height = &h
	}
	if flags.Changed("page-break") {
		v := o.pageBreak
		opts.StartNewPage = &v
	}
	if flags.Changed("no-para") {
		v := !o.noPara
		opts.StartNewParagraph = &v
	}
	return opts
}

func (o *renderOptions) imageFormat(path string) (rtf.ImageFormat, error) {
	switch o.format {
	case "":
		return 0, nil
	case "ext":
		return rtf.ParseImageFormat(filepath.Ext(path))
	default:
		return rtf.ParseImageFormat(o.format)
	}
}

func runRender(cmd *cobra.Command, cfg *config.Config, o *renderOptions, paths []string) error {
	opts := o.blockOptions(cmd)

	doc := rtf.NewDocument()
	doc.SetFont(cfg.Document.Font)
	doc.SetFont(o.font)

	if o.title != "" {
		title := doc.AddParagraph(o.title)
		title.SetAlignment(rtf.AlignCenter)
		title.DefaultCharFormat().Bold = true
	}

	for _, path := range paths {
		format, err := o.imageFormat(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		img, err := rtf.Open(path, format)
		if err != nil {
			return err
		}
		if err := cfg.Image.Apply(img); err != nil {
			return err
		}
		if err := opts.Apply(img); err != nil {
			return err
		}
		doc.AddBlock(img)

		if cfg.Debug() {
			log.Printf("%s: %s %.1fx%.1fpt, %d bytes", path, img.Format(), img.Width(), img.Height(), len(img.Payload()))
		}
	}

	if o.output == "" || o.output == "-" {
		_, err := doc.WriteTo(cmd.OutOrStdout())
		return err
	}

	if err := doc.Save(o.output); err != nil {
		return err
	}
	if !o.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d images)\n", o.output, len(paths))
	}
	return nil
}

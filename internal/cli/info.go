package cli

import (
	"fmt"

	"github.com/ironsheep/rtfimage/internal/imaging"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <image>...",
		Short: "Show image format, resolution and size",
		Long: `Decodes each image and prints its metadata as YAML, one document per
image. Sizes in points are computed from the recorded resolution, or 96 DPI
when the file has none.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	cache := imaging.NewImageCache()

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()

	for _, path := range args {
		info, err := imaging.LoadImageInfo(cache, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cache.Evict(path)

		doc := struct {
			Path              string `yaml:"path"`
			imaging.ImageInfo `yaml:",inline"`
		}{path, *info}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to write info: %w", err)
		}
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikidav23/rizy-land-mini-a/internal/imaging"
)

func newConvertCmd() *cobra.Command {
	var presetName, converterName, binary string
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert one image the way uploads are converted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := imaging.PresetByName(presetName)
			if err != nil {
				return err
			}
			conv, err := imaging.New(converterName, binary)
			if err != nil {
				return err
			}
			if err := conv.Convert(cmd.Context(), args[0], args[1], preset); err != nil {
				return fmt.Errorf("convert %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s %dx%d, %s)\n",
				args[0], args[1], preset.Name, preset.Width, preset.Height, conv.ContentType())
			return nil
		},
	}
	cmd.Flags().StringVar(&presetName, "preset", imaging.CoverPreset.Name, "cover or product")
	cmd.Flags().StringVar(&converterName, "converter", "magick", "magick or native")
	cmd.Flags().StringVar(&binary, "magick-binary", imaging.DefaultMagickBinary, "ImageMagick executable")
	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sightline/pkg/pipeline"
)

// renderCommand creates the render command for drawing the section profile.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)
	opts := pipeline.Options{}
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [profile.toml]",
		Short: "Draw the section profile as SVG, PNG, or PDF",
		Long: `Draw the section profile as SVG, PNG, or PDF.

The render command synthesizes the section and draws its cross-section: one
polyline per tier, an eye marker per spectator, sightline rays to the point
of focus, and the focus itself. Obstructed rows are flagged in the warning
color.

PNG and PDF output require librsvg (rsvg-convert) on PATH.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ProfilePath = args[0]
			opts.Formats = parseFormats(formatsStr, pipeline.FormatSVG)
			opts.Refresh = refresh
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runPipeline(cmd.Context(), opts, output, noCache, "Rendering section...")
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: simple (default), blueprint")
	cmd.Flags().BoolVar(&opts.Standing, "standing", false, "draw standing positions and sightlines")
	cmd.Flags().BoolVar(&opts.HideSightlines, "no-sightlines", false, "suppress sightline rays")
	cmd.Flags().Float64Var(&opts.PxPerMeter, "px-per-meter", opts.PxPerMeter, "drawing scale in pixels per meter")
	cmd.Flags().Float64Var(&opts.RasterScale, "png-scale", opts.RasterScale, "rasterization scale factor for PNG output")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached artifacts")

	return cmd
}

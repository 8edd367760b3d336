package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sightline/pkg/pipeline"
)

// synthCommand creates the synth command for exporting section geometry.
func (c *CLI) synthCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
		standing   bool
	)

	cmd := &cobra.Command{
		Use:   "synth [profile.toml]",
		Short: "Synthesize section geometry from a profile",
		Long: `Synthesize section geometry from a profile.

The synth command loads a TOML profile, solves the riser height of every row
so each spectator clears the head in front by the tier's C-value, and exports
the resulting geometry as JSON (boundary points, spectators, sightlines) or
CSV (per-row setting-out schedule).

Results are cached locally for faster subsequent runs.

Use 'render' to draw the section instead of exporting raw geometry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				ProfilePath: args[0],
				Formats:     parseFormats(formatsStr, pipeline.FormatJSON),
				Standing:    standing,
				Refresh:     refresh,
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runPipeline(cmd.Context(), opts, output, noCache, "Synthesizing section...")
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), csv (comma-separated)")
	cmd.Flags().BoolVar(&standing, "standing", false, "export standing positions and sightlines")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached artifacts")

	return cmd
}

// runPipeline executes the full pipeline and writes the artifacts.
// Shared by synth and render, which differ only in formats and options.
func (c *CLI) runPipeline(ctx context.Context, opts pipeline.Options, output string, noCache bool, message string) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, message)
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Synthesis failed")
		return err
	}
	spinner.Stop()

	for _, adj := range result.Section.Adjustments() {
		printWarning("tier %d: anchor %s → %s (%s)", adj.Tier, adj.From, adj.To, adj.Reason)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.ProfilePath,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
		stats:     result.Stats,
	})
}

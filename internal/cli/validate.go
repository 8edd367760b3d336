package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sightline/pkg/bowl"
	"github.com/matzehuels/sightline/pkg/profile"
)

// validateCommand creates the validate command for checking profiles.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [profile.toml]",
		Short: "Check a profile and report sightline quality",
		Long: `Check a profile and report sightline quality.

The validate command loads the profile, synthesizes the full section, and
reports per-tier geometry: row counts, riser height range, and the achieved
C-value range. Rows whose achieved C-value falls below the target (possible
with nearest rounding) are listed as obstructed.

With --strict, obstructed rows cause a non-zero exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return runValidate(ctx, args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any row is obstructed")
	return cmd
}

func runValidate(ctx context.Context, path string, strict bool) error {
	prog := newProgress(loggerFromContext(ctx))

	prof, err := profile.Load(path)
	if err != nil {
		printError("Profile %s is invalid", path)
		return err
	}

	sec, err := prof.Section()
	if err != nil {
		printError("Profile %s does not synthesize", path)
		return err
	}
	prog.done(fmt.Sprintf("Synthesized %d rows", sec.RowCount()))

	printSuccess("Profile %s is valid", path)
	printDetail("Units: %s, focus (%.2f, %.2f)", prof.Units, sec.Focus().H, sec.Focus().V)

	for _, adj := range sec.Adjustments() {
		printWarning("tier %d: anchor %s → %s (%s)", adj.Tier, adj.From, adj.To, adj.Reason)
	}

	obstructed := 0
	for _, t := range sec.Tiers() {
		summary := tierSummary(t)
		printInfo("tier %d: %d rows · riser %s · C %s", t.Index(), t.RowCount, summary.risers, summary.cvalues)
		for _, sp := range t.Spectators() {
			if !sp.Unobstructed {
				obstructed++
				printWarning("  row %d obstructed: C %.3f m below target %.3f m", sp.Row, sp.CValue, t.CValue)
			}
		}
	}

	if obstructed > 0 {
		printWarning("%d obstructed row(s)", obstructed)
		if strict {
			return fmt.Errorf("%d obstructed row(s)", obstructed)
		}
		return nil
	}
	printSuccess("All %d rows unobstructed", sec.RowCount())
	return nil
}

type summary struct {
	risers  string
	cvalues string
}

// tierSummary formats riser and achieved C-value ranges for one tier.
func tierSummary(t *bowl.Tier) summary {
	s := summary{risers: "—", cvalues: "—"}

	if heights := t.RiserHeights(); len(heights) > 0 {
		lo, hi := heights[0], heights[0]
		for _, h := range heights[1:] {
			lo, hi = math.Min(lo, h), math.Max(hi, h)
		}
		s.risers = fmt.Sprintf("%.3f–%.3f m", lo, hi)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, sp := range t.Spectators() {
		if math.IsNaN(sp.CValue) {
			continue
		}
		lo, hi = math.Min(lo, sp.CValue), math.Max(hi, sp.CValue)
	}
	if !math.IsInf(lo, 1) {
		s.cvalues = fmt.Sprintf("%.3f–%.3f m", lo, hi)
	}
	return s
}

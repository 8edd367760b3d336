package bowl

import (
	"math"

	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/geom"
)

// synthesize runs row synthesis for one tier: it resolves the reference
// point, emits the boundary-point sequence, and instantiates one spectator
// per row. Computed geometry is built in fresh slices and installed on the
// tier only when the whole pass succeeds, so a failed synthesis never
// leaves partial geometry observable.
//
// prev is the previously synthesized tier, or nil for the first tier.
func synthesize(t *Tier, prev *Tier, focus geom.Point, index int) error {
	if err := validate(t, index); err != nil {
		return err
	}

	ref := focus
	if t.Anchor == AnchorPrevTier {
		if prev == nil || len(prev.points) == 0 {
			return errors.New(errors.ErrCodeSequencing,
				"anchor %q requires a synthesized previous tier", AnchorPrevTier).AtTier(index)
		}
		ref = prev.LastPoint()
	}

	points := make([]geom.Point, 0, t.PointCount())
	spectators := make([]Spectator, t.RowCount)

	// Identity is needed by newSpectator; restored on failure so an aborted
	// synthesis leaves the tier exactly as it was.
	oldIndex, oldFocus := t.index, t.focus
	t.index = index
	t.focus = focus

	// Fascia point, below the first tier point. Not part of any row.
	if t.FasciaHeight != 0 {
		points = append(points, geom.Pt(ref.H+t.StartH, ref.V+t.StartV-t.FasciaHeight))
	}

	// First tier point seeds the row iteration.
	prevPt := geom.Pt(ref.H+t.StartH, ref.V+t.StartV)
	points = append(points, prevPt)

	for row := 0; row < t.RowCount-1; row++ {
		// Rear riser bottom: treads are horizontal.
		nose := geom.Pt(prevPt.H+t.treadWidth(row), prevPt.V)
		points = append(points, nose)

		spectators[row] = newSpectator(t, row, nose)

		n, err := riserHeight(t.CValue, nose, focus, t.solveEyes(row), t.RowWidths[row+1])
		if err != nil {
			t.index, t.focus = oldIndex, oldFocus
			return err.AtTier(index).AtRow(row)
		}
		n = roundRiser(n, t.RoundTo, t.Rounding)

		// Rear riser top.
		prevPt = geom.Pt(nose.H, nose.V+n)
		points = append(points, prevPt)
	}

	// Terminal point: the last row has no riser above it.
	last := t.RowCount - 1
	end := geom.Pt(prevPt.H+t.treadWidth(last), prevPt.V)
	points = append(points, end)
	spectators[last] = newSpectator(t, last, end)

	gradeClearances(t, spectators, focus)

	t.ref = ref
	t.points = points
	t.spectators = spectators
	return nil
}

// riserHeight solves the minimum riser height gain behind a row so that the
// spectator one row back clears the forward spectator's sightline by cval.
//
// With the focus as origin, the forward eye sits at (den, h) and the rear
// eye at horizontal distance d = den + t. Similar triangles through the
// focus require the rear eye to pass through (den, h+cval), giving the rear
// eye height r = ((cval+h)/den)·d. The height gain is what remains after
// subtracting the eye offset and the current floor level.
//
// The solve is repeated per row rather than closed-form because eye offsets
// and tread depths may vary locally (super risers, irregular row widths).
func riserHeight(cval float64, nose, focus geom.Point, eye eyes, nextTread float64) (float64, *errors.Error) {
	h := nose.V - focus.V + eye.v
	d := (nose.H - focus.H - eye.h) + nextTread
	den := d - nextTread
	if geom.NearZero(den) {
		return 0, errors.New(errors.ErrCodeDegenerateGeometry,
			"eye horizontally coincident with point of focus (denominator %.3g)", den)
	}
	r := ((cval + h) / den) * d
	return r - eye.v - (nose.V - focus.V), nil
}

// roundRiser rounds a solved riser height to the configured increment.
func roundRiser(n, roundTo float64, mode Rounding) float64 {
	if roundTo <= 0 {
		return n
	}
	switch mode {
	case RoundNearest:
		return math.Round(n/roundTo) * roundTo
	default:
		return math.Ceil(n/roundTo) * roundTo
	}
}

// gradeClearances computes each spectator's achieved C-value against the
// spectator in front and flags obstructed sightlines. The front row has
// nobody to clear; it carries the tier target and counts as unobstructed.
func gradeClearances(t *Tier, spectators []Spectator, focus geom.Point) {
	if len(spectators) == 0 {
		return
	}
	spectators[0].CValue = t.CValue
	spectators[0].Unobstructed = true

	for row := 1; row < len(spectators); row++ {
		front := solveEye(t, &spectators[row-1])
		rear := solveEye(t, &spectators[row])

		rearH := rear.H - focus.H
		if geom.NearZero(rearH) {
			spectators[row].CValue = math.NaN()
			spectators[row].Unobstructed = false
			continue
		}
		c := (rear.V-focus.V)*(front.H-focus.H)/rearH - (front.V - focus.V)
		spectators[row].CValue = c
		spectators[row].Unobstructed = c >= t.CValue-geom.Epsilon
	}
}

// solveEye returns the eye position the riser solve was performed for.
func solveEye(t *Tier, s *Spectator) geom.Point {
	if t.SolveStanding {
		return s.StandingEye
	}
	return s.SeatedEye
}

// validate checks a tier's configuration before any geometry is emitted.
func validate(t *Tier, index int) error {
	if t.RowCount <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"row count must be positive, got %d", t.RowCount).AtTier(index)
	}
	if len(t.RowWidths) < t.RowCount {
		return errors.New(errors.ErrCodeInvalidConfig,
			"row widths has %d entries for %d rows", len(t.RowWidths), t.RowCount).AtTier(index)
	}
	if t.RoundTo < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"rounding increment must be non-negative, got %g", t.RoundTo).AtTier(index)
	}
	switch t.Rounding {
	case "", RoundUp, RoundNearest:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown rounding mode %q", t.Rounding).AtTier(index)
	}
	if sr := t.SuperRiser; sr != nil && (sr.Row < 0 || sr.Row >= t.RowCount) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"super riser row %d outside rows [0, %d)", sr.Row, t.RowCount).AtTier(index)
	}
	if v := t.Vomitory; v != nil {
		if v.StartRow < 0 || v.Height < 0 || v.StartRow+v.Height > t.RowCount {
			return errors.New(errors.ErrCodeInvalidConfig,
				"vomitory rows [%d, %d) outside rows [0, %d)",
				v.StartRow, v.StartRow+v.Height, t.RowCount).AtTier(index)
		}
	}
	return nil
}

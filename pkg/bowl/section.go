package bowl

import (
	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/geom"
)

// Adjustment records a non-fatal configuration correction applied during
// section construction, so an override is never a silent data loss.
type Adjustment struct {
	Tier   int    `json:"tier"`
	From   Anchor `json:"from"`
	To     Anchor `json:"to"`
	Reason string `json:"reason"`
}

// Section is an ordered stack of tiers sharing one point of focus. The tier
// order is fixed at construction, indices are contiguous from zero, and
// synthesis has already run for every tier by the time NewSection returns.
//
// A Section exclusively owns its tiers; cross-tier references (a tier
// anchored to the end of the previous one) are resolved to value copies
// during synthesis, never kept as live links.
type Section struct {
	focus       geom.Point
	tiers       []*Tier
	adjustments []Adjustment
}

// NewSection builds a section from tiers ordered from the pitch outward and
// synthesizes each in ascending index order. Later tiers may anchor to
// earlier tiers' output, so the order is mandatory and not parallelizable.
//
// The first tier is forced to AnchorFocus; the override is recorded in
// Adjustments rather than failing. An empty tier list, a non-positive row
// count, or a row-width sequence shorter than the row count fail with
// an INVALID_CONFIGURATION error before any geometry is emitted.
func NewSection(focus geom.Point, tiers ...*Tier) (*Section, error) {
	if len(tiers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "section requires at least one tier")
	}

	s := &Section{focus: focus, tiers: tiers}

	if tiers[0].Anchor == AnchorPrevTier {
		s.adjustments = append(s.adjustments, Adjustment{
			Tier:   0,
			From:   AnchorPrevTier,
			To:     AnchorFocus,
			Reason: "first tier always anchors to the point of focus",
		})
		tiers[0].Anchor = AnchorFocus
	}

	if err := s.Resynthesize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Resynthesize re-runs row synthesis for every tier in index order. It is
// the explicit escape hatch for callers that mutate tier configuration
// after construction; geometry is deterministic, so resynthesizing an
// unchanged section reproduces identical output.
func (s *Section) Resynthesize() error {
	var prev *Tier
	for i, t := range s.tiers {
		if err := synthesize(t, prev, s.focus, i); err != nil {
			return err
		}
		prev = t
	}
	return nil
}

// Focus returns the section's point of focus.
func (s *Section) Focus() geom.Point { return s.focus }

// Tiers returns the section's tiers in index order.
// The returned slice is shared; callers must not modify it.
func (s *Section) Tiers() []*Tier { return s.tiers }

// Tier returns the tier at the given index, or nil when out of range.
func (s *Section) Tier(i int) *Tier {
	if i < 0 || i >= len(s.tiers) {
		return nil
	}
	return s.tiers[i]
}

// Adjustments returns the non-fatal configuration corrections applied at
// construction, in tier order.
func (s *Section) Adjustments() []Adjustment { return s.adjustments }

// RowCount returns the total number of rows across all tiers.
func (s *Section) RowCount() int {
	var n int
	for _, t := range s.tiers {
		n += t.RowCount
	}
	return n
}

// BoundaryPoints returns each tier's boundary-point sequence in tier order.
// The result is jagged: tiers may have differing point counts.
func (s *Section) BoundaryPoints() [][]geom.Point {
	out := make([][]geom.Point, len(s.tiers))
	for i, t := range s.tiers {
		out[i] = t.BoundaryPoints()
	}
	return out
}

// SpectatorPositions returns, per tier, the ordered seated or standing eye
// positions of every spectator.
func (s *Section) SpectatorPositions(standing bool) [][]geom.Point {
	out := make([][]geom.Point, len(s.tiers))
	for i, t := range s.tiers {
		eyes := make([]geom.Point, len(t.spectators))
		for j, sp := range t.spectators {
			if standing {
				eyes[j] = sp.StandingEye
			} else {
				eyes[j] = sp.SeatedEye
			}
		}
		out[i] = eyes
	}
	return out
}

// Sightlines returns, per tier, the ordered seated or standing sightline
// vectors of every spectator.
func (s *Section) Sightlines(standing bool) [][]geom.Vector {
	out := make([][]geom.Vector, len(s.tiers))
	for i, t := range s.tiers {
		lines := make([]geom.Vector, len(t.spectators))
		for j, sp := range t.spectators {
			if standing {
				lines[j] = sp.StandingSightLine
			} else {
				lines[j] = sp.SightLine
			}
		}
		out[i] = lines
	}
	return out
}

// Spectators returns every spectator across all tiers, in tier and row order.
func (s *Section) Spectators() []Spectator {
	out := make([]Spectator, 0, s.RowCount())
	for _, t := range s.tiers {
		out = append(out, t.spectators...)
	}
	return out
}

package bowl

import (
	"github.com/matzehuels/sightline/pkg/geom"
)

// Spectator holds the derived viewing geometry for one row. Spectators are
// created exactly once per row during synthesis and are immutable
// afterwards; recomputing one requires resynthesizing the owning tier.
type Spectator struct {
	// Tier and Row identify the spectator within its section.
	Tier int `json:"tier"`
	Row  int `json:"row"`

	// SeatedEye and StandingEye are the eye positions, offset from the
	// row's riser nose by the effective eye offsets.
	SeatedEye   geom.Point `json:"seated_eye"`
	StandingEye geom.Point `json:"standing_eye"`

	// Focus is the point of focus the sightlines target.
	Focus geom.Point `json:"focus"`

	// SightLine and StandingSightLine point from the eye to the focus.
	SightLine         geom.Vector `json:"sightline"`
	StandingSightLine geom.Vector `json:"standing_sightline"`

	// CValue is the achieved sightline clearance over the spectator in
	// front. The front row has nobody to clear and carries the tier's
	// target value.
	CValue float64 `json:"c_value"`

	// Unobstructed reports whether the achieved clearance meets the tier's
	// target. With upward rounding this always holds; nearest rounding may
	// leave a row marginally short.
	Unobstructed bool `json:"unobstructed"`

	// SuperRiser marks a row seated on an inserted elevated step.
	SuperRiser bool `json:"super_riser,omitempty"`

	// Vomitory marks a row interrupted by a vomitory opening.
	Vomitory bool `json:"vomitory,omitempty"`
}

// newSpectator derives a spectator from the rear-bottom point of its row.
// The eye sits above and behind the riser nose, so it is independent of the
// riser top height solved afterwards.
func newSpectator(t *Tier, row int, nose geom.Point) Spectator {
	seated, standing := t.rowEyes(row)
	seatedEye := nose.Offset(-seated.h, seated.v)
	standingEye := nose.Offset(-standing.h, standing.v)

	s := Spectator{
		Tier:              t.index,
		Row:               row,
		SeatedEye:         seatedEye,
		StandingEye:       standingEye,
		Focus:             t.focus,
		SightLine:         geom.Between(seatedEye, t.focus),
		StandingSightLine: geom.Between(standingEye, t.focus),
	}
	if sr := t.SuperRiser; sr != nil && sr.Row == row {
		s.SuperRiser = true
	}
	if v := t.Vomitory; v != nil && v.Spans(row) {
		s.Vomitory = true
	}
	return s
}

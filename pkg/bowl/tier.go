package bowl

import (
	"github.com/matzehuels/sightline/pkg/geom"
)

// Anchor selects the reference point a tier's start offset is measured from.
type Anchor string

const (
	// AnchorFocus anchors the tier's start offset to the section's point of
	// focus. The first tier of a section always uses this anchor.
	AnchorFocus Anchor = "focus"

	// AnchorPrevTier anchors the tier's start offset to the last boundary
	// point of the previous tier.
	AnchorPrevTier Anchor = "prev-tier"
)

// Rounding selects how solved riser heights are rounded to buildable
// increments.
type Rounding string

const (
	// RoundUp rounds riser heights up to the next increment. This is the
	// default: it can only add clearance, so the C-value guarantee holds.
	RoundUp Rounding = "up"

	// RoundNearest rounds riser heights to the nearest increment. Rounding
	// down may leave a row marginally below its target C-value; choosing
	// this mode is an explicit caller-accepted risk, surfaced per spectator
	// through the Unobstructed flag.
	RoundNearest Rounding = "nearest"
)

// Default tier configuration, in meters (scaled by Tier.Scale).
const (
	DefaultRowCount     = 20
	DefaultRowWidth     = 0.8
	DefaultStartH       = 5.0
	DefaultStartV       = 1.0
	DefaultCValue       = 0.09
	DefaultEyeH         = 0.8
	DefaultEyeV         = 1.2
	DefaultStandingEyeH = 0.6
	DefaultStandingEyeV = 1.65
)

// SuperRiser configures an elevated step inserted at one row for special
// seating (e.g. wheelchair platforms). The row keeps its position in the
// iteration but uses its own local geometry: the curb width deepens the
// tread in front of it, and the eye offsets replace the tier's when placing
// the row's spectator and solving the riser behind it.
type SuperRiser struct {
	Row          int     `json:"row" toml:"row"`
	CurbWidth    float64 `json:"curb_width" toml:"curb_width"`
	EyeH         float64 `json:"eye_h" toml:"eye_h"`
	EyeV         float64 `json:"eye_v" toml:"eye_v"`
	StandingEyeH float64 `json:"standing_eye_h" toml:"standing_eye_h"`
	StandingEyeV float64 `json:"standing_eye_v" toml:"standing_eye_v"`
}

// Vomitory marks a structural opening interrupting rows within a tier.
// Synthesis records which rows it spans but applies no height rules; the
// rows keep their solved geometry.
type Vomitory struct {
	StartRow int `json:"start_row" toml:"start_row"`
	Height   int `json:"height" toml:"height"` // height of the opening, in rows
}

// Spans reports whether the vomitory interrupts the given row.
func (v Vomitory) Spans(row int) bool {
	return row >= v.StartRow && row < v.StartRow+v.Height
}

// eyes is a pair of eye offsets measured from a riser nose: EyeH behind it,
// EyeV above it.
type eyes struct {
	h, v float64
}

// Tier holds the configuration of one seating deck and, after synthesis,
// its computed geometry. Configuration fields are exported so profiles and
// builders can populate them; computed geometry is only reachable through
// accessors and is installed atomically when synthesis succeeds.
//
// A Tier is write-once: after the owning section has synthesized it, any
// mutation leaves stale derived data until the section is rebuilt.
type Tier struct {
	// Anchor selects the tier's reference point. Defaults to AnchorFocus;
	// the first tier of a section is forced to AnchorFocus regardless.
	Anchor Anchor

	// Scale converts this tier's dimensions to meters (1.0 for metric
	// profiles). Purely informational for consumers such as renderers;
	// synthesis treats all dimensions as being in one consistent unit.
	Scale float64

	// StartH and StartV offset the first tier point from the reference point.
	StartH float64
	StartV float64

	// CValue is the target sightline clearance between consecutive rows.
	CValue float64

	// Seated eye offsets from the riser nose: EyeH behind, EyeV above.
	EyeH float64
	EyeV float64

	// Standing eye offsets from the riser nose.
	StandingEyeH float64
	StandingEyeV float64

	// SolveStanding selects the standing eye offsets for the riser solve.
	// The default solves for the seated case.
	SolveStanding bool

	// RowCount is the number of seating rows. Must be positive.
	RowCount int

	// RowWidths holds one tread depth per row. Its length must be at least
	// RowCount at synthesis time; NewTier fills it with DefaultRowWidth.
	RowWidths []float64

	// FasciaHeight, when nonzero, emits a fascia point below the first tier
	// point. The fascia point takes no part in spectator computation.
	FasciaHeight float64

	// RoundTo is the riser height rounding increment. Zero disables rounding.
	RoundTo float64

	// Rounding selects the rounding direction; empty means RoundUp.
	Rounding Rounding

	// SuperRiser, when set, inserts an elevated step at one row.
	SuperRiser *SuperRiser

	// Vomitory, when set, records an opening interrupting rows.
	Vomitory *Vomitory

	// Computed state, installed by synthesis.
	index      int
	focus      geom.Point
	ref        geom.Point
	points     []geom.Point
	spectators []Spectator
}

// NewTier returns a tier with default configuration and a uniform row-width
// sequence of the given length. Building the widths here, rather than
// lazily during synthesis, keeps configuration validation centralized: a
// RowWidths slice shorter than RowCount is always a caller error.
func NewTier(rows int) *Tier {
	widths := make([]float64, max(rows, 0))
	for i := range widths {
		widths[i] = DefaultRowWidth
	}
	return &Tier{
		Anchor:       AnchorFocus,
		Scale:        1.0,
		StartH:       DefaultStartH,
		StartV:       DefaultStartV,
		CValue:       DefaultCValue,
		EyeH:         DefaultEyeH,
		EyeV:         DefaultEyeV,
		StandingEyeH: DefaultStandingEyeH,
		StandingEyeV: DefaultStandingEyeV,
		RowCount:     rows,
		RowWidths:    widths,
		Rounding:     RoundUp,
		index:        -1,
	}
}

// Index returns the tier's position within its section, or -1 before the
// tier has been adopted by one.
func (t *Tier) Index() int { return t.index }

// Focus returns the point of focus the tier was synthesized against.
func (t *Tier) Focus() geom.Point { return t.focus }

// ReferencePoint returns the resolved reference point: the section's focus
// for AnchorFocus, the previous tier's last boundary point for
// AnchorPrevTier.
func (t *Tier) ReferencePoint() geom.Point { return t.ref }

// BoundaryPoints returns the tier's riser profile in emission order:
// optional fascia point, first tier point, then rear-bottom and rear-top
// points per row, ending with the terminal point. The returned slice is
// shared; callers must not modify it.
func (t *Tier) BoundaryPoints() []geom.Point { return t.points }

// Spectators returns one spectator per row, addressed by row index.
// The returned slice is shared; callers must not modify it.
func (t *Tier) Spectators() []Spectator { return t.spectators }

// LastPoint returns the tier's final boundary point. The zero point is
// returned before synthesis.
func (t *Tier) LastPoint() geom.Point {
	if len(t.points) == 0 {
		return geom.Point{}
	}
	return t.points[len(t.points)-1]
}

// PointCount returns the exact boundary-point count for the configuration:
// two points per row (rear-bottom and rear-top) except the last row, which
// only gets the terminal point, plus the first tier point, plus an optional
// fascia point. Synthesis preallocates with this to avoid reallocation.
func (t *Tier) PointCount() int {
	if t.RowCount <= 0 {
		return 0
	}
	n := 2 * t.RowCount // A + (B,C) per row except last + D
	if t.FasciaHeight != 0 {
		n++
	}
	return n
}

// RiserHeights returns the solved riser height behind each row except the
// last, which has no riser above it. Empty before synthesis.
func (t *Tier) RiserHeights() []float64 {
	if len(t.points) == 0 {
		return nil
	}
	heights := make([]float64, 0, t.RowCount-1)
	// Skip the fascia point so points[i] starts at the first tier point.
	pts := t.points
	if t.FasciaHeight != 0 {
		pts = pts[1:]
	}
	for row := 0; row < t.RowCount-1; row++ {
		b := pts[1+2*row]
		c := pts[2+2*row]
		heights = append(heights, c.V-b.V)
	}
	return heights
}

// NosePoints returns the riser-nose reference point of each row: the
// rear-bottom point for all rows but the last, which sits at the terminal
// point. Empty before synthesis.
func (t *Tier) NosePoints() []geom.Point {
	if len(t.points) == 0 {
		return nil
	}
	pts := t.points
	if t.FasciaHeight != 0 {
		pts = pts[1:]
	}
	noses := make([]geom.Point, t.RowCount)
	for row := 0; row < t.RowCount-1; row++ {
		noses[row] = pts[1+2*row]
	}
	noses[t.RowCount-1] = pts[len(pts)-1]
	return noses
}

// solveEyes returns the eye offsets the riser solve should use for a row,
// honoring SolveStanding and any super riser at that row.
func (t *Tier) solveEyes(row int) eyes {
	seated, standing := t.rowEyes(row)
	if t.SolveStanding {
		return standing
	}
	return seated
}

// rowEyes returns the seated and standing eye offsets effective at a row.
func (t *Tier) rowEyes(row int) (seated, standing eyes) {
	if sr := t.SuperRiser; sr != nil && sr.Row == row {
		return eyes{sr.EyeH, sr.EyeV}, eyes{sr.StandingEyeH, sr.StandingEyeV}
	}
	return eyes{t.EyeH, t.EyeV}, eyes{t.StandingEyeH, t.StandingEyeV}
}

// treadWidth returns the effective tread depth of a row, including the
// super riser curb when the row carries one.
func (t *Tier) treadWidth(row int) float64 {
	w := t.RowWidths[row]
	if sr := t.SuperRiser; sr != nil && sr.Row == row {
		w += sr.CurbWidth
	}
	return w
}

// Package profile loads seating-bowl section definitions from TOML files.
//
// A profile declares the point of focus, the measurement units, and an
// ordered list of tiers. Loading a profile produces bowl configuration with
// all dimensions converted to meters, ready for section synthesis:
//
//	p, err := profile.Load("section.toml")
//	if err != nil {
//	    return err
//	}
//	sec, err := p.Section()
package profile

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sightline/pkg/bowl"
	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/geom"
)

// Profile is the decoded form of a section definition file.
type Profile struct {
	// Units names the measurement unit for every dimension in the file:
	// m (default), mm, cm, in, or ft. Geometry is synthesized in meters.
	Units string `toml:"units"`

	// Focus is the point all sightlines aim at, in profile units.
	Focus geom.Point `toml:"focus"`

	// Tiers are ordered from the pitch outward.
	Tiers []TierConfig `toml:"tier"`
}

// TierConfig is one [[tier]] block. Dimension fields left at zero fall back
// to the bowl defaults, except the start offsets and fascia height, which
// are taken literally (zero is a meaningful offset).
type TierConfig struct {
	Anchor        string           `toml:"anchor"` // "focus" (default) or "prev-tier"
	StartH        float64          `toml:"start_h"`
	StartV        float64          `toml:"start_v"`
	CValue        float64          `toml:"c_value"`
	Rows          int              `toml:"rows"`
	RowWidth      float64          `toml:"row_width"`  // uniform tread depth
	RowWidths     []float64        `toml:"row_widths"` // per-row override, wins over row_width
	EyeH          float64          `toml:"eye_h"`
	EyeV          float64          `toml:"eye_v"`
	StandingEyeH  float64          `toml:"standing_eye_h"`
	StandingEyeV  float64          `toml:"standing_eye_v"`
	SolveStanding bool             `toml:"solve_standing"`
	FasciaHeight  float64          `toml:"fascia_height"`
	RoundTo       float64          `toml:"round_to"`
	Rounding      string           `toml:"rounding"` // "up" (default) or "nearest"
	SuperRiser    *bowl.SuperRiser `toml:"super_riser"`
	Vomitory      *bowl.Vomitory   `toml:"vomitory"`
}

// Load reads and parses a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "profile %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes a profile from TOML bytes.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "decode profile")
	}
	if p.Units == "" {
		p.Units = "m"
	}
	if len(p.Tiers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidProfile, "profile declares no tiers")
	}
	return &p, nil
}

// Section synthesizes the profile into a bowl section, converting all
// dimensions to meters.
func (p *Profile) Section() (*bowl.Section, error) {
	scale, err := geom.UnitScale(p.Units)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidUnits, err, "profile units")
	}

	tiers := make([]*bowl.Tier, len(p.Tiers))
	for i, tc := range p.Tiers {
		t, err := tc.tier(scale)
		if err != nil {
			return nil, err.AtTier(i)
		}
		tiers[i] = t
	}

	focus := geom.Pt(p.Focus.H*scale, p.Focus.V*scale)
	return bowl.NewSection(focus, tiers...)
}

// tier converts one tier block to bowl configuration in meters.
func (tc TierConfig) tier(scale float64) (*bowl.Tier, *errors.Error) {
	t := bowl.NewTier(tc.Rows)
	t.Scale = scale
	t.StartH = tc.StartH * scale
	t.StartV = tc.StartV * scale
	t.FasciaHeight = tc.FasciaHeight * scale
	t.SolveStanding = tc.SolveStanding

	switch tc.Anchor {
	case "", string(bowl.AnchorFocus):
		t.Anchor = bowl.AnchorFocus
	case string(bowl.AnchorPrevTier):
		t.Anchor = bowl.AnchorPrevTier
	default:
		return nil, errors.New(errors.ErrCodeInvalidProfile,
			"unknown anchor %q (must be %q or %q)", tc.Anchor, bowl.AnchorFocus, bowl.AnchorPrevTier)
	}

	if tc.CValue != 0 {
		t.CValue = tc.CValue * scale
	} else {
		t.CValue = bowl.DefaultCValue
	}
	t.EyeH = dimension(tc.EyeH, bowl.DefaultEyeH, scale)
	t.EyeV = dimension(tc.EyeV, bowl.DefaultEyeV, scale)
	t.StandingEyeH = dimension(tc.StandingEyeH, bowl.DefaultStandingEyeH, scale)
	t.StandingEyeV = dimension(tc.StandingEyeV, bowl.DefaultStandingEyeV, scale)

	switch {
	case len(tc.RowWidths) > 0:
		t.RowWidths = make([]float64, len(tc.RowWidths))
		for i, w := range tc.RowWidths {
			t.RowWidths[i] = w * scale
		}
	case tc.RowWidth != 0:
		for i := range t.RowWidths {
			t.RowWidths[i] = tc.RowWidth * scale
		}
	default:
		// NewTier's default widths are already in meters; no scaling.
	}

	t.RoundTo = tc.RoundTo * scale
	switch tc.Rounding {
	case "":
		t.Rounding = bowl.RoundUp
	case string(bowl.RoundUp), string(bowl.RoundNearest):
		t.Rounding = bowl.Rounding(tc.Rounding)
	default:
		return nil, errors.New(errors.ErrCodeInvalidProfile, "unknown rounding %q", tc.Rounding)
	}

	if sr := tc.SuperRiser; sr != nil {
		t.SuperRiser = &bowl.SuperRiser{
			Row:          sr.Row,
			CurbWidth:    sr.CurbWidth * scale,
			EyeH:         dimension(sr.EyeH, bowl.DefaultEyeH, scale),
			EyeV:         dimension(sr.EyeV, bowl.DefaultEyeV, scale),
			StandingEyeH: dimension(sr.StandingEyeH, bowl.DefaultStandingEyeH, scale),
			StandingEyeV: dimension(sr.StandingEyeV, bowl.DefaultStandingEyeV, scale),
		}
	}
	if v := tc.Vomitory; v != nil {
		t.Vomitory = &bowl.Vomitory{StartRow: v.StartRow, Height: v.Height}
	}

	return t, nil
}

// dimension scales a configured dimension, falling back to a default in
// meters when the field was left at zero.
func dimension(value, def, scale float64) float64 {
	if value == 0 {
		return def
	}
	return value * scale
}

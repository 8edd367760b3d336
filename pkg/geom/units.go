package geom

import "fmt"

// Conversion factors to meters, the canonical unit for synthesis.
const (
	MetersPerMillimeter = 0.001
	MetersPerCentimeter = 0.01
	MetersPerInch       = 0.0254
	MetersPerFoot       = 0.3048
)

// unitScales maps unit names accepted in profiles to meters-per-unit.
var unitScales = map[string]float64{
	"m":  1.0,
	"mm": MetersPerMillimeter,
	"cm": MetersPerCentimeter,
	"in": MetersPerInch,
	"ft": MetersPerFoot,
}

// UnitScale returns the meters-per-unit factor for a unit name.
func UnitScale(name string) (float64, error) {
	if s, ok := unitScales[name]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("unknown units %q (must be one of: m, mm, cm, in, ft)", name)
}

package section

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"

	"github.com/matzehuels/sightline/pkg/bowl"
	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/geom"
)

// csvHeader is the fixed column schema of the setting-out schedule.
var csvHeader = []string{
	"tier", "row", "nose_h", "nose_v",
	"riser_height", "eye_h", "eye_v",
	"c_value", "unobstructed", "super_riser", "vomitory",
}

// RenderCSV emits a per-row setting-out schedule: one record per row across
// all tiers, in tier and row order. The last row of a tier has no riser
// above it, so its riser_height field is empty; a C-value that could not be
// graded is likewise empty.
func RenderCSV(sec *bowl.Section) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to write schedule header")
	}

	for _, t := range sec.Tiers() {
		noses := t.NosePoints()
		risers := t.RiserHeights()
		for row, sp := range t.Spectators() {
			if err := w.Write(scheduleRecord(t, sp, noses[row], risers, row)); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to write schedule row")
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to flush schedule")
	}
	return buf.Bytes(), nil
}

func scheduleRecord(t *bowl.Tier, sp bowl.Spectator, nose geom.Point, risers []float64, row int) []string {
	riser := ""
	if row < len(risers) {
		riser = formatMeters(risers[row])
	}
	cval := ""
	if !math.IsNaN(sp.CValue) {
		cval = formatMeters(sp.CValue)
	}
	return []string{
		strconv.Itoa(t.Index()),
		strconv.Itoa(row),
		formatMeters(nose.H),
		formatMeters(nose.V),
		riser,
		formatMeters(sp.SeatedEye.H),
		formatMeters(sp.SeatedEye.V),
		cval,
		strconv.FormatBool(sp.Unobstructed),
		strconv.FormatBool(sp.SuperRiser),
		strconv.FormatBool(sp.Vomitory),
	}
}

func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

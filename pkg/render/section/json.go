package section

import (
	"encoding/json"

	"github.com/matzehuels/sightline/pkg/bowl"
	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/geom"
)

// Document is the canonical JSON form of a synthesized section. All
// dimensions are metres in the section's coordinate frame.
type Document struct {
	Focus       geom.Point        `json:"focus"`
	RowCount    int               `json:"row_count"`
	Adjustments []bowl.Adjustment `json:"adjustments,omitempty"`
	Tiers       []TierDocument    `json:"tiers"`
}

// TierDocument is one tier's geometry within a [Document].
type TierDocument struct {
	Index        int              `json:"index"`
	Rows         int              `json:"rows"`
	Boundary     []geom.Point     `json:"boundary"`
	RiserHeights []float64        `json:"riser_heights"`
	Spectators   []bowl.Spectator `json:"spectators"`
}

// NewDocument captures the section's geometry as a serializable document.
func NewDocument(sec *bowl.Section) Document {
	doc := Document{
		Focus:       sec.Focus(),
		RowCount:    sec.RowCount(),
		Adjustments: sec.Adjustments(),
		Tiers:       make([]TierDocument, len(sec.Tiers())),
	}
	for i, t := range sec.Tiers() {
		doc.Tiers[i] = TierDocument{
			Index:        t.Index(),
			Rows:         t.RowCount,
			Boundary:     t.BoundaryPoints(),
			RiserHeights: t.RiserHeights(),
			Spectators:   t.Spectators(),
		}
	}
	return doc
}

// RenderJSON serializes the section's geometry as indented JSON.
func RenderJSON(sec *bowl.Section) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(sec), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to serialize section geometry")
	}
	return data, nil
}

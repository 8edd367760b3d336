package section

import (
	"encoding/json"
	"testing"
)

func TestNewDocument(t *testing.T) {
	sec := testSection(t)
	doc := NewDocument(sec)

	if doc.RowCount != 3 {
		t.Errorf("RowCount = %d, want 3", doc.RowCount)
	}
	if len(doc.Tiers) != 1 {
		t.Fatalf("tier count = %d, want 1", len(doc.Tiers))
	}
	td := doc.Tiers[0]
	if td.Index != 0 || td.Rows != 3 {
		t.Errorf("tier doc = index %d rows %d, want 0/3", td.Index, td.Rows)
	}
	if len(td.Boundary) != sec.Tier(0).PointCount() {
		t.Errorf("boundary length = %d, want %d", len(td.Boundary), sec.Tier(0).PointCount())
	}
	if len(td.Spectators) != 3 {
		t.Errorf("spectator count = %d, want 3", len(td.Spectators))
	}
	if len(td.RiserHeights) != 2 {
		t.Errorf("riser count = %d, want 2", len(td.RiserHeights))
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	sec := testSection(t)
	data, err := RenderJSON(sec)
	if err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Focus != sec.Focus() {
		t.Errorf("focus = %v, want %v", doc.Focus, sec.Focus())
	}
	if got := doc.Tiers[0].Boundary[0]; got != sec.Tier(0).BoundaryPoints()[0] {
		t.Errorf("first boundary point = %v, want %v", got, sec.Tier(0).BoundaryPoints()[0])
	}
}

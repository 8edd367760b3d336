package section

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/sightline/pkg/bowl"
	"github.com/matzehuels/sightline/pkg/geom"
)

func testSection(t *testing.T) *bowl.Section {
	t.Helper()
	tier := bowl.NewTier(3)
	tier.StartH = 5.0
	tier.StartV = 1.0
	tier.CValue = 0.1
	sec, err := bowl.NewSection(geom.Pt(0, 0), tier)
	if err != nil {
		t.Fatalf("NewSection failed: %v", err)
	}
	return sec
}

func TestRenderSVGStructure(t *testing.T) {
	sec := testSection(t)
	svg := string(RenderSVG(sec))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg root element, got prefix %q", svg[:40])
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing svg tag")
	}
	if got := strings.Count(svg, "<polyline"); got != 1 {
		t.Errorf("polyline count = %d, want 1 (one tier)", got)
	}
	// Three spectator eyes plus the two focus circles.
	if got := strings.Count(svg, "<circle"); got != 5 {
		t.Errorf("circle count = %d, want 5", got)
	}
	if got := strings.Count(svg, "<line"); got != 3 {
		t.Errorf("sightline count = %d, want 3", got)
	}
}

func TestRenderSVGWithoutSightlines(t *testing.T) {
	sec := testSection(t)
	svg := string(RenderSVG(sec, WithoutSightlines()))
	if strings.Contains(svg, "<line") {
		t.Error("sightlines rendered despite WithoutSightlines")
	}
}

func TestRenderSVGStandingDiffers(t *testing.T) {
	sec := testSection(t)
	seated := RenderSVG(sec)
	standing := RenderSVG(sec, WithStanding())
	if bytes.Equal(seated, standing) {
		t.Error("standing overlay produced identical output to seated")
	}
}

func TestRenderSVGScale(t *testing.T) {
	sec := testSection(t)
	small := RenderSVG(sec, WithPxPerMeter(10))
	large := RenderSVG(sec, WithPxPerMeter(100))
	if bytes.Equal(small, large) {
		t.Error("scale option had no effect")
	}
	// Non-positive scale falls back to the default.
	def := RenderSVG(sec)
	zero := RenderSVG(sec, WithPxPerMeter(0))
	if !bytes.Equal(def, zero) {
		t.Error("zero scale should fall back to default")
	}
}

func TestRenderSVGBlueprintStyle(t *testing.T) {
	sec := testSection(t)
	svg := string(RenderSVG(sec, WithStyle(Blueprint{})))
	if !strings.Contains(svg, "#10315c") {
		t.Error("blueprint canvas color missing")
	}
}

func TestFrameProjection(t *testing.T) {
	sec := testSection(t)
	f := newFrame(sec, sec.SpectatorPositions(false), DefaultPxPerMeter)

	// The vertical axis flips: a higher V lands closer to the canvas top.
	_, yLow := f.project(geom.Pt(5, 1))
	_, yHigh := f.project(geom.Pt(5, 3))
	if yHigh >= yLow {
		t.Errorf("projection did not flip V: y(3)=%v >= y(1)=%v", yHigh, yLow)
	}
	if f.width <= 0 || f.height <= 0 {
		t.Errorf("degenerate canvas %vx%v", f.width, f.height)
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	sec := testSection(t)
	a := RenderSVG(sec, WithStanding(), WithStyle(Blueprint{}))
	b := RenderSVG(sec, WithStanding(), WithStyle(Blueprint{}))
	if !bytes.Equal(a, b) {
		t.Error("identical inputs produced different drawings")
	}
}

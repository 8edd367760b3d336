package section

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/sightline/pkg/bowl"
	"github.com/matzehuels/sightline/pkg/geom"
)

// DefaultPxPerMeter is the drawing scale applied when no override is given.
const DefaultPxPerMeter = 40.0

// canvasMargin is the padding, in metres, added around the geometry bounds.
const canvasMargin = 1.0

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      Style
	standing   bool
	sightlines bool
	pxPerMeter float64
}

// WithStyle selects the visual style. The default is [Simple].
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithStanding draws standing eye positions and sightlines instead of seated.
func WithStanding() SVGOption { return func(r *svgRenderer) { r.standing = true } }

// WithoutSightlines suppresses the per-spectator sightline rays.
func WithoutSightlines() SVGOption { return func(r *svgRenderer) { r.sightlines = false } }

// WithPxPerMeter overrides the drawing scale. Non-positive values are ignored.
func WithPxPerMeter(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.pxPerMeter = px
		}
	}
}

// RenderSVG draws the section profile as a standalone SVG document: one
// polyline per tier boundary, an eye marker per spectator, optional
// sightline rays, and the point of focus.
func RenderSVG(sec *bowl.Section, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	eyes := sec.SpectatorPositions(r.standing)
	frame := newFrame(sec, eyes, r.pxPerMeter)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frame.width, frame.height, frame.width, frame.height)

	r.style.RenderBackground(&buf, frame.width, frame.height)

	if r.sightlines {
		renderSightlines(&buf, &r, sec, eyes, frame)
	}
	for _, pts := range sec.BoundaryPoints() {
		r.style.RenderProfile(&buf, frame.polyline(pts))
	}
	renderEyes(&buf, &r, sec, eyes, frame)

	fx, fy := frame.project(sec.Focus())
	r.style.RenderFocus(&buf, fx, fy)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: Simple{}, sightlines: true, pxPerMeter: DefaultPxPerMeter}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// frame maps section coordinates (metres, V up) to canvas coordinates
// (pixels, Y down).
type frame struct {
	minH, maxV    float64
	ppm           float64
	width, height float64
}

func newFrame(sec *bowl.Section, eyes [][]geom.Point, ppm float64) frame {
	minH, maxH := math.Inf(1), math.Inf(-1)
	minV, maxV := math.Inf(1), math.Inf(-1)

	grow := func(p geom.Point) {
		minH, maxH = math.Min(minH, p.H), math.Max(maxH, p.H)
		minV, maxV = math.Min(minV, p.V), math.Max(maxV, p.V)
	}

	grow(sec.Focus())
	for _, pts := range sec.BoundaryPoints() {
		for _, p := range pts {
			grow(p)
		}
	}
	for _, tier := range eyes {
		for _, p := range tier {
			grow(p)
		}
	}

	f := frame{minH: minH - canvasMargin, maxV: maxV + canvasMargin, ppm: ppm}
	f.width = (maxH - minH + 2*canvasMargin) * ppm
	f.height = (maxV - minV + 2*canvasMargin) * ppm
	return f
}

func (f frame) project(p geom.Point) (x, y float64) {
	return (p.H - f.minH) * f.ppm, (f.maxV - p.V) * f.ppm
}

func (f frame) polyline(pts []geom.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		x, y := f.project(p)
		fmt.Fprintf(&b, "%.1f,%.1f", x, y)
	}
	return b.String()
}

func renderSightlines(buf *bytes.Buffer, r *svgRenderer, sec *bowl.Section, eyes [][]geom.Point, frame frame) {
	fx, fy := frame.project(sec.Focus())
	for i, tier := range eyes {
		specs := sec.Tier(i).Spectators()
		for j, eye := range tier {
			x, y := frame.project(eye)
			r.style.RenderSightline(buf, x, y, fx, fy, !specs[j].Unobstructed)
		}
	}
}

func renderEyes(buf *bytes.Buffer, r *svgRenderer, sec *bowl.Section, eyes [][]geom.Point, frame frame) {
	for i, tier := range eyes {
		specs := sec.Tier(i).Spectators()
		for j, eye := range tier {
			x, y := frame.project(eye)
			r.style.RenderEye(buf, x, y, !specs[j].Unobstructed)
		}
	}
}

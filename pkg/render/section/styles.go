package section

import (
	"bytes"
	"fmt"
	"strings"
)

// Style controls the visual treatment of every drawn element. Styles are
// stateless values; render methods append SVG fragments to the buffer.
type Style interface {
	// Name returns the identifier used to select the style.
	Name() string
	// RenderBackground fills the full canvas before any geometry is drawn.
	RenderBackground(buf *bytes.Buffer, width, height float64)
	// RenderProfile draws one tier's boundary polyline. The points argument
	// is a ready-made SVG points attribute value.
	RenderProfile(buf *bytes.Buffer, points string)
	// RenderSightline draws one spectator's sightline ray to the focus.
	RenderSightline(buf *bytes.Buffer, x1, y1, x2, y2 float64, obstructed bool)
	// RenderEye marks one spectator's eye position.
	RenderEye(buf *bytes.Buffer, x, y float64, obstructed bool)
	// RenderFocus marks the section's point of focus.
	RenderFocus(buf *bytes.Buffer, x, y float64)
}

// Simple is the default style: dark line work on a near-white canvas, with
// obstructed rows flagged in red.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderBackground(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#fafaf7"/>`+"\n", width, height)
}

func (Simple) RenderProfile(buf *bytes.Buffer, points string) {
	fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="#1f2430" stroke-width="2" stroke-linejoin="round"/>`+"\n", points)
}

func (Simple) RenderSightline(buf *bytes.Buffer, x1, y1, x2, y2 float64, obstructed bool) {
	stroke := "#9aa3b2"
	if obstructed {
		stroke = "#d64545"
	}
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="0.8" stroke-dasharray="4 3"/>`+"\n",
		x1, y1, x2, y2, stroke)
}

func (Simple) RenderEye(buf *bytes.Buffer, x, y float64, obstructed bool) {
	fill := "#2c6e49"
	if obstructed {
		fill = "#d64545"
	}
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x, y, fill)
}

func (Simple) RenderFocus(buf *bytes.Buffer, x, y float64) {
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="5" fill="none" stroke="#1f2430" stroke-width="2"/>`+"\n", x, y)
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="1.5" fill="#1f2430"/>`+"\n", x, y)
}

// Blueprint draws white line work on a navy canvas, in the manner of a
// construction drawing.
type Blueprint struct{}

func (Blueprint) Name() string { return "blueprint" }

func (Blueprint) RenderBackground(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#10315c"/>`+"\n", width, height)
}

func (Blueprint) RenderProfile(buf *bytes.Buffer, points string) {
	fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="#f2f6ff" stroke-width="2" stroke-linejoin="round"/>`+"\n", points)
}

func (Blueprint) RenderSightline(buf *bytes.Buffer, x1, y1, x2, y2 float64, obstructed bool) {
	stroke := "#7ea2d6"
	if obstructed {
		stroke = "#ff8f6b"
	}
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="0.8" stroke-dasharray="4 3"/>`+"\n",
		x1, y1, x2, y2, stroke)
}

func (Blueprint) RenderEye(buf *bytes.Buffer, x, y float64, obstructed bool) {
	fill := "#9fd8cb"
	if obstructed {
		fill = "#ff8f6b"
	}
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x, y, fill)
}

func (Blueprint) RenderFocus(buf *bytes.Buffer, x, y float64) {
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="5" fill="none" stroke="#f2f6ff" stroke-width="2"/>`+"\n", x, y)
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="1.5" fill="#f2f6ff"/>`+"\n", x, y)
}

// StyleByName resolves a user-supplied style name. The lookup is
// case-insensitive; unknown names return false.
func StyleByName(name string) (Style, bool) {
	switch strings.ToLower(name) {
	case "", "simple":
		return Simple{}, true
	case "blueprint":
		return Blueprint{}, true
	}
	return nil, false
}

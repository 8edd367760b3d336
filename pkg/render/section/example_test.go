package section_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/sightline/pkg/bowl"
	"github.com/matzehuels/sightline/pkg/geom"
	"github.com/matzehuels/sightline/pkg/render/section"
)

func ExampleNewDocument() {
	tier := bowl.NewTier(3)
	tier.StartH = 5.0
	tier.StartV = 1.0
	tier.CValue = 0.1

	sec, err := bowl.NewSection(geom.Pt(0, 0), tier)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	doc := section.NewDocument(sec)
	fmt.Println("Tiers", len(doc.Tiers))
	fmt.Println("Rows", doc.RowCount)
	fmt.Println("Risers", len(doc.Tiers[0].RiserHeights))
	// Output:
	// Tiers 1
	// Rows 3
	// Risers 2
}

func ExampleRenderSVG() {
	tier := bowl.NewTier(5)
	sec, err := bowl.NewSection(geom.Pt(0, 0), tier)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	svg := section.RenderSVG(sec, section.WithStyle(section.Blueprint{}))
	fmt.Println(strings.HasPrefix(string(svg), "<svg"))
	fmt.Println(strings.Contains(string(svg), "polyline"))
	// Output:
	// true
	// true
}

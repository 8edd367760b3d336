package section

import (
	"github.com/matzehuels/sightline/pkg/bowl"
	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/render"
)

// RenderPNG draws the section as SVG and rasterizes it at the given scale
// factor. Scale of 2.0 produces a 2x resolution image.
func RenderPNG(sec *bowl.Section, scale float64, opts ...SVGOption) ([]byte, error) {
	data, err := render.ToPNG(RenderSVG(sec, opts...), scale)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "png conversion failed")
	}
	return data, nil
}

// RenderPDF draws the section as SVG and converts it to PDF.
func RenderPDF(sec *bowl.Section, opts ...SVGOption) ([]byte, error) {
	data, err := render.ToPDF(RenderSVG(sec, opts...))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "pdf conversion failed")
	}
	return data, nil
}

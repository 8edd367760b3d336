// Package pipeline provides the core synthesis pipeline for sightline.
//
// This package implements the complete load → synthesize → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse a TOML profile and convert dimensions to metres
//  2. Synthesize: Solve riser heights row by row and build the section
//  3. Render: Generate output in various formats (SVG, JSON, CSV, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ProfilePath: "arena.toml",
//	    Formats:     []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sightline/pkg/bowl"
	"github.com/matzehuels/sightline/pkg/cache"
	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/profile"
	"github.com/matzehuels/sightline/pkg/render/section"
)

const (
	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"

	// DefaultRasterScale is the rsvg-convert scale factor for PNG output.
	// Scale of 2.0 produces a 2x resolution image.
	DefaultRasterScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatCSV:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// Options contains all configuration for the synthesis pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of ProfilePath and Profile must be set;
	// Profile carries raw TOML bytes for callers that never touch disk.
	ProfilePath string `json:"profile_path,omitempty"`
	Profile     []byte `json:"profile,omitempty"`

	// Render options
	Formats        []string `json:"formats,omitempty"`
	Style          string   `json:"style,omitempty"`
	Standing       bool     `json:"standing,omitempty"`
	HideSightlines bool     `json:"hide_sightlines,omitempty"`
	PxPerMeter     float64  `json:"px_per_meter,omitempty"`
	RasterScale    float64  `json:"raster_scale,omitempty"`
	Refresh        bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Profile is the parsed, unit-normalized profile.
	Profile *profile.Profile

	// ProfileHash is the content hash of the raw profile bytes.
	ProfileHash string

	// Section is the synthesized section geometry.
	Section *bowl.Section

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TierCount  int
	RowCount   int
	Obstructed int
	LoadTime   time.Duration
	SynthTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json, csv, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if _, ok := section.StyleByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, blueprint)", style)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for profile loading.
func (o *Options) ValidateForLoad() error {
	if o.ProfilePath == "" && len(o.Profile) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "profile_path or profile is required")
	}
	if o.ProfilePath != "" && len(o.Profile) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "profile_path and profile are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.PxPerMeter == 0 {
		o.PxPerMeter = section.DefaultPxPerMeter
	}
	if o.RasterScale == 0 {
		o.RasterScale = DefaultRasterScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		Standing:   o.Standing,
		Sightlines: !o.HideSightlines,
		PxPerMeter: o.PxPerMeter,
	}
}

// svgOptions translates pipeline options into section render options.
func (o *Options) svgOptions() []section.SVGOption {
	style, _ := section.StyleByName(o.Style)
	opts := []section.SVGOption{
		section.WithStyle(style),
		section.WithPxPerMeter(o.PxPerMeter),
	}
	if o.Standing {
		opts = append(opts, section.WithStanding())
	}
	if o.HideSightlines {
		opts = append(opts, section.WithoutSightlines())
	}
	return opts
}

package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sightline/pkg/bowl"
	"github.com/matzehuels/sightline/pkg/cache"
	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/observability"
	"github.com/matzehuels/sightline/pkg/profile"
	"github.com/matzehuels/sightline/pkg/render/section"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → synthesize → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	prof, raw, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Profile = prof
	result.ProfileHash = cache.Hash(raw)
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded profile",
		"source", opts.profileSource(),
		"units", prof.Units,
		"tiers", len(prof.Tiers),
		"duration", result.Stats.LoadTime)

	// Stage 2: Synthesize
	synthStart := time.Now()
	sec, err := r.Synthesize(ctx, prof)
	if err != nil {
		return nil, err
	}
	result.Section = sec
	result.Stats.SynthTime = time.Since(synthStart)
	result.Stats.TierCount = len(sec.Tiers())
	result.Stats.RowCount = sec.RowCount()
	result.Stats.Obstructed = countObstructed(sec)

	for _, adj := range sec.Adjustments() {
		r.Logger.Warn("adjusted tier configuration",
			"tier", adj.Tier,
			"from", adj.From,
			"to", adj.To,
			"reason", adj.Reason)
	}
	r.Logger.Info("synthesized section",
		"tiers", result.Stats.TierCount,
		"rows", result.Stats.RowCount,
		"obstructed", result.Stats.Obstructed,
		"duration", result.Stats.SynthTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sec, result.ProfileHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and parses the profile, returning it together with the raw
// bytes used for cache keys.
func (r *Runner) Load(ctx context.Context, opts Options) (*profile.Profile, []byte, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, nil, err
	}

	source := opts.profileSource()
	observability.Pipeline().OnLoadStart(ctx, source)
	start := time.Now()

	raw := opts.Profile
	if opts.ProfilePath != "" {
		data, err := os.ReadFile(opts.ProfilePath)
		if err != nil {
			wrapped := errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read profile %s", opts.ProfilePath)
			observability.Pipeline().OnLoadComplete(ctx, source, 0, time.Since(start), wrapped)
			return nil, nil, wrapped
		}
		raw = data
	}

	prof, err := profile.Parse(raw)
	observability.Pipeline().OnLoadComplete(ctx, source, tierCount(prof), time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return prof, raw, nil
}

// Synthesize builds the section geometry from a loaded profile.
func (r *Runner) Synthesize(ctx context.Context, prof *profile.Profile) (*bowl.Section, error) {
	rows := 0
	for _, tc := range prof.Tiers {
		rows += tc.Rows
	}
	observability.Pipeline().OnSynthesisStart(ctx, len(prof.Tiers), rows)
	start := time.Now()

	sec, err := prof.Section()
	observability.Pipeline().OnSynthesisComplete(ctx, len(prof.Tiers), rows, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return sec, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The profileHash keys cached artifacts; identical profiles with identical
// render options reuse previous output.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sec *bowl.Section, profileHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache (unless refresh requested).
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		allCached := true
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(profileHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
	}

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(sec, format, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(profileHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, sec *bowl.Section, profileHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, sec, profileHash, opts)
	return artifacts, err
}

func (r *Runner) renderFormat(sec *bowl.Section, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return section.RenderSVG(sec, opts.svgOptions()...), nil
	case FormatJSON:
		return section.RenderJSON(sec)
	case FormatCSV:
		return section.RenderCSV(sec)
	case FormatPNG:
		return section.RenderPNG(sec, opts.RasterScale, opts.svgOptions()...)
	case FormatPDF:
		return section.RenderPDF(sec, opts.svgOptions()...)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (o *Options) profileSource() string {
	if o.ProfilePath != "" {
		return o.ProfilePath
	}
	return "inline"
}

func tierCount(p *profile.Profile) int {
	if p == nil {
		return 0
	}
	return len(p.Tiers)
}

func countObstructed(sec *bowl.Section) int {
	var n int
	for _, sp := range sec.Spectators() {
		if !sp.Unobstructed {
			n++
		}
	}
	return n
}

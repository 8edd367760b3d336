// Package section renders a synthesized seating section to output formats.
//
// # Overview
//
// A [bowl.Section] carries the full 2D cross-section geometry: tier boundary
// polylines, spectator eye positions, sightline vectors, and achieved
// C-values. This package turns that geometry into artifacts:
//
//   - [RenderSVG]: scalable vector drawing of the section profile
//   - [RenderJSON]: canonical geometry document for downstream tooling
//   - [RenderCSV]: per-row setting-out schedule for spreadsheets
//   - [RenderPNG], [RenderPDF]: raster and print output via rsvg-convert
//
// # Coordinate mapping
//
// Section geometry uses metres with V pointing up; SVG uses pixels with Y
// pointing down. The renderer computes the bounding box of everything drawn
// (boundary points, eyes, and the focus), pads it with a margin, and flips
// the vertical axis. Scale is controlled with [WithPxPerMeter].
//
// # Styles
//
// Drawing appearance is controlled by a [Style]. [Simple] is the default
// clean line drawing; [Blueprint] draws white on navy. Use [StyleByName] to
// resolve a user-supplied style string.
package section

// Package bowl synthesizes the 2D cross-sectional geometry of a stadium
// seating bowl.
//
// A [Section] is an ordered stack of [Tier] configurations sharing one point
// of focus. Constructing a Section runs row synthesis for every tier in
// index order: each tier's riser profile is solved row by row so that every
// spectator clears the sightline of the spectator in front by at least the
// tier's target C-value, and a [Spectator] is instantiated per row with
// seated and standing eye positions and sightline vectors.
//
// Synthesis is a single forward pass per tier. Each riser height depends on
// the previous row's emitted point and the next row's configured width, so
// rows within a tier are strictly sequential, and tiers anchored to the end
// of the previous tier force ascending synthesis order across the section.
// The computation is deterministic: synthesizing the same configuration
// twice produces identical geometry.
//
// # Usage
//
//	tier := bowl.NewTier(20)
//	tier.CValue = 0.09
//
//	sec, err := bowl.NewSection(geom.Pt(0, 0), tier)
//	if err != nil {
//	    return err
//	}
//	points := sec.BoundaryPoints()
//	eyes := sec.SpectatorPositions(false)
//
// Sections are read-only after construction. Mutating a tier afterwards
// leaves stale derived geometry; callers must build a fresh Section instead.
package bowl

package profile

// DefaultTOML is the starter profile written by "sightline init": a typical
// two-tier bowl with a fascia'd upper deck anchored to the lower tier.
const DefaultTOML = `# Sightline section profile.
# All dimensions are in the declared units; geometry is computed in meters.
units = "m"

# Point of focus: the spot every sightline aims at (e.g. the near touchline).
[focus]
h = 0.0
v = 0.0

# Lower tier, anchored to the point of focus.
[[tier]]
anchor = "focus"
start_h = 6.0        # horizontal offset of the first row from the focus
start_v = 0.8        # vertical offset of the first row from the focus
rows = 24
row_width = 0.85     # tread depth per row
c_value = 0.09       # target sightline clearance
eye_h = 0.8          # seated eye, behind the riser nose
eye_v = 1.2          # seated eye, above the tread
standing_eye_h = 0.6
standing_eye_v = 1.65
round_to = 0.005     # round risers up to buildable 5 mm increments

# Upper tier, anchored to the end of the lower tier.
[[tier]]
anchor = "prev-tier"
start_h = 1.2
start_v = 2.4
rows = 30
row_width = 0.8
c_value = 0.12
fascia_height = 1.0
round_to = 0.005
`

// Default returns the parsed starter profile.
func Default() *Profile {
	p, err := Parse([]byte(DefaultTOML))
	if err != nil {
		// The embedded profile is covered by tests; failing to parse it is
		// a programming error.
		panic("profile: invalid embedded default: " + err.Error())
	}
	return p
}

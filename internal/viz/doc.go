// Package viz renders a live terminal view of the ocean: a shaded field
// map, a braille surface profile, gauge history and tunable wind
// parameters.
//
// The view is a bubbletea program ticking at a fixed rate; every tick
// steps the engine once and redraws. Field maps are drawn with a small
// shade ramp, the surface profile with a braille canvas.
package viz

// Package visual defines the shared value types for entity styling: colors,
// positions, and the (fill, outline, glow) triples produced by the highlight
// color policy.  These types are plain data with no behaviour beyond small
// constructors and derivations; all styling logic lives in
// internal/domain/highlight.
package visual

// Color is an RGBA color with channels in the [0, 1] range, matching the
// convention of the scene hosts this engine targets.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// RGBA constructs a Color from explicit channel values.  No clamping is
// performed; callers own the range invariant.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB constructs a fully opaque Color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns a copy of c with its alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// ScaleAlpha returns a copy of c with its alpha channel multiplied by f.
// Used for the reduced-opacity ghost marker styling.
func (c Color) ScaleAlpha(f float64) Color {
	c.A *= f
	return c
}

// ColorTriple is the immutable (fill, outline, glow) triple looked up per
// (mode, diff type) by the color policy.  Fill styles area interiors and
// point bodies, Outline styles area borders and point rims, Glow tints
// marker billboards.
type ColorTriple struct {
	Fill    Color `json:"fill"`
	Outline Color `json:"outline"`
	Glow    Color `json:"glow"`
}

// Position is a geodetic position in degrees with height in meters.
type Position struct {
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	Height float64 `json:"height,omitempty"`
}

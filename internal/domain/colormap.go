package domain

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/interp"
)

// ControlPoint anchors one channel of a colormap: at input X the channel is Y.
type ControlPoint struct {
	X, Y float64
}

// Channels holds the control points for each output channel.
type Channels struct {
	Red, Green, Blue, Alpha []ControlPoint
}

// RGBA is a color with straight (non-premultiplied) components in [0,1].
type RGBA struct {
	R, G, B, A float64
}

// NRGBA converts to an 8-bit non-premultiplied color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

// ColorMap maps a normalized scalar to a color by piecewise-linear
// interpolation of each channel independently.
type ColorMap struct {
	red, green, blue, alpha interp.PiecewiseLinear
}

// NewColorMap builds a ColorMap. Each channel needs at least two control
// points with strictly increasing X inside [0,1].
func NewColorMap(ch Channels) (*ColorMap, error) {
	cm := &ColorMap{}
	for _, c := range []struct {
		name string
		pts  []ControlPoint
		dst  *interp.PiecewiseLinear
	}{
		{"red", ch.Red, &cm.red},
		{"green", ch.Green, &cm.green},
		{"blue", ch.Blue, &cm.blue},
		{"alpha", ch.Alpha, &cm.alpha},
	} {
		xs, ys, err := splitControlPoints(c.pts)
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", c.name, err)
		}
		if err := c.dst.Fit(xs, ys); err != nil {
			return nil, fmt.Errorf("%s channel: %w", c.name, err)
		}
	}
	return cm, nil
}

func splitControlPoints(pts []ControlPoint) (xs, ys []float64, err error) {
	if len(pts) < 2 {
		return nil, nil, errors.New("need at least two control points")
	}
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		if p.X < 0 || p.X > 1 {
			return nil, nil, fmt.Errorf("control point x=%g outside [0,1]", p.X)
		}
		if i > 0 && p.X <= pts[i-1].X {
			return nil, nil, errors.New("control points must be strictly increasing")
		}
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys, nil
}

// At returns the color for v. Inputs outside [0,1] are clamped; NaN maps to 0.
func (cm *ColorMap) At(v float64) RGBA {
	v = clamp01(v)
	return RGBA{
		R: cm.red.Predict(v),
		G: cm.green.Predict(v),
		B: cm.blue.Predict(v),
		A: cm.alpha.Predict(v),
	}
}

// LUT samples the map at n evenly spaced inputs, first at 0 and last at 1.
func (cm *ColorMap) LUT(n int) []color.NRGBA {
	if n < 2 {
		n = 2
	}
	lut := make([]color.NRGBA, n)
	for i := range lut {
		lut[i] = cm.At(float64(i) / float64(n-1)).NRGBA()
	}
	return lut
}

// AuroraChannels are the control points of the aurora palette: transparent
// at zero, opaque green from the midpoint, shading to pink at full intensity.
var AuroraChannels = Channels{
	Red:   []ControlPoint{{0, 0.1725}, {0.5, 0.1725}, {1, 0.8353}},
	Green: []ControlPoint{{0, 0.9294}, {0.5, 0.9294}, {1, 0.8235}},
	Blue:  []ControlPoint{{0, 0.3843}, {0.5, 0.3843}, {1, 0.6549}},
	Alpha: []ControlPoint{{0, 0}, {0.5, 1}, {1, 1}},
}

// AuroraColorMap returns the fixed aurora palette.
func AuroraColorMap() *ColorMap {
	cm, err := NewColorMap(AuroraChannels)
	if err != nil {
		panic(err) // static control points
	}
	return cm
}

// Normalizer linearly rescales values from [Min, Max] onto [0,1].
type Normalizer struct {
	Min, Max float64
}

// NewNormalizer spans the full value range of g.
func NewNormalizer(g *ForecastGrid) Normalizer {
	lo, hi := g.Range()
	return Normalizer{Min: lo, Max: hi}
}

// Normalize maps v into [0,1]. A degenerate range maps everything to 0.
func (n Normalizer) Normalize(v float64) float64 {
	span := n.Max - n.Min
	if span <= 0 || math.IsNaN(span) {
		return 0
	}
	return clamp01((v - n.Min) / span)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

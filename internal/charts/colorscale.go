package charts

import (
	"fmt"
	"image/color"
	"math"
)

// ColorStop is one anchor of a piecewise-linear color scale, Pos in [0,1].
type ColorStop struct {
	Pos   float64
	Color color.RGBA
}

// DivergingScale maps [Min, Max] onto color stops; Mid lands on the center stop.
type DivergingScale struct {
	Min, Mid, Max float64
	Stops         []ColorStop
	Missing       color.RGBA
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// RdBuReversed is the ColorBrewer RdBu ramp reversed: blue for -1, near-white
// at 0, dark red for +1. The domain is fixed so the center is always zero.
func RdBuReversed() DivergingScale {
	ramp := []color.RGBA{
		rgb(5, 48, 97), rgb(33, 102, 172), rgb(67, 147, 195), rgb(146, 197, 222),
		rgb(209, 229, 240), rgb(247, 247, 247), rgb(253, 219, 199), rgb(244, 165, 130),
		rgb(214, 96, 77), rgb(178, 24, 43), rgb(103, 0, 31),
	}
	stops := make([]ColorStop, len(ramp))
	for i, c := range ramp {
		stops[i] = ColorStop{Pos: float64(i) / float64(len(ramp)-1), Color: c}
	}
	return DivergingScale{Min: -1, Mid: 0, Max: 1, Stops: stops, Missing: rgb(204, 204, 204)}
}

// position maps v to [0,1] so that Mid is always 0.5.
func (s DivergingScale) position(v float64) float64 {
	v = math.Max(s.Min, math.Min(s.Max, v))
	if v < s.Mid {
		return 0.5 * (v - s.Min) / (s.Mid - s.Min)
	}
	return 0.5 + 0.5*(v-s.Mid)/(s.Max-s.Mid)
}

// At returns the interpolated color for v. NaN yields the missing color.
func (s DivergingScale) At(v float64) color.RGBA {
	if math.IsNaN(v) || len(s.Stops) == 0 {
		return s.Missing
	}
	p := s.position(v)
	for i := 1; i < len(s.Stops); i++ {
		lo, hi := s.Stops[i-1], s.Stops[i]
		if p <= hi.Pos {
			t := 0.0
			if hi.Pos > lo.Pos {
				t = (p - lo.Pos) / (hi.Pos - lo.Pos)
			}
			return lerp(lo.Color, hi.Color, t)
		}
	}
	return s.Stops[len(s.Stops)-1].Color
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// Hex renders a color as #rrggbb
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// luminance is the relative luminance used to pick a readable label color.
func luminance(c color.RGBA) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

// Package charts turns aggregate vectors and correlation matrices into
// render-ready chart specs with precomputed SVG geometry.
package charts

import (
	"math"
	"strconv"
	"strings"
)

// Radar geometry in SVG user units
const (
	RadarSize   = 520.0
	radarRadius = 170.0
	radarRings  = 4
	labelOffset = 16.0
)

// RadarPoint is one vertex of the radar polygon
type RadarPoint struct {
	Field   string
	Value   float64 // mean as computed; NaN when missing
	Plotted float64 // value used for geometry, 0 when missing
	Missing bool
	X, Y    float64
}

// RadarAxis is a spoke from the center with its label placement
type RadarAxis struct {
	Field          string
	X, Y           float64
	LabelX, LabelY float64
	Anchor         string
}

// RadarRing is a concentric gridline with its radial tick label
type RadarRing struct {
	Value  float64
	Label  string
	Points string
	LabelX float64
	LabelY float64
}

// RadarSpec is a closed polygon over a fixed field order
type RadarSpec struct {
	Name    string
	Fields  []string
	Points  []RadarPoint // len(Fields)+1; the last point repeats the first
	Axes    []RadarAxis
	Rings   []RadarRing
	Max     float64
	Size    float64
	Center  float64
	Radius  float64
	Missing int
}

// BuildRadar places one point per field in fieldOrder and closes the loop by
// repeating the first point. Missing or NaN means plot at zero.
func BuildRadar(mean map[string]float64, fieldOrder []string) RadarSpec {
	spec := RadarSpec{
		Fields: append([]string(nil), fieldOrder...),
		Size:   RadarSize,
		Center: RadarSize / 2,
		Radius: radarRadius,
	}

	peak := 0.0
	points := make([]RadarPoint, 0, len(fieldOrder)+1)
	for _, field := range fieldOrder {
		v, ok := mean[field]
		if !ok {
			v = math.NaN()
		}
		p := RadarPoint{Field: field, Value: v, Plotted: v}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			p.Missing = true
			p.Plotted = 0
			spec.Missing++
		}
		peak = math.Max(peak, p.Plotted)
		points = append(points, p)
	}
	spec.Max = niceCeil(peak)

	n := len(points)
	for i := range points {
		theta := angle(i, n)
		r := 0.0
		if spec.Max > 0 {
			r = math.Max(0, points[i].Plotted) / spec.Max * spec.Radius
		}
		points[i].X, points[i].Y = spec.polar(r, theta)

		ax, ay := spec.polar(spec.Radius, theta)
		lx, ly := spec.polar(spec.Radius+labelOffset, theta)
		spec.Axes = append(spec.Axes, RadarAxis{
			Field: points[i].Field, X: ax, Y: ay,
			LabelX: lx, LabelY: ly, Anchor: anchorFor(theta),
		})
	}
	if n > 0 {
		points = append(points, points[0])
	}
	spec.Points = points

	for k := 1; k <= radarRings; k++ {
		frac := float64(k) / radarRings
		ring := RadarRing{Value: spec.Max * frac, Label: formatTick(spec.Max * frac)}
		var b strings.Builder
		for i := 0; i < n; i++ {
			x, y := spec.polar(spec.Radius*frac, angle(i, n))
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(coord(x, y))
		}
		ring.Points = b.String()
		ring.LabelX, ring.LabelY = spec.polar(spec.Radius*frac, 0)
		spec.Rings = append(spec.Rings, ring)
	}
	return spec
}

// PolygonPoints renders the closed polygon for an SVG points attribute
func (s RadarSpec) PolygonPoints() string {
	parts := make([]string, len(s.Points))
	for i, p := range s.Points {
		parts[i] = coord(p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// polar converts a radius and angle to SVG coordinates. SVG y grows downward.
func (s RadarSpec) polar(r, theta float64) (float64, float64) {
	return round2(s.Center + r*math.Cos(theta)), round2(s.Center - r*math.Sin(theta))
}

// angle starts at east and proceeds counterclockwise.
func angle(i, n int) float64 {
	if n == 0 {
		return 0
	}
	return 2 * math.Pi * float64(i) / float64(n)
}

func anchorFor(theta float64) string {
	c := math.Cos(theta)
	switch {
	case c > 0.1:
		return "start"
	case c < -0.1:
		return "end"
	default:
		return "middle"
	}
}

// niceCeil rounds v up to 1, 2, 2.5 or 5 times a power of ten. Non-positive
// input yields 1 so an all-zero polygon still has a visible axis.
func niceCeil(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 1
	}
	exp := math.Floor(math.Log10(v))
	base := math.Pow(10, exp)
	frac := v / base
	for _, step := range []float64{1, 2, 2.5, 5, 10} {
		if frac <= step+1e-9 {
			return step * base
		}
	}
	return 10 * base
}

func formatTick(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}

func coord(x, y float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64) + "," + strconv.FormatFloat(y, 'f', 2, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

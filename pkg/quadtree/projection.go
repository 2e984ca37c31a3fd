package quadtree

import "math"

// Mercator projects (lat, lon) in degrees onto the plane. Longitude maps
// linearly to x; latitude is stretched by the inverse hyperbolic tangent of
// its sine so that equal map distances correspond to equal angular
// distances near the equator, same as a standard web Mercator projection.
func Mercator(lat, lon float64) (x, y float64) {
	latRad := lat * math.Pi / 180
	lonRad := lon * math.Pi / 180
	return lonRad, math.Atanh(math.Sin(latRad))
}

// InverseMercator undoes Mercator, recovering (lat, lon) in degrees. Used
// by the GeoJSON emitter to turn cell bounds back into map coordinates.
func InverseMercator(x, y float64) (lat, lon float64) {
	lat = math.Atan(math.Sinh(y)) * 180 / math.Pi
	lon = x * 180 / math.Pi
	return lat, lon
}

// MinMaxScaler rescales projected coordinates into [0,1]x[0,1], recording
// the original range so the mapping can be inverted later.
type MinMaxScaler struct {
	XMin, XMax float64
	YMin, YMax float64
}

// NewMinMaxScaler fits a scaler to the bounding box of the given points.
func NewMinMaxScaler(xs, ys []float64) MinMaxScaler {
	s := MinMaxScaler{XMin: math.MaxFloat64, XMax: -math.MaxFloat64, YMin: math.MaxFloat64, YMax: -math.MaxFloat64}
	for i := range xs {
		if xs[i] < s.XMin {
			s.XMin = xs[i]
		}
		if xs[i] > s.XMax {
			s.XMax = xs[i]
		}
		if ys[i] < s.YMin {
			s.YMin = ys[i]
		}
		if ys[i] > s.YMax {
			s.YMax = ys[i]
		}
	}
	return s
}

// Scale maps (x,y) into [0,1]x[0,1] given the fitted range.
func (s MinMaxScaler) Scale(x, y float64) (float64, float64) {
	return (x - s.XMin) / (s.XMax - s.XMin), (y - s.YMin) / (s.YMax - s.YMin)
}

// InverseScale undoes Scale.
func (s MinMaxScaler) InverseScale(x, y float64) (float64, float64) {
	return (s.XMax-s.XMin)*x + s.XMin, (s.YMax-s.YMin)*y + s.YMin
}

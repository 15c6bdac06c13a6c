// Package geometry computes the curved connector arcs drawn between segment
// endpoints and the bounding boxes used to frame them.
//
// All math is planar over (lat, lng). That is an approximation which is good
// enough at the zoom levels the map uses; nothing here is geodesic.
package geometry

import "trajetviz.dev/internal/itinerary"

const (
	DefaultNumPoints       = 50
	DefaultCurvatureFactor = 0.2
)

// CurveConfig controls arc sampling and bow height.
type CurveConfig struct {
	NumPoints       int     `yaml:"num-points" json:"numPoints" validate:"gte=1"`
	CurvatureFactor float64 `yaml:"curvature" json:"curvature"`
}

func DefaultCurveConfig() CurveConfig {
	return CurveConfig{
		NumPoints:       DefaultNumPoints,
		CurvatureFactor: DefaultCurvatureFactor,
	}
}

// Curve samples the arc for this configuration.
func (c CurveConfig) Curve(p1, p2 itinerary.Coord) []itinerary.Coord {
	return Curve(p1, p2, c.CurvatureFactor, c.NumPoints)
}

// ControlPoint returns the quadratic Bezier control point for the arc from p1
// to p2: the midpoint pushed perpendicular to p2-p1 by distance*factor. The
// second result is false when p1 and p2 coincide and no perpendicular exists.
//
// With x = lng and y = lat the perpendicular is (-offset.y, offset.x), so
// swapping p1 and p2 bows the arc to the other side.
func ControlPoint(p1, p2 itinerary.Coord, curvatureFactor float64) (itinerary.Coord, bool) {
	if p1.Equal(p2) {
		return p1, false
	}

	offset := p2.Sub(p1)
	mid := p1.Add(p2).Scale(0.5)
	distance := offset.Norm()

	curvature := distance * curvatureFactor
	k := curvature / distance

	return itinerary.Coord{
		Lat: mid.Lat + offset.Lng*k,
		Lng: mid.Lng - offset.Lat*k,
	}, true
}

// Curve returns numPoints+1 points along the quadratic Bezier arc from p1 to
// p2. The first point is p1 and the last is p2. Coincident endpoints yield a
// stationary path of copies of p1. numPoints below 1 is treated as 1.
func Curve(p1, p2 itinerary.Coord, curvatureFactor float64, numPoints int) []itinerary.Coord {
	if numPoints < 1 {
		numPoints = 1
	}

	points := make([]itinerary.Coord, numPoints+1)

	control, ok := ControlPoint(p1, p2, curvatureFactor)
	if !ok {
		for i := range points {
			points[i] = p1
		}
		return points
	}

	for i := 0; i <= numPoints; i++ {
		t := float64(i) / float64(numPoints)
		t1 := 1 - t

		a := t1 * t1
		b := 2 * t1 * t
		c := t * t

		points[i] = itinerary.Coord{
			Lat: a*p1.Lat + b*control.Lat + c*p2.Lat,
			Lng: a*p1.Lng + b*control.Lng + c*p2.Lng,
		}
	}

	return points
}

package geometry

import (
	"fmt"

	"github.com/twpayne/go-polyline"
	"trajetviz.dev/internal/itinerary"
)

// EncodePolyline encodes points with the Google polyline algorithm
// (precision 5, lat before lng).
func EncodePolyline(points []itinerary.Coord) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lat, p.Lng}
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodePolyline reverses EncodePolyline, up to the encoding's precision.
func DecodePolyline(encoded string) ([]itinerary.Coord, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decode polyline: %d trailing bytes", len(rest))
	}

	points := make([]itinerary.Coord, len(coords))
	for i, c := range coords {
		points[i] = itinerary.Coord{Lat: c[0], Lng: c[1]}
	}
	return points, nil
}

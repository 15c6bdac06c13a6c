package geometry

import (
	"math"

	"trajetviz.dev/internal/itinerary"
)

// Bounds is a lat/lon bounding box. The zero value is empty and grows to the
// first point it is extended with.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
	set    bool
}

// BoundsOf returns the smallest box containing every coordinate.
func BoundsOf(coords ...itinerary.Coord) Bounds {
	var b Bounds
	for _, c := range coords {
		b = b.Extend(c)
	}
	return b
}

func (b Bounds) Extend(c itinerary.Coord) Bounds {
	if !b.set {
		return Bounds{MinLat: c.Lat, MaxLat: c.Lat, MinLon: c.Lng, MaxLon: c.Lng, set: true}
	}
	b.MinLat = math.Min(b.MinLat, c.Lat)
	b.MaxLat = math.Max(b.MaxLat, c.Lat)
	b.MinLon = math.Min(b.MinLon, c.Lng)
	b.MaxLon = math.Max(b.MaxLon, c.Lng)
	return b
}

// Union returns the box covering both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return b.
		Extend(itinerary.Coord{Lat: o.MinLat, Lng: o.MinLon}).
		Extend(itinerary.Coord{Lat: o.MaxLat, Lng: o.MaxLon})
}

func (b Bounds) IsEmpty() bool {
	return !b.set
}

func (b Bounds) Center() itinerary.Coord {
	return itinerary.Coord{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLon + b.MaxLon) / 2,
	}
}

// Array returns [[south, west], [north, east]], the order map clients expect
// for fit-bounds calls.
func (b Bounds) Array() [2][2]float64 {
	return [2][2]float64{{b.MinLat, b.MinLon}, {b.MaxLat, b.MaxLon}}
}

// Pad grows the box on every side by fraction of its span. Empty boxes stay
// empty.
func (b Bounds) Pad(fraction float64) Bounds {
	if b.IsEmpty() {
		return b
	}
	dLat := (b.MaxLat - b.MinLat) * fraction
	dLon := (b.MaxLon - b.MinLon) * fraction
	b.MinLat -= dLat
	b.MaxLat += dLat
	b.MinLon -= dLon
	b.MaxLon += dLon
	return b
}

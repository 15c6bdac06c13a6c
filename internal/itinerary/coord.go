package itinerary

import (
	"encoding/json"
	"fmt"
	"math"
)

// Coord is a (latitude, longitude) pair. Vector helpers treat it as a point
// in the plane; callers rely on that approximation only at map zoom levels
// where it holds.
type Coord struct {
	Lat float64
	Lng float64
}

func (c Coord) Add(o Coord) Coord {
	return Coord{Lat: c.Lat + o.Lat, Lng: c.Lng + o.Lng}
}

func (c Coord) Sub(o Coord) Coord {
	return Coord{Lat: c.Lat - o.Lat, Lng: c.Lng - o.Lng}
}

func (c Coord) Scale(f float64) Coord {
	return Coord{Lat: c.Lat * f, Lng: c.Lng * f}
}

// Norm is the Euclidean length of c over its two components.
func (c Coord) Norm() float64 {
	return math.Hypot(c.Lat, c.Lng)
}

func (c Coord) Equal(o Coord) bool {
	return c.Lat == o.Lat && c.Lng == o.Lng
}

// Array returns the coordinate in the backend's [lat, lng] order.
func (c Coord) Array() [2]float64 {
	return [2]float64{c.Lat, c.Lng}
}

// MarshalJSON encodes the coordinate as [lat, lng].
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Array())
}

// UnmarshalJSON accepts the [lat, lng] array form.
func (c *Coord) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have 2 components, got %d", len(pair))
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

func (c Coord) String() string {
	return fmt.Sprintf("[%g, %g]", c.Lat, c.Lng)
}

package mapview

import (
	"fmt"

	"trajetviz.dev/internal/itinerary"
)

// LayerID is the handle a Surface returns for a drawn layer.
type LayerID int

// Layer is one drawable item. The set is closed: Line and Marker.
type Layer interface {
	isLayer()
}

// Line is a polyline through Points.
type Line struct {
	Points []itinerary.Coord
	Style  LineStyle
}

// Marker is a circle marker with a popup.
type Marker struct {
	At    itinerary.Coord
	Kind  MarkerKind
	Style MarkerStyle
	Popup Popup
}

func (Line) isLayer()   {}
func (Marker) isLayer() {}

// MarkerKind selects a marker's role on the route.
type MarkerKind int

const (
	MarkerStart MarkerKind = iota
	MarkerTransfer
	MarkerEnd
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerStart:
		return "start"
	case MarkerTransfer:
		return "transfer"
	case MarkerEnd:
		return "end"
	default:
		return fmt.Sprintf("MarkerKind(%d)", int(k))
	}
}

// Popup is the text bound to a marker: a bold label, the stop name and the
// clock time, one per line.
type Popup struct {
	Label string `json:"label"`
	Stop  string `json:"stop"`
	Clock string `json:"clock"`
}

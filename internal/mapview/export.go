package mapview

import (
	geojson "github.com/paulmach/go.geojson"
	"trajetviz.dev/internal/geometry"
	"trajetviz.dev/internal/itinerary"
)

// RouteExport is a staged trip rendered off-screen, ready to be shipped to a
// client that draws it with its own map library.
type RouteExport struct {
	Highlight bool                       `json:"highlight"`
	Layers    int                        `json:"layers"`
	Features  *geojson.FeatureCollection `json:"features"`
	Polylines []string                   `json:"polylines"`
	Bounds    geometry.Bounds            `json:"bounds"`
	FitBounds [2][2]float64              `json:"fitBounds"`
	Padding   [2]int                     `json:"padding"`
}

// ExportRoute stages trip on a fresh MemorySurface and returns what ended up
// on it. Polylines holds one encoded arc per segment, in travel order.
func ExportRoute(trip itinerary.Trip, highlight bool, opts Options) (*RouteExport, error) {
	surface := NewMemorySurface()
	mgr, err := NewManager(surface, opts)
	if err != nil {
		return nil, err
	}

	if err := mgr.DisplayTrip(trip, highlight); err != nil {
		_ = mgr.Destroy()
		return nil, err
	}
	if err := mgr.FitTrip(); err != nil {
		_ = mgr.Destroy()
		return nil, err
	}

	export := &RouteExport{
		Highlight: highlight,
		Layers:    len(mgr.CurrentLayers()),
		Features:  surface.FeatureCollection(),
		Polylines: make([]string, 0, len(trip.Segments)),
		Padding:   surface.View().Padding,
	}
	for _, layer := range surface.Layers() {
		if line, ok := layer.(Line); ok {
			export.Polylines = append(export.Polylines, geometry.EncodePolyline(line.Points))
		}
	}
	export.Bounds, _ = mgr.StagedBounds()
	export.FitBounds = mgr.FitBounds().Array()

	// Destroy clears the surface, so it runs after the features are taken.
	if err := mgr.Destroy(); err != nil {
		return nil, err
	}
	return export, nil
}

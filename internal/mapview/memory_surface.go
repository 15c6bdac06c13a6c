package mapview

import (
	"errors"
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"trajetviz.dev/internal/geometry"
	"trajetviz.dev/internal/itinerary"
)

// ErrSurfaceClosed is returned when a closed MemorySurface is closed again.
var ErrSurfaceClosed = errors.New("surface already closed")

// View is the viewport last requested on a MemorySurface.
type View struct {
	Center  itinerary.Coord
	Zoom    float64
	Fit     geometry.Bounds
	Padding [2]int
	Fitted  bool
}

// MemorySurface is a Surface that keeps its layers in memory. It backs the
// HTTP route export and tests. Like the manager it is single-owner.
type MemorySurface struct {
	layers  map[LayerID]Layer
	order   []LayerID
	nextID  LayerID
	view    View
	closed  bool
	added   int
	removed int
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{layers: make(map[LayerID]Layer)}
}

func (s *MemorySurface) AddLayer(layer Layer) LayerID {
	s.nextID++
	id := s.nextID
	s.layers[id] = layer
	s.order = append(s.order, id)
	s.added++
	return id
}

// RemoveLayer drops id. Unknown handles are ignored.
func (s *MemorySurface) RemoveLayer(id LayerID) {
	if _, ok := s.layers[id]; !ok {
		return
	}
	delete(s.layers, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.removed++
}

func (s *MemorySurface) SetView(center itinerary.Coord, zoom float64) {
	s.view = View{Center: center, Zoom: zoom}
}

func (s *MemorySurface) FitBounds(bounds geometry.Bounds, padding [2]int) {
	s.view.Fit = bounds
	s.view.Padding = padding
	s.view.Fitted = true
	s.view.Center = bounds.Center()
}

func (s *MemorySurface) Close() error {
	if s.closed {
		return ErrSurfaceClosed
	}
	s.closed = true
	clear(s.layers)
	s.order = nil
	return nil
}

func (s *MemorySurface) View() View {
	return s.view
}

// LayerIDs returns the live handles in insertion order.
func (s *MemorySurface) LayerIDs() []LayerID {
	out := make([]LayerID, len(s.order))
	copy(out, s.order)
	return out
}

// Layer returns the live layer for id.
func (s *MemorySurface) Layer(id LayerID) (Layer, bool) {
	l, ok := s.layers[id]
	return l, ok
}

// Layers returns the live layers in insertion order.
func (s *MemorySurface) Layers() []Layer {
	out := make([]Layer, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.layers[id])
	}
	return out
}

// Stats reports how many layers were ever added and removed.
func (s *MemorySurface) Stats() (added, removed int) {
	return s.added, s.removed
}

// FeatureCollection exports the live layers as GeoJSON: a LineString per
// arc and a Point per marker, in insertion order. Coordinates follow GeoJSON
// [lng, lat] order; style and popup travel as properties.
func (s *MemorySurface) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, id := range s.order {
		fc.AddFeature(layerFeature(id, s.layers[id]))
	}
	return fc
}

func layerFeature(id LayerID, layer Layer) *geojson.Feature {
	var f *geojson.Feature

	switch l := layer.(type) {
	case Line:
		coords := make([][]float64, len(l.Points))
		for i, p := range l.Points {
			coords[i] = []float64{p.Lng, p.Lat}
		}
		f = geojson.NewLineStringFeature(coords)
		f.SetProperty("layer", "line")
		f.SetProperty("color", l.Style.Color)
		f.SetProperty("weight", l.Style.Weight)
		f.SetProperty("opacity", l.Style.Opacity)
	case Marker:
		f = geojson.NewPointFeature([]float64{l.At.Lng, l.At.Lat})
		f.SetProperty("layer", "marker")
		f.SetProperty("kind", l.Kind.String())
		f.SetProperty("radius", l.Style.Radius)
		f.SetProperty("color", l.Style.Color)
		f.SetProperty("weight", l.Style.Weight)
		f.SetProperty("opacity", l.Style.Opacity)
		f.SetProperty("fillColor", l.Style.FillColor)
		f.SetProperty("fillOpacity", l.Style.FillOpacity)
		f.SetProperty("popupLabel", l.Popup.Label)
		f.SetProperty("popupStop", l.Popup.Stop)
		f.SetProperty("popupClock", l.Popup.Clock)
	default:
		panic(fmt.Sprintf("mapview: unknown layer type %T", layer))
	}

	f.SetProperty("layerId", int(id))
	return f
}

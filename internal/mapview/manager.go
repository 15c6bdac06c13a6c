// Package mapview stages one trip's route on a drawing surface: a curved arc
// per segment plus start, connection and end markers.
//
// A Manager owns its surface and its layer handles exclusively. It takes no
// locks; callers serialize access (one manager per page or per request).
package mapview

import (
	"errors"
	"log/slog"

	"trajetviz.dev/internal/geometry"
	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/timefmt"
)

var (
	// ErrDestroyed is returned by every operation after Destroy.
	ErrDestroyed = errors.New("map manager destroyed")
	// ErrNoSurface is returned when a manager is built without a surface.
	ErrNoSurface = errors.New("map manager requires a drawing surface")
)

// Surface is the drawing substrate the manager renders onto.
type Surface interface {
	AddLayer(layer Layer) LayerID
	RemoveLayer(id LayerID)
	SetView(center itinerary.Coord, zoom float64)
	FitBounds(bounds geometry.Bounds, padding [2]int)
	Close() error
}

// Options configures a Manager.
type Options struct {
	Center        itinerary.Coord
	Zoom          float64
	Curve         geometry.CurveConfig
	Styles        Styles
	Labels        Labels
	BoundsPadding [2]int
	// FitMargin grows the fitted box by this fraction of its span on every
	// side, on top of the pixel padding.
	FitMargin float64
	Logger    *slog.Logger
}

// DefaultOptions centers on metropolitan France.
func DefaultOptions() Options {
	return Options{
		Center:        itinerary.Coord{Lat: 46.603354, Lng: 1.888334},
		Zoom:          5.5,
		Curve:         geometry.DefaultCurveConfig(),
		Styles:        DefaultStyles(),
		Labels:        DefaultLabels(),
		BoundsPadding: [2]int{50, 50},
		FitMargin:     0.05,
	}
}

type staged struct {
	trip      itinerary.Trip
	highlight bool
	bounds    geometry.Bounds
}

// Manager holds the layers of at most one staged trip.
type Manager struct {
	surface   Surface
	opts      Options
	logger    *slog.Logger
	layers    []LayerID
	staged    *staged
	destroyed bool
}

// NewManager sets the surface to the initial view and returns a manager with
// no layers staged.
func NewManager(surface Surface, opts Options) (*Manager, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := &Manager{
		surface: surface,
		opts:    opts,
		logger:  logger.With(slog.String("component", "map_manager")),
	}
	surface.SetView(opts.Center, opts.Zoom)
	return m, nil
}

// ClearLayers removes every staged layer from the surface in creation order.
// It is idempotent and a no-op after Destroy.
func (m *Manager) ClearLayers() {
	if m.destroyed {
		return
	}
	for _, id := range m.layers {
		m.surface.RemoveLayer(id)
	}
	m.layers = m.layers[:0]
	m.staged = nil
}

// DisplayTrip replaces whatever is staged with trip. For n segments it adds
// 2n+1 layers: per segment an arc followed by its arrival marker, with the
// start marker right after the first arc.
func (m *Manager) DisplayTrip(trip itinerary.Trip, highlight bool) error {
	if m.destroyed {
		return ErrDestroyed
	}

	m.ClearLayers()

	if len(trip.Segments) == 0 {
		return itinerary.ErrEmptyTrip
	}

	lineStyle := m.opts.Styles.Line(highlight)
	var bounds geometry.Bounds

	last := len(trip.Segments) - 1
	for i, seg := range trip.Segments {
		points := m.opts.Curve.Curve(seg.DepCoord, seg.ArrCoord)
		bounds = bounds.Union(geometry.BoundsOf(points...))

		m.add(Line{
			Points: points,
			Style:  lineStyle,
		})

		if i == 0 {
			m.add(m.marker(MarkerStart, seg.DepCoord, seg.From, seg.BoardTime))
		}

		kind := MarkerTransfer
		if i == last {
			kind = MarkerEnd
		}
		m.add(m.marker(kind, seg.ArrCoord, seg.To, seg.ArrivalTime))
	}

	m.staged = &staged{trip: trip, highlight: highlight, bounds: bounds}

	m.logger.Debug("trip staged",
		slog.String("from", trip.DepartureStop),
		slog.String("to", trip.ArrivalStop),
		slog.Int("segments", len(trip.Segments)),
		slog.Int("layers", len(m.layers)),
		slog.Bool("highlight", highlight))

	return nil
}

func (m *Manager) marker(kind MarkerKind, at itinerary.Coord, stop string, minutes int) Marker {
	return Marker{
		At:    at,
		Kind:  kind,
		Style: m.opts.Styles.Marker(kind),
		Popup: Popup{
			Label: m.opts.Labels.For(kind),
			Stop:  stop,
			Clock: timefmt.FormatClock(minutes),
		},
	}
}

func (m *Manager) add(layer Layer) {
	m.layers = append(m.layers, m.surface.AddLayer(layer))
}

// ResetView returns the surface to the configured center and zoom. Staged
// layers are left in place.
func (m *Manager) ResetView() error {
	if m.destroyed {
		return ErrDestroyed
	}
	m.surface.SetView(m.opts.Center, m.opts.Zoom)
	return nil
}

// FitTrip frames the staged trip, widened by the fit margin, using the
// configured padding. With nothing staged it does nothing.
func (m *Manager) FitTrip() error {
	if m.destroyed {
		return ErrDestroyed
	}
	if m.staged == nil {
		return nil
	}
	m.surface.FitBounds(m.FitBounds(), m.opts.BoundsPadding)
	return nil
}

// Destroy clears all layers and closes the surface. The manager must not be
// used afterwards.
func (m *Manager) Destroy() error {
	if m.destroyed {
		return ErrDestroyed
	}
	m.ClearLayers()
	m.destroyed = true
	m.logger.Debug("map manager destroyed")
	return m.surface.Close()
}

// CurrentLayers returns a copy of the staged handles in creation order.
func (m *Manager) CurrentLayers() []LayerID {
	out := make([]LayerID, len(m.layers))
	copy(out, m.layers)
	return out
}

// Staged reports the trip currently on the surface, if any.
func (m *Manager) Staged() (trip itinerary.Trip, highlight bool, ok bool) {
	if m.staged == nil {
		return itinerary.Trip{}, false, false
	}
	return m.staged.trip, m.staged.highlight, true
}

// FitBounds is the staged bounds widened by the fit margin, the box FitTrip
// frames. It is empty when nothing is staged.
func (m *Manager) FitBounds() geometry.Bounds {
	if m.staged == nil {
		return geometry.Bounds{}
	}
	return m.staged.bounds.Pad(m.opts.FitMargin)
}

// StagedBounds is the bounding box of the staged trip's arcs, which bulge
// past the stops they join.
func (m *Manager) StagedBounds() (geometry.Bounds, bool) {
	if m.staged == nil {
		return geometry.Bounds{}, false
	}
	return m.staged.bounds, true
}

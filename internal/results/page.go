// Package results drives the results page: hovering a card previews its
// route, and opening a card's details pins the highlighted route until the
// panel closes. At most one details panel is open at a time.
package results

import (
	"errors"
	"fmt"
	"log/slog"

	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/mapview"
)

var ErrNoSuchTrip = errors.New("no such trip")

// Page holds the trip list, the map manager and the open-panel state.
type Page struct {
	trips  []itinerary.Trip
	mapMgr *mapview.Manager
	open   int
	logger *slog.Logger
}

func NewPage(mapMgr *mapview.Manager, logger *slog.Logger) *Page {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Page{
		mapMgr: mapMgr,
		open:   -1,
		logger: logger.With(slog.String("component", "results_page")),
	}
}

// Attach binds the displayed trips, closing any open panel and clearing the
// map.
func (p *Page) Attach(trips []itinerary.Trip) {
	p.trips = trips
	p.open = -1
	p.mapMgr.ClearLayers()
	p.logger.Debug("trips attached", slog.Int("count", len(trips)))
}

func (p *Page) Trips() []itinerary.Trip {
	return p.trips
}

func (p *Page) trip(i int) (itinerary.Trip, error) {
	if i < 0 || i >= len(p.trips) {
		return itinerary.Trip{}, fmt.Errorf("trip %d of %d: %w", i, len(p.trips), ErrNoSuchTrip)
	}
	return p.trips[i], nil
}

// HoverEnter previews trip i with the default line style.
func (p *Page) HoverEnter(i int) error {
	trip, err := p.trip(i)
	if err != nil {
		return err
	}
	return p.mapMgr.DisplayTrip(trip, false)
}

// HoverLeave clears the map unless trip i's details are open.
func (p *Page) HoverLeave(i int) error {
	if _, err := p.trip(i); err != nil {
		return err
	}
	if p.open == i {
		return nil
	}
	p.mapMgr.ClearLayers()
	return nil
}

// ToggleDetails opens or closes trip i's panel. Opening closes any other
// panel, resets the view and pins the highlighted route. Closing clears the
// map and resets the view.
func (p *Page) ToggleDetails(i int) error {
	trip, err := p.trip(i)
	if err != nil {
		return err
	}

	if p.open == i {
		p.open = -1
		p.mapMgr.ClearLayers()
		return p.mapMgr.ResetView()
	}

	p.open = i
	if err := p.mapMgr.ResetView(); err != nil {
		return err
	}
	return p.mapMgr.DisplayTrip(trip, true)
}

// OpenPanel returns the index of the open details panel, if any.
func (p *Page) OpenPanel() (int, bool) {
	return p.open, p.open >= 0
}

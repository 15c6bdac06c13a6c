package app

import (
	"log/slog"
	"sync"

	"trajetviz.dev/internal/appconf"
	"trajetviz.dev/internal/cards"
	"trajetviz.dev/internal/clock"
	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/metrics"
	"trajetviz.dev/internal/searchclient"
)

// Application holds the dependencies shared by the HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config  appconf.Config
	Viz     appconf.VizConfig
	Logger  *slog.Logger
	Clock   clock.Clock
	Metrics *metrics.Metrics
	Search  *searchclient.Client
	Cards   *cards.Renderer

	mu         sync.RWMutex
	lastSearch *SearchRecord
}

// SearchRecord is the most recent successful search, kept for the debug page.
type SearchRecord struct {
	Query searchclient.Query
	Trips []itinerary.Trip
}

func (app *Application) RecordSearch(q searchclient.Query, trips []itinerary.Trip) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.lastSearch = &SearchRecord{Query: q, Trips: trips}
}

func (app *Application) LastSearch() (SearchRecord, bool) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	if app.lastSearch == nil {
		return SearchRecord{}, false
	}
	return *app.lastSearch, true
}

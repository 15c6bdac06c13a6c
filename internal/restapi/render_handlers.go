package restapi

import (
	"bytes"
	"errors"
	"net/http"

	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/mapview"
	"trajetviz.dev/internal/models"
	"trajetviz.dev/internal/timeline"
)

// renderCardsHandler renders a backend search payload ({"trajets": [...]})
// into card markup.
func (api *RestAPI) renderCardsHandler(w http.ResponseWriter, r *http.Request) {
	var payload itinerary.SearchResponse
	if err := decodeJSONBody(w, r, &payload); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {err.Error()}})
		return
	}

	trips, err := payload.Trips()
	if err != nil {
		api.validationErrorResponse(w, r, itinerary.ValidationErrors(err))
		return
	}

	var buf bytes.Buffer
	if err := api.Cards.WriteAll(&buf, trips); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	if api.Metrics != nil {
		api.Metrics.TripsRendered.WithLabelValues("cards").Add(float64(len(trips)))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// renderDetailsHandler composes the detail timeline of one trip.
func (api *RestAPI) renderDetailsHandler(w http.ResponseWriter, r *http.Request) {
	trip, ok := api.decodeTrip(w, r)
	if !ok {
		return
	}

	details := timeline.Compose(trip)
	if api.Metrics != nil {
		api.Metrics.TripsRendered.WithLabelValues("details").Inc()
	}
	api.sendResponse(w, r, models.NewEntryResponse(details, api.Clock))
}

// renderRouteHandler stages one trip off-screen and returns its layers as
// GeoJSON, per-segment encoded polylines and the bounds to fit.
func (api *RestAPI) renderRouteHandler(w http.ResponseWriter, r *http.Request) {
	highlight, err := boolParam(r, "highlight")
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"highlight": {err.Error()}})
		return
	}

	trip, ok := api.decodeTrip(w, r)
	if !ok {
		return
	}

	export, err := mapview.ExportRoute(trip, highlight, api.Viz.ManagerOptions(api.Logger))
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	if api.Metrics != nil {
		api.Metrics.TripsRendered.WithLabelValues("route").Inc()
		api.Metrics.LayersStaged.Observe(float64(export.Layers))
	}
	api.sendResponse(w, r, models.NewEntryResponse(export, api.Clock))
}

// decodeTrip reads one trip in the backend wire shape. With ?strict=true a
// trip that breaks an invariant is rejected with 422. It writes the error
// response itself and reports whether the handler should continue.
func (api *RestAPI) decodeTrip(w http.ResponseWriter, r *http.Request) (itinerary.Trip, bool) {
	strict, err := boolParam(r, "strict")
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"strict": {err.Error()}})
		return itinerary.Trip{}, false
	}

	var raw itinerary.RawTrip
	if err := decodeJSONBody(w, r, &raw); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {err.Error()}})
		return itinerary.Trip{}, false
	}

	trip, err := raw.ToTrip()
	if err != nil {
		if errors.Is(err, itinerary.ErrEmptyTrip) {
			api.validationErrorResponse(w, r, map[string][]string{"segments": {err.Error()}})
		} else {
			api.validationErrorResponse(w, r, itinerary.ValidationErrors(err))
		}
		return itinerary.Trip{}, false
	}

	if strict {
		if violations := trip.Check(); len(violations) > 0 {
			api.sendErrorWithData(w, r, http.StatusUnprocessableEntity, "trip invariants violated", map[string]any{
				"violations": violations,
			})
			return itinerary.Trip{}, false
		}
	}
	return trip, true
}

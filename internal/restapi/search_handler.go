package restapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"trajetviz.dev/internal/clock"
	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/logging"
	"trajetviz.dev/internal/models"
	"trajetviz.dev/internal/searchclient"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SearchRequest is the body of POST /api/search.json. Date is optional and
// defaults to the current minute.
type SearchRequest struct {
	Depart  string `json:"depart" validate:"required"`
	Arrivee string `json:"arrivee" validate:"required"`
	Date    string `json:"date"`
}

func (api *RestAPI) searchHandler(w http.ResponseWriter, r *http.Request) {
	strict, err := boolParam(r, "strict")
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"strict": {err.Error()}})
		return
	}

	var req SearchRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {err.Error()}})
		return
	}
	req.Depart = strings.TrimSpace(req.Depart)
	req.Arrivee = strings.TrimSpace(req.Arrivee)
	if err := validate.Struct(req); err != nil {
		api.validationErrorResponse(w, r, itinerary.ValidationErrors(err))
		return
	}

	q := searchclient.Query{Depart: req.Depart, Arrivee: req.Arrivee, Date: clock.SearchTime(api.Clock)}
	if req.Date != "" {
		date, err := clock.ParseSearchTime(req.Date, api.Clock.Now().Location())
		if err != nil {
			api.validationErrorResponse(w, r, map[string][]string{"date": {err.Error()}})
			return
		}
		q.Date = date
	}

	resp, err := api.Search.Search(r.Context(), q)
	if err != nil {
		api.backendErrorResponse(w, r, err)
		return
	}

	trips, err := resp.Trips()
	if err != nil {
		logging.LogError(api.logger(r), "search backend returned malformed trips", err)
		api.sendErrorWithData(w, r, http.StatusBadGateway, api.Viz.Messages.SearchError, map[string]any{
			"fieldErrors": itinerary.ValidationErrors(err),
		})
		return
	}

	if strict {
		if violations := collectViolations(trips); len(violations) > 0 {
			api.sendErrorWithData(w, r, http.StatusUnprocessableEntity, "trip invariants violated", map[string]any{
				"violations": violations,
			})
			return
		}
	}

	api.RecordSearch(q, trips)
	if api.Metrics != nil {
		api.Metrics.TripsRendered.WithLabelValues("search").Add(float64(len(trips)))
	}

	message := resp.Message
	if len(trips) == 0 {
		message = api.Viz.Messages.NoResults
	}

	api.logger(r).Debug("search served",
		slog.String("depart", q.Depart),
		slog.String("arrivee", q.Arrivee),
		slog.Int("trips", len(trips)))

	api.sendResponse(w, r, models.NewEntryResponse(models.NewSearchResult(message, trips), api.Clock))
}

// backendErrorResponse maps a failed backend call to 502, or 504 when the
// call ran out of time.
func (api *RestAPI) backendErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.logger(r), "search backend call failed", err)

	var backendErr *searchclient.BackendError
	switch {
	case errors.As(err, &backendErr) && backendErr.Message != "":
		api.sendError(w, r, http.StatusBadGateway, backendErr.Message)
	case isTimeout(err):
		api.sendError(w, r, http.StatusGatewayTimeout, api.Viz.Messages.SearchError)
	default:
		api.sendError(w, r, http.StatusBadGateway, api.Viz.Messages.SearchError)
	}
}

// collectViolations keys every trip's invariant violations by its index.
func collectViolations(trips []itinerary.Trip) map[int][]itinerary.Violation {
	out := map[int][]itinerary.Violation{}
	for i, trip := range trips {
		if v := trip.Check(); len(v) > 0 {
			out[i] = v
		}
	}
	return out
}

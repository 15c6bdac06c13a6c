package webui

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	geojson "github.com/paulmach/go.geojson"
	"trajetviz.dev/internal/appconf"
	"trajetviz.dev/internal/clock"
	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/logging"
	"trajetviz.dev/internal/mapview"
	"trajetviz.dev/internal/results"
	"trajetviz.dev/internal/searchclient"
)

//go:embed templates/results.html
var resultsFS embed.FS

var resultsTemplate = template.Must(template.ParseFS(resultsFS, "templates/results.html"))

// tripRoutes carries both renderings of a trip so the page can switch
// between hover preview and pinned highlight without a round trip.
type tripRoutes struct {
	Preview *mapview.RouteExport `json:"preview"`
	Pinned  *mapview.RouteExport `json:"pinned"`
}

type mapSettings struct {
	Center    itinerary.Coord   `json:"center"`
	Zoom      float64           `json:"zoom"`
	TileLayer appconf.TileLayer `json:"tileLayer"`
}

type resultsView struct {
	Depart    string
	Arrivee   string
	Date      string
	Message   string
	Cards     template.HTML
	HasTrips  bool
	Map       mapSettings
	Routes    []tripRoutes
	Initial   *geojson.FeatureCollection
	OpenIndex int
}

// resultsHandler runs a search and renders the whole results page. The
// optional open and hover parameters (trip indexes) set the initial page
// state; open wins when both are given.
func (webUI *WebUI) resultsHandler(w http.ResponseWriter, r *http.Request) {
	logger := webUI.Logger.With(slog.String("component", "results_page"))
	query := r.URL.Query()

	view := resultsView{
		Depart:    strings.TrimSpace(query.Get("depart")),
		Arrivee:   strings.TrimSpace(query.Get("arrivee")),
		Date:      strings.TrimSpace(query.Get("date")),
		Map:       mapSettings{Center: webUI.Viz.Center, Zoom: webUI.Viz.Zoom, TileLayer: webUI.Viz.TileLayer},
		Routes:    []tripRoutes{},
		OpenIndex: -1,
	}

	if view.Depart == "" || view.Arrivee == "" {
		view.Message = webUI.Viz.Messages.FillAllFields
		webUI.renderResults(w, logger, http.StatusBadRequest, view)
		return
	}

	q := searchclient.Query{Depart: view.Depart, Arrivee: view.Arrivee, Date: clock.SearchTime(webUI.Clock)}
	if view.Date != "" {
		date, err := clock.ParseSearchTime(view.Date, webUI.Clock.Now().Location())
		if err != nil {
			view.Message = webUI.Viz.Messages.FillAllFields
			webUI.renderResults(w, logger, http.StatusBadRequest, view)
			return
		}
		q.Date = date
	}

	trips, err := webUI.search(r, q)
	if err != nil {
		logging.LogError(logger, "search failed", err)
		view.Message = webUI.Viz.Messages.SearchError
		var backendErr *searchclient.BackendError
		if errors.As(err, &backendErr) && backendErr.Message != "" {
			view.Message = backendErr.Message
		}
		webUI.renderResults(w, logger, http.StatusBadGateway, view)
		return
	}
	webUI.RecordSearch(q, trips)

	cardsHTML, err := webUI.Cards.RenderAll(trips)
	if err != nil {
		logging.LogError(logger, "failed to render cards", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.Cards = template.HTML(cardsHTML)
	view.HasTrips = len(trips) > 0

	opts := webUI.Viz.ManagerOptions(logger)
	for _, trip := range trips {
		preview, err := mapview.ExportRoute(trip, false, opts)
		if err != nil {
			logging.LogError(logger, "failed to export route", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		pinned, err := mapview.ExportRoute(trip, true, opts)
		if err != nil {
			logging.LogError(logger, "failed to export route", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		view.Routes = append(view.Routes, tripRoutes{Preview: preview, Pinned: pinned})
	}

	initial, open, err := initialState(trips, opts, logger, query.Get("open"), query.Get("hover"))
	if err != nil {
		logging.LogError(logger, "failed to stage initial page state", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.Initial = initial
	view.OpenIndex = open

	if webUI.Metrics != nil {
		webUI.Metrics.TripsRendered.WithLabelValues("page").Add(float64(len(trips)))
	}

	webUI.renderResults(w, logger, http.StatusOK, view)
}

func (webUI *WebUI) search(r *http.Request, q searchclient.Query) ([]itinerary.Trip, error) {
	resp, err := webUI.Search.Search(r.Context(), q)
	if err != nil {
		return nil, err
	}
	return resp.Trips()
}

// initialState replays the requested interaction on a results page and
// returns what the map shows afterwards. Indexes that do not parse or are out
// of range are ignored.
func initialState(trips []itinerary.Trip, opts mapview.Options, logger *slog.Logger, open, hover string) (*geojson.FeatureCollection, int, error) {
	surface := mapview.NewMemorySurface()
	mgr, err := mapview.NewManager(surface, opts)
	if err != nil {
		return nil, -1, err
	}
	defer func() { _ = mgr.Destroy() }()

	page := results.NewPage(mgr, logger)
	page.Attach(trips)

	if i, err := strconv.Atoi(open); err == nil {
		err = page.ToggleDetails(i)
		if err != nil && !errors.Is(err, results.ErrNoSuchTrip) {
			return nil, -1, err
		}
	} else if i, err := strconv.Atoi(hover); err == nil {
		err = page.HoverEnter(i)
		if err != nil && !errors.Is(err, results.ErrNoSuchTrip) {
			return nil, -1, err
		}
	}

	openIndex, ok := page.OpenPanel()
	if !ok {
		openIndex = -1
	}
	return surface.FeatureCollection(), openIndex, nil
}

func (webUI *WebUI) renderResults(w http.ResponseWriter, logger *slog.Logger, status int, view resultsView) {
	var buf bytes.Buffer
	if err := resultsTemplate.Execute(&buf, view); err != nil {
		logging.LogError(logger, "failed to execute results template", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

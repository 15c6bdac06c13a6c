package restapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"trajetviz.dev/internal/app"
	"trajetviz.dev/internal/appconf"
	"trajetviz.dev/internal/cards"
	"trajetviz.dev/internal/clock"
	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/itinerary/itinerarytest"
	"trajetviz.dev/internal/metrics"
	"trajetviz.dev/internal/models"
	"trajetviz.dev/internal/searchclient"
)

const testAPIKey = "TEST"

// newFakeBackend serves the journey search contract: "/" for liveness,
// "/stations" and "/search" answering with trips.
func newFakeBackend(t *testing.T, trips ...itinerary.Trip) *httptest.Server {
	t.Helper()

	raw := make([]itinerary.RawTrip, len(trips))
	for i, trip := range trips {
		raw[i] = itinerary.FromTrip(trip)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Serveur actif !"})
	})
	mux.HandleFunc("GET /stations", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":   "success",
			"stations": []string{"Lyon", "Marseille", "Paris"},
		})
	})
	mux.HandleFunc("POST /search", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(itinerary.SearchResponse{
			Status:  "success",
			Message: "trajets trouvés",
			Trajets: raw,
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	return createTestApiWithClock(t, clock.RealClock{})
}

func createTestApiWithClock(t *testing.T, c clock.Clock) *RestAPI {
	t.Helper()
	backend := newFakeBackend(t, itinerarytest.Direct(), itinerarytest.OneTransfer())
	return createTestApiWithBackend(t, backend.URL, c)
}

// createTestApiWithBackend builds an API against backendURL; each tweak edits
// the config before the API is built.
func createTestApiWithBackend(t *testing.T, backendURL string, c clock.Clock, tweaks ...func(*appconf.Config)) *RestAPI {
	t.Helper()

	viz := appconf.DefaultVizConfig()
	renderer, err := cards.NewRenderer(viz.Messages.CardTexts())
	require.NoError(t, err)

	cfg := appconf.Config{
		Env:       appconf.Test,
		ApiKeys:   []string{testAPIKey},
		RateLimit: 100,
	}
	for _, tweak := range tweaks {
		tweak(&cfg)
	}

	m := metrics.New()
	application := &app.Application{
		Config:  cfg,
		Viz:     viz,
		Logger:  slog.New(slog.DiscardHandler),
		Clock:   c,
		Metrics: m,
		Search:  searchclient.New(backendURL, searchclient.WithTimeout(2*time.Second), searchclient.WithObserver(m)),
		Cards:   renderer,
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

func newTestServer(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// wrappedRoutes is api's routes behind the same middleware as the real
// server. Serving it in process keeps log assertions free of races.
func wrappedRoutes(api *RestAPI) http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	return api.WrapServer(mux)
}

// serveWrapped sends one request through wrappedRoutes.
func serveWrapped(t *testing.T, handler http.Handler, method, target string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	for name, values := range header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	t.Helper()
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	server := newTestServer(t, api)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	return resp, model
}

// postEndpoint posts body (marshalled unless already []byte) and returns the
// raw response; the caller closes it.
func postEndpoint(t *testing.T, api *RestAPI, endpoint string, body any) *http.Response {
	t.Helper()
	server := newTestServer(t, api)

	var payload []byte
	switch b := body.(type) {
	case []byte:
		payload = b
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	resp, err := http.Post(server.URL+endpoint, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeModel(t *testing.T, resp *http.Response) models.ResponseModel {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	return model
}

// entryOf returns data.entry as a generic map.
func entryOf(t *testing.T, model models.ResponseModel) map[string]any {
	t.Helper()
	data, ok := model.Data.(map[string]any)
	require.True(t, ok, "data is %T", model.Data)
	entry, ok := data["entry"].(map[string]any)
	require.True(t, ok, "entry is %T", data["entry"])
	return entry
}

package webui

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"trajetviz.dev/internal/app"
	"trajetviz.dev/internal/appconf"
	"trajetviz.dev/internal/cards"
	"trajetviz.dev/internal/clock"
	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/metrics"
	"trajetviz.dev/internal/searchclient"
)

func newSearchBackend(t *testing.T, trips ...itinerary.Trip) *httptest.Server {
	t.Helper()
	raw := make([]itinerary.RawTrip, len(trips))
	for i, trip := range trips {
		raw[i] = itinerary.FromTrip(trip)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(itinerary.SearchResponse{Status: "success", Trajets: raw})
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestWebUI(t *testing.T, backendURL string, env appconf.Environment) *WebUI {
	t.Helper()
	viz := appconf.DefaultVizConfig()
	renderer, err := cards.NewRenderer(viz.Messages.CardTexts())
	require.NoError(t, err)

	return &WebUI{Application: &app.Application{
		Config:  appconf.Config{Env: env, ApiKeys: []string{"secret-key"}},
		Viz:     viz,
		Logger:  slog.New(slog.DiscardHandler),
		Clock:   clock.RealClock{},
		Metrics: metrics.New(),
		Search:  searchclient.New(backendURL),
		Cards:   renderer,
	}}
}

// scriptJSON extracts and decodes the JSON island with the given id.
func scriptJSON(t *testing.T, html, id string, dst any) {
	t.Helper()
	open := `<script type="application/json" id="` + id + `">`
	start := strings.Index(html, open)
	require.GreaterOrEqual(t, start, 0, "script %s not found", id)
	rest := html[start+len(open):]
	end := strings.Index(rest, "</script>")
	require.GreaterOrEqual(t, end, 0)
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), dst))
}

package webui

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"trajetviz.dev/internal/app"
	"trajetviz.dev/internal/appconf"
	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/itinerary/itinerarytest"
	"trajetviz.dev/internal/searchclient"
)

func TestDebugIndexHandler_ProductionReturns404(t *testing.T) {
	webUI := &WebUI{
		Application: &app.Application{
			Config: appconf.Config{Env: appconf.Production},
		},
	}

	req, _ := http.NewRequest("GET", "/debug?dataType=config", nil)
	rr := httptest.NewRecorder()

	webUI.debugIndexHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code, "Should return 404 in Production")
}

func TestDebugIndexHandler_DataTypes(t *testing.T) {
	webUI := newTestWebUI(t, "http://127.0.0.1:1", appconf.Development)

	tests := []struct {
		dataType string
		title    string
		contains string
	}{
		{"config", "Application - Config", "&lt;redacted&gt;"},
		{"map", "Application - Map configuration", "tile.openstreetmap.org"},
		{"last_search", "Search - Last result", "No search has been served yet."},
		{"", "Choose a data type", "config, map, last_search"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/debug?dataType="+tt.dataType, nil)
			rr := httptest.NewRecorder()

			webUI.debugIndexHandler(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "text/html", rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Body.String(), tt.title)
			assert.Contains(t, rr.Body.String(), tt.contains)
		})
	}
}

func TestDebugIndexHandler_ConfigHidesKeys(t *testing.T) {
	webUI := newTestWebUI(t, "http://127.0.0.1:1", appconf.Development)

	req := httptest.NewRequest(http.MethodGet, "/debug?dataType=config", nil)
	rr := httptest.NewRecorder()
	webUI.debugIndexHandler(rr, req)

	assert.NotContains(t, rr.Body.String(), "secret-key")
	assert.Equal(t, []string{"secret-key"}, webUI.Config.ApiKeys, "redaction works on a copy")
}

func TestDebugIndexHandler_LastSearch(t *testing.T) {
	webUI := newTestWebUI(t, "http://127.0.0.1:1", appconf.Development)
	webUI.RecordSearch(searchclient.Query{
		Depart:  "Paris",
		Arrivee: "Marseille",
		Date:    time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}, []itinerary.Trip{itinerarytest.OneTransfer()})

	req := httptest.NewRequest(http.MethodGet, "/debug?dataType=last_search", nil)
	rr := httptest.NewRecorder()
	webUI.debugIndexHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Marseille")
	assert.NotContains(t, rr.Body.String(), "No search has been served yet.")
}

package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trajetviz.dev/internal/clock"
)

func TestStationsHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/stations.json?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := model.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Lyon", "Marseille", "Paris"}, data["list"])
	assert.Equal(t, false, data["limitExceeded"])
}

func TestStationsHandlerBackendDown(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer backend.Close()

	api := createTestApiWithBackend(t, backend.URL, clock.RealClock{})
	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/stations.json?key=TEST")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, api.Viz.Messages.StationsLoadError, model.Text)
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))
}

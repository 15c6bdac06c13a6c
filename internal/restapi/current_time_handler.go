package restapi

import (
	"net/http"

	"trajetviz.dev/internal/clock"
	"trajetviz.dev/internal/models"
)

// currentTimeHandler reports the server clock and the default departure
// time a search without a date uses.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	timeData := models.NewCurrentTimeData(api.Clock.Now(), clock.SearchTime(api.Clock))
	api.sendResponse(w, r, models.NewEntryResponse(timeData, api.Clock))
}

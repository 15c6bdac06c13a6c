package restapi

import (
	"net/http"

	"trajetviz.dev/internal/logging"
	"trajetviz.dev/internal/models"
)

func (api *RestAPI) stationsHandler(w http.ResponseWriter, r *http.Request) {
	stations, err := api.Search.Stations(r.Context())
	if err != nil {
		logging.LogError(api.logger(r), "failed to load stations", err)
		api.sendError(w, r, http.StatusBadGateway, api.Viz.Messages.StationsLoadError)
		return
	}
	api.sendResponse(w, r, models.NewListResponse(stations, api.Clock))
}

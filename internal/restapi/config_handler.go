package restapi

import (
	"net/http"

	"trajetviz.dev/internal/models"
)

func (api *RestAPI) configHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewEntryResponse(models.NewConfigModel(api.Viz), api.Clock))
}

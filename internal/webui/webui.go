// Package webui serves the server-rendered results page, its static assets
// and the development debug dumps.
package webui

import (
	"net/http"

	"trajetviz.dev/internal/app"
)

type WebUI struct {
	*app.Application
}

func (webUI *WebUI) SetWebUIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /results", webUI.resultsHandler)
	mux.HandleFunc("GET /static/{file}", webUI.staticHandler)
	mux.HandleFunc("GET /debug", webUI.debugIndexHandler)
}

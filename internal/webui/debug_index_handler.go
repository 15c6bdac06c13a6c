package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"trajetviz.dev/internal/appconf"
)

//go:embed templates/debug_index.html
var debugFS embed.FS

var debugTemplate = template.Must(template.ParseFS(debugFS, "templates/debug_index.html"))

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	if err := debugTemplate.Execute(w, dataStruct); err != nil {
		slog.Error("failed to execute debug template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.Config.Env == appconf.Production {
		http.NotFound(w, r)
		return
	}
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "config":
		cfg := webUI.Config
		cfg.ApiKeys = redact(cfg.ApiKeys)
		data = cfg
		title = "Application - Config"
	case "map":
		data = webUI.Viz
		title = "Application - Map configuration"
	case "last_search":
		record, ok := webUI.LastSearch()
		if !ok {
			data = map[string]string{"info": "No search has been served yet."}
		} else {
			data = record
		}
		title = "Search - Last result"
	default:
		data = map[string]string{
			"error": "Please use one of the following: config, map, last_search.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}

func redact(keys []string) []string {
	out := make([]string, len(keys))
	for i := range keys {
		out[i] = "<redacted>"
	}
	return out
}

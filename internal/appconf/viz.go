package appconf

import (
	"log/slog"

	"trajetviz.dev/internal/cards"
	"trajetviz.dev/internal/geometry"
	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/mapview"
)

// TileLayer describes the basemap tiles a client should load.
type TileLayer struct {
	URL         string `yaml:"url" json:"url" validate:"required"`
	Attribution string `yaml:"attribution" json:"attribution"`
	MaxZoom     int    `yaml:"max-zoom" json:"maxZoom" validate:"gte=0,lte=24"`
}

// Messages are the user-facing strings of the results page.
type Messages struct {
	SearchInProgress  string `yaml:"search-in-progress" json:"searchInProgress"`
	SearchError       string `yaml:"search-error" json:"searchError"`
	NoResults         string `yaml:"no-results" json:"noResults" validate:"required"`
	FillAllFields     string `yaml:"fill-all-fields" json:"fillAllFields"`
	StationsLoadError string `yaml:"stations-load-error" json:"stationsLoadError"`
	ShowDetails       string `yaml:"show-details" json:"showDetails"`
	HideDetails       string `yaml:"hide-details" json:"hideDetails"`
	ConnectionAt      string `yaml:"connection-at" json:"connectionAt"`
}

// CardTexts returns the strings the card renderer needs.
func (m Messages) CardTexts() cards.Texts {
	return cards.Texts{
		NoResults:    m.NoResults,
		ShowDetails:  m.ShowDetails,
		HideDetails:  m.HideDetails,
		ConnectionAt: m.ConnectionAt,
	}
}

// VizConfig is everything the renderers and the map manager read. It is
// served to clients as-is from /api/config.json.
type VizConfig struct {
	Center        itinerary.Coord      `yaml:"center" json:"center"`
	Zoom          float64              `yaml:"zoom" json:"zoom" validate:"gte=0"`
	TileLayer     TileLayer            `yaml:"tile-layer" json:"tileLayer"`
	Curve         geometry.CurveConfig `yaml:"curve" json:"curve"`
	Styles        mapview.Styles       `yaml:"styles" json:"styles"`
	Labels        mapview.Labels       `yaml:"labels" json:"labels"`
	BoundsPadding [2]int               `yaml:"bounds-padding" json:"boundsPadding"`
	FitMargin     float64              `yaml:"fit-margin" json:"fitMargin" validate:"gte=0,lte=1"`
	Messages      Messages             `yaml:"messages" json:"messages"`
}

func DefaultVizConfig() VizConfig {
	opts := mapview.DefaultOptions()
	texts := cards.DefaultTexts()
	return VizConfig{
		Center: opts.Center,
		Zoom:   opts.Zoom,
		TileLayer: TileLayer{
			URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: "&copy; <a href='https://www.openstreetmap.org/copyright'>OpenStreetMap</a> contributors",
			MaxZoom:     19,
		},
		Curve:         opts.Curve,
		Styles:        opts.Styles,
		Labels:        opts.Labels,
		BoundsPadding: opts.BoundsPadding,
		FitMargin:     opts.FitMargin,
		Messages: Messages{
			SearchInProgress:  "Searching...",
			SearchError:       "Something went wrong during the search. Please try again.",
			NoResults:         texts.NoResults,
			FillAllFields:     "Please fill in all fields.",
			StationsLoadError: "Unable to load the station list.",
			ShowDetails:       texts.ShowDetails,
			HideDetails:       texts.HideDetails,
			ConnectionAt:      texts.ConnectionAt,
		},
	}
}

// ManagerOptions builds the map manager options for this configuration.
func (v VizConfig) ManagerOptions(logger *slog.Logger) mapview.Options {
	return mapview.Options{
		Center:        v.Center,
		Zoom:          v.Zoom,
		Curve:         v.Curve,
		Styles:        v.Styles,
		Labels:        v.Labels,
		BoundsPadding: v.BoundsPadding,
		FitMargin:     v.FitMargin,
		Logger:        logger,
	}
}

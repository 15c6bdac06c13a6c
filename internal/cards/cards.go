// Package cards renders the list of trip cards, each with its collapsible
// details timeline.
package cards

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/timefmt"
	"trajetviz.dev/internal/timeline"
)

//go:embed templates/cards.html
var templateFS embed.FS

// Texts are the user-visible strings of a card list.
type Texts struct {
	NoResults    string
	ShowDetails  string
	HideDetails  string
	ConnectionAt string
}

func DefaultTexts() Texts {
	return Texts{
		NoResults:    "No itineraries found for this search.",
		ShowDetails:  "Show details",
		HideDetails:  "Hide details",
		ConnectionAt: "Connection at",
	}
}

type cardView struct {
	Index          int
	DepartureClock string
	ArrivalClock   string
	DepartureStop  string
	ArrivalStop    string
	Details        timeline.Details
	Texts          Texts
}

type listView struct {
	Cards []cardView
	Texts Texts
}

// Renderer turns trips into card markup. It is safe for concurrent use.
type Renderer struct {
	tmpl  *template.Template
	texts Texts
}

func NewRenderer(texts Texts) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/cards.html")
	if err != nil {
		return nil, fmt.Errorf("parse card templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, texts: texts}, nil
}

// RenderAll returns the markup for every trip in order, or the no-results
// paragraph when trips is empty. A trip without segments is an error.
func (r *Renderer) RenderAll(trips []itinerary.Trip) (string, error) {
	var buf bytes.Buffer
	if err := r.WriteAll(&buf, trips); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteAll is RenderAll writing to w. Nothing is written on error.
func (r *Renderer) WriteAll(w io.Writer, trips []itinerary.Trip) error {
	view := listView{Cards: make([]cardView, 0, len(trips)), Texts: r.texts}
	for i, trip := range trips {
		if len(trip.Segments) == 0 {
			return fmt.Errorf("trip %d: %w", i, itinerary.ErrEmptyTrip)
		}
		view.Cards = append(view.Cards, r.card(i, trip))
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "cards", view); err != nil {
		return fmt.Errorf("render cards: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) card(index int, trip itinerary.Trip) cardView {
	return cardView{
		Index:          index,
		DepartureClock: timefmt.FormatClock(trip.DepartureTime()),
		ArrivalClock:   timefmt.FormatClock(trip.ArrivalTime()),
		DepartureStop:  trip.DepartureStop,
		ArrivalStop:    trip.ArrivalStop,
		Details:        timeline.Compose(trip),
		Texts:          r.texts,
	}
}

package models

import (
	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/timefmt"
)

// TripSummary is a trip plus every derived field a card shows.
type TripSummary struct {
	Index           int                   `json:"index"`
	DepartureStop   string                `json:"departureStop"`
	ArrivalStop     string                `json:"arrivalStop"`
	DepartureTime   int                   `json:"departureTime"`
	ArrivalTime     int                   `json:"arrivalTime"`
	DepartureClock  string                `json:"departureClock"`
	ArrivalClock    string                `json:"arrivalClock"`
	DurationMinutes int                   `json:"durationMinutes"`
	Duration        string                `json:"duration"`
	TransferCount   int                   `json:"transferCount"`
	Classification  string                `json:"classification"`
	Transfers       []itinerary.Transfer  `json:"transfers"`
	Segments        []itinerary.Segment   `json:"segments"`
	Violations      []itinerary.Violation `json:"violations"`
}

// NewTripSummary expects a trip with at least one segment.
func NewTripSummary(index int, trip itinerary.Trip) TripSummary {
	violations := trip.Check()
	if violations == nil {
		violations = []itinerary.Violation{}
	}
	return TripSummary{
		Index:           index,
		DepartureStop:   trip.DepartureStop,
		ArrivalStop:     trip.ArrivalStop,
		DepartureTime:   trip.DepartureTime(),
		ArrivalTime:     trip.ArrivalTime(),
		DepartureClock:  timefmt.FormatClock(trip.DepartureTime()),
		ArrivalClock:    timefmt.FormatClock(trip.ArrivalTime()),
		DurationMinutes: trip.TotalDuration(),
		Duration:        timefmt.FormatDuration(trip.TotalDuration()),
		TransferCount:   trip.TransferCount(),
		Classification:  trip.Classification(),
		Transfers:       trip.Transfers(),
		Segments:        trip.Segments,
		Violations:      violations,
	}
}

// SearchResult is the entry of /api/search.json.
type SearchResult struct {
	Message string        `json:"message,omitempty"`
	Trips   []TripSummary `json:"trips"`
}

func NewSearchResult(message string, trips []itinerary.Trip) SearchResult {
	summaries := make([]TripSummary, len(trips))
	for i, trip := range trips {
		summaries[i] = NewTripSummary(i, trip)
	}
	return SearchResult{Message: message, Trips: summaries}
}

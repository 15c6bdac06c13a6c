// Package itinerary holds the typed view models for journey search results:
// stops, ride segments and complete trips, plus the fields derived from them.
//
// All derived values are computed on access so that edits to a trip's
// segment slice are reflected without any invalidation step.
package itinerary

import (
	"errors"
	"fmt"
)

// ErrEmptyTrip is returned when a trip has no segments.
var ErrEmptyTrip = errors.New("trip has no segments")

// Stop is a named location.
type Stop struct {
	Name  string `json:"name"`
	Coord Coord  `json:"coord"`
}

// Segment is one uninterrupted ride leg. Times are minutes since the
// itinerary epoch.
type Segment struct {
	From        string `json:"from"`
	To          string `json:"to"`
	DepCoord    Coord  `json:"depCoord"`
	ArrCoord    Coord  `json:"arrCoord"`
	BoardTime   int    `json:"boardTime"`
	ArrivalTime int    `json:"arrivalTime"`
	TripLabel   string `json:"tripLabel"`
}

// Duration is the leg's ride time in minutes.
func (s Segment) Duration() int {
	return s.ArrivalTime - s.BoardTime
}

func (s Segment) Departure() Stop {
	return Stop{Name: s.From, Coord: s.DepCoord}
}

func (s Segment) Arrival() Stop {
	return Stop{Name: s.To, Coord: s.ArrCoord}
}

// Trip is one complete itinerary. DepartureStop and ArrivalStop are display
// labels supplied by the producer; they are not re-derived from the segments.
type Trip struct {
	DepartureStop string    `json:"departureStop"`
	ArrivalStop   string    `json:"arrivalStop"`
	Segments      []Segment `json:"segments"`
}

// Transfer is the gap between two consecutive segments.
type Transfer struct {
	At          string `json:"at"`
	WaitMinutes int    `json:"waitMinutes"`
}

func (t Trip) first() Segment {
	if len(t.Segments) == 0 {
		return Segment{}
	}
	return t.Segments[0]
}

func (t Trip) last() Segment {
	if len(t.Segments) == 0 {
		return Segment{}
	}
	return t.Segments[len(t.Segments)-1]
}

// DepartureTime is the first segment's board time.
func (t Trip) DepartureTime() int {
	return t.first().BoardTime
}

// ArrivalTime is the last segment's arrival time.
func (t Trip) ArrivalTime() int {
	return t.last().ArrivalTime
}

// TotalDuration is ArrivalTime - DepartureTime. It is never recomputed from
// the per-leg durations.
func (t Trip) TotalDuration() int {
	return t.ArrivalTime() - t.DepartureTime()
}

// TransferCount is the number of segment changes. An empty trip has none.
func (t Trip) TransferCount() int {
	if len(t.Segments) == 0 {
		return 0
	}
	return len(t.Segments) - 1
}

func (t Trip) IsDirect() bool {
	return t.TransferCount() == 0
}

// Classification labels the trip by its transfer count only.
func (t Trip) Classification() string {
	return ClassifyTransfers(t.TransferCount())
}

// ClassifyTransfers returns "Direct", "1 transfer" or "n transfers".
func ClassifyTransfers(n int) string {
	switch n {
	case 0:
		return "Direct"
	case 1:
		return "1 transfer"
	default:
		return fmt.Sprintf("%d transfers", n)
	}
}

// Wait is the time between arriving on segment i and boarding segment i+1.
// It panics if i+1 is out of range.
func (t Trip) Wait(i int) int {
	return t.Segments[i+1].BoardTime - t.Segments[i].ArrivalTime
}

// Transfers lists every transfer in order.
func (t Trip) Transfers() []Transfer {
	if len(t.Segments) < 2 {
		return []Transfer{}
	}
	transfers := make([]Transfer, 0, len(t.Segments)-1)
	for i := 0; i < len(t.Segments)-1; i++ {
		transfers = append(transfers, Transfer{
			At:          t.Segments[i].To,
			WaitMinutes: t.Wait(i),
		})
	}
	return transfers
}

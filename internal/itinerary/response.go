package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RawSegment is a segment as sent by the journey-search backend. Times may
// arrive as fractional minutes and are rounded on conversion. They are
// pointers so that an absent time is rejected while minute 0 is kept.
type RawSegment struct {
	From        string    `json:"from" validate:"required"`
	To          string    `json:"to" validate:"required"`
	DepCoor     []float64 `json:"dep_coor" validate:"required,len=2"`
	ArrCoor     []float64 `json:"arr_coor" validate:"required,len=2"`
	BoardTime   *float64  `json:"board_time" validate:"required"`
	ArrivalTime *float64  `json:"arrival_time" validate:"required"`
	Trip        string    `json:"trip"`
}

// RawTrip is one entry of the backend's "trajets" list.
type RawTrip struct {
	DepartureStop string       `json:"departure_stop"`
	ArrivalStop   string       `json:"arrival_stop"`
	Segments      []RawSegment `json:"segments" validate:"dive"`
}

// SearchResponse is the backend's journey search payload.
type SearchResponse struct {
	Status  string    `json:"status,omitempty"`
	Message string    `json:"message,omitempty"`
	Trajets []RawTrip `json:"trajets"`
}

// DecodeSearchResponse reads a search payload. It does not validate trips;
// call Trips for that.
func DecodeSearchResponse(r io.Reader) (*SearchResponse, error) {
	var resp SearchResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &resp, nil
}

// Trips validates and converts every raw trip. An absent or empty list is not
// an error and yields an empty slice.
func (resp *SearchResponse) Trips() ([]Trip, error) {
	if resp == nil || len(resp.Trajets) == 0 {
		return []Trip{}, nil
	}

	trips := make([]Trip, 0, len(resp.Trajets))
	for i, raw := range resp.Trajets {
		trip, err := raw.ToTrip()
		if err != nil {
			return nil, fmt.Errorf("trip %d: %w", i, err)
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// ToTrip validates the raw record once and converts it.
func (raw RawTrip) ToTrip() (Trip, error) {
	if len(raw.Segments) == 0 {
		return Trip{}, ErrEmptyTrip
	}
	if err := validate.Struct(raw); err != nil {
		return Trip{}, err
	}

	segments := make([]Segment, len(raw.Segments))
	for i, rs := range raw.Segments {
		segments[i] = Segment{
			From:        rs.From,
			To:          rs.To,
			DepCoord:    Coord{Lat: rs.DepCoor[0], Lng: rs.DepCoor[1]},
			ArrCoord:    Coord{Lat: rs.ArrCoor[0], Lng: rs.ArrCoor[1]},
			BoardTime:   int(math.Round(*rs.BoardTime)),
			ArrivalTime: int(math.Round(*rs.ArrivalTime)),
			TripLabel:   rs.Trip,
		}
	}

	trip := Trip{
		DepartureStop: raw.DepartureStop,
		ArrivalStop:   raw.ArrivalStop,
		Segments:      segments,
	}
	if trip.DepartureStop == "" {
		trip.DepartureStop = segments[0].From
	}
	if trip.ArrivalStop == "" {
		trip.ArrivalStop = segments[len(segments)-1].To
	}
	return trip, nil
}

// FromTrip converts a typed trip back to the backend wire shape.
func FromTrip(t Trip) RawTrip {
	raw := RawTrip{
		DepartureStop: t.DepartureStop,
		ArrivalStop:   t.ArrivalStop,
		Segments:      make([]RawSegment, len(t.Segments)),
	}
	for i, s := range t.Segments {
		raw.Segments[i] = RawSegment{
			From:        s.From,
			To:          s.To,
			DepCoor:     []float64{s.DepCoord.Lat, s.DepCoord.Lng},
			ArrCoor:     []float64{s.ArrCoord.Lat, s.ArrCoord.Lng},
			BoardTime:   Minutes(s.BoardTime),
			ArrivalTime: Minutes(s.ArrivalTime),
			Trip:        s.TripLabel,
		}
	}
	return raw
}

// Minutes returns a wire time for m.
func Minutes(m int) *float64 {
	v := float64(m)
	return &v
}

// ValidationErrors flattens a validator error into field -> messages, the
// shape the HTTP layer reports.
func ValidationErrors(err error) map[string][]string {
	fieldErrors := map[string][]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors["body"] = []string{err.Error()}
		return fieldErrors
	}

	for _, fe := range verrs {
		field := fe.Namespace()
		msg := fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed on the '%s=%s' rule", fe.Tag(), fe.Param())
		}
		fieldErrors[field] = append(fieldErrors[field], msg)
	}
	return fieldErrors
}

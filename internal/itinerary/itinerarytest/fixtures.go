// Package itinerarytest provides trip fixtures shared by tests across the
// rendering packages.
package itinerarytest

import "trajetviz.dev/internal/itinerary"

var (
	Paris     = itinerary.Coord{Lat: 48.8443, Lng: 2.3744}
	Dijon     = itinerary.Coord{Lat: 47.3233, Lng: 5.0272}
	Lyon      = itinerary.Coord{Lat: 45.7606, Lng: 4.8594}
	Marseille = itinerary.Coord{Lat: 43.3028, Lng: 5.3806}
)

// Direct is a single-segment trip Paris -> Lyon, 10:00 to 12:00.
func Direct() itinerary.Trip {
	return itinerary.Trip{
		DepartureStop: "Paris",
		ArrivalStop:   "Lyon",
		Segments: []itinerary.Segment{
			{From: "Paris", To: "Lyon", DepCoord: Paris, ArrCoord: Lyon, BoardTime: 600, ArrivalTime: 720, TripLabel: "TGV 6601"},
		},
	}
}

// OneTransfer is Paris -> Lyon -> Marseille with a 20 minute wait in Lyon.
func OneTransfer() itinerary.Trip {
	return itinerary.Trip{
		DepartureStop: "Paris",
		ArrivalStop:   "Marseille",
		Segments: []itinerary.Segment{
			{From: "Paris", To: "Lyon", DepCoord: Paris, ArrCoord: Lyon, BoardTime: 600, ArrivalTime: 720, TripLabel: "TGV 6601"},
			{From: "Lyon", To: "Marseille", DepCoord: Lyon, ArrCoord: Marseille, BoardTime: 740, ArrivalTime: 860, TripLabel: "TER 17705"},
		},
	}
}

// TwoTransfers is Paris -> Dijon -> Lyon -> Marseille.
func TwoTransfers() itinerary.Trip {
	return itinerary.Trip{
		DepartureStop: "Paris",
		ArrivalStop:   "Marseille",
		Segments: []itinerary.Segment{
			{From: "Paris", To: "Dijon", DepCoord: Paris, ArrCoord: Dijon, BoardTime: 480, ArrivalTime: 575, TripLabel: "TER 891"},
			{From: "Dijon", To: "Lyon", DepCoord: Dijon, ArrCoord: Lyon, BoardTime: 590, ArrivalTime: 700, TripLabel: "TER 893"},
			{From: "Lyon", To: "Marseille", DepCoord: Lyon, ArrCoord: Marseille, BoardTime: 745, ArrivalTime: 1510, TripLabel: "Intercités 4751"},
		},
	}
}

// NegativeWait boards the second segment 20 minutes before the first one
// arrives. It renders, but fails Check.
func NegativeWait() itinerary.Trip {
	trip := OneTransfer()
	trip.Segments[1].BoardTime = 700
	trip.Segments[1].ArrivalTime = 820
	return trip
}

package travel

import (
	"time"
)

// DateLayout is the calendar-date format used across requests and payloads.
const DateLayout = "2006-01-02"

// TravelRequest is a composite planning request as submitted by the caller.
// Destinations are visited in order starting from DepartureCity.
type TravelRequest struct {
	Destinations  []string                  `json:"destinations"`
	DepartureCity string                    `json:"departure_city"`
	StartDate     string                    `json:"start_date"`
	EndDate       string                    `json:"end_date"`
	Budget        float64                   `json:"budget"`
	Travelers     int                       `json:"travelers"`
	Preferences   map[string]map[string]any `json:"preferences,omitempty"`
	Roundtrip     bool                      `json:"is_roundtrip"`
}

// Option is any bookable option a provider can offer. The coordinator never
// inspects options beyond their price; everything else is presentation data.
type Option interface {
	Price() float64
}

// FlightOption is a single flight offer for one leg.
type FlightOption struct {
	Airline         string  `json:"airline"`
	DepartureCity   string  `json:"departure_city"`
	DestinationCity string  `json:"destination_city"`
	DepartureTime   string  `json:"departure_time"`
	ArrivalTime     string  `json:"arrival_time"`
	Cost            float64 `json:"price"`
	Duration        string  `json:"duration"`
}

func (f FlightOption) Price() float64 { return f.Cost }

// HotelOption is a single hotel offer for one destination stay.
type HotelOption struct {
	Name          string   `json:"name"`
	Rating        float64  `json:"rating"`
	PricePerNight float64  `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
	Location      string   `json:"location"`
	City          string   `json:"city"`
}

// Price returns the nightly rate; stay-length pricing is the planner's concern.
func (h HotelOption) Price() float64 { return h.PricePerNight }

// ActivityOption is a single bookable activity at a destination.
type ActivityOption struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Cost     float64 `json:"price"`
	Duration string  `json:"duration"`
	Rating   float64 `json:"rating"`
	City     string  `json:"city"`
}

func (a ActivityOption) Price() float64 { return a.Cost }

// DestinationPlan groups the options gathered for one destination.
type DestinationPlan struct {
	Hotels     []Option `json:"hotels"`
	Activities []Option `json:"activities"`
}

// Itinerary is the aggregate planning result. Flights are ordered by leg,
// Plans is keyed by destination city.
type Itinerary struct {
	Destinations       []string                   `json:"destinations"`
	Roundtrip          bool                       `json:"is_roundtrip"`
	Dates              string                     `json:"dates"`
	Travelers          int                        `json:"travelers"`
	Flights            []Option                   `json:"flights"`
	Plans              map[string]DestinationPlan `json:"itinerary"`
	TotalEstimatedCost float64                    `json:"total_estimated_cost"`
	GeneratedAt        time.Time                  `json:"generated_at"`
}

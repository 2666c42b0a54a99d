// Package catalog holds the option sources behind the provider agents. The
// coordinator never depends on anything here; any source that can answer a
// ProviderRequest is interchangeable with these.
package catalog

import (
	"context"
	"time"

	"github.com/skyroute/tripmesh/pkg/bus"
	"github.com/skyroute/tripmesh/pkg/travel"
)

// StatusSuccess is the status providers set on a successful answer.
const StatusSuccess = "success"

// Sleeper simulates provider latency. Tests inject a no-op.
type Sleeper func(ctx context.Context, d time.Duration)

func realSleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// MockFlights returns a fixed pair of flight offers per leg.
type MockFlights struct {
	Latency time.Duration
	Sleep   Sleeper
}

func (m *MockFlights) ProcessRequest(ctx context.Context, req bus.ProviderRequest) (bus.ProviderResponse, error) {
	sleep := m.Sleep
	if sleep == nil {
		sleep = realSleep
	}
	sleep(ctx, m.Latency)

	options := []travel.Option{
		travel.FlightOption{
			Airline:         "AirLine One",
			DepartureCity:   req.Origin,
			DestinationCity: req.Destination,
			DepartureTime:   "08:00",
			ArrivalTime:     "12:00",
			Cost:            450.0,
			Duration:        "4h 00m",
		},
		travel.FlightOption{
			Airline:         "Sky Express",
			DepartureCity:   req.Origin,
			DestinationCity: req.Destination,
			DepartureTime:   "14:30",
			ArrivalTime:     "18:45",
			Cost:            380.0,
			Duration:        "4h 15m",
		},
	}

	return bus.ProviderResponse{
		SessionID:   req.SessionID,
		Destination: req.Destination,
		Status:      StatusSuccess,
		Options:     options,
	}, nil
}

// MockHotels returns a fixed pair of hotel offers per destination.
type MockHotels struct {
	Latency time.Duration
	Sleep   Sleeper
}

func (m *MockHotels) ProcessRequest(ctx context.Context, req bus.ProviderRequest) (bus.ProviderResponse, error) {
	sleep := m.Sleep
	if sleep == nil {
		sleep = realSleep
	}
	sleep(ctx, m.Latency)

	options := []travel.Option{
		travel.HotelOption{
			Name:          "Grand Plaza Hotel",
			Rating:        4.5,
			PricePerNight: 150.0,
			Amenities:     []string{"WiFi", "Pool", "Gym"},
			Location:      "Downtown",
			City:          req.Destination,
		},
		travel.HotelOption{
			Name:          "Comfort Inn",
			Rating:        4.0,
			PricePerNight: 95.0,
			Amenities:     []string{"WiFi", "Breakfast"},
			Location:      "City Center",
			City:          req.Destination,
		},
	}

	return bus.ProviderResponse{
		SessionID:   req.SessionID,
		Destination: req.Destination,
		Status:      StatusSuccess,
		Options:     options,
	}, nil
}

// MockActivities returns a fixed pair of activity offers per destination.
type MockActivities struct {
	Latency time.Duration
	Sleep   Sleeper
}

func (m *MockActivities) ProcessRequest(ctx context.Context, req bus.ProviderRequest) (bus.ProviderResponse, error) {
	sleep := m.Sleep
	if sleep == nil {
		sleep = realSleep
	}
	sleep(ctx, m.Latency)

	options := []travel.Option{
		travel.ActivityOption{
			Name:     "City Walking Tour",
			Type:     "Cultural",
			Cost:     25.0,
			Duration: "3 hours",
			Rating:   4.7,
			City:     req.Destination,
		},
		travel.ActivityOption{
			Name:     "Food Tour",
			Type:     "Culinary",
			Cost:     65.0,
			Duration: "4 hours",
			Rating:   4.8,
			City:     req.Destination,
		},
	}

	return bus.ProviderResponse{
		SessionID:   req.SessionID,
		Destination: req.Destination,
		Status:      StatusSuccess,
		Options:     options,
	}, nil
}

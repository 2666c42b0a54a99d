package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyroute/tripmesh/pkg/travel"
)

func date(s string) time.Time {
	d, err := time.Parse(travel.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSegmentReferenceScenario(t *testing.T) {
	// 7 days over 2 destinations: floor division gives 3-day windows and the
	// leftover day drops off the schedule.
	plan, err := segment(travel.TravelRequest{
		Destinations:  []string{"Paris, France", "Rome, Italy"},
		DepartureCity: "New York, NY",
		StartDate:     "2024-07-15",
		EndDate:       "2024-07-22",
		Budget:        3000,
		Travelers:     2,
		Roundtrip:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, plan.DaysPerDestination)

	require.Len(t, plan.Legs, 3)
	assert.Equal(t, "New York, NY", plan.Legs[0].Origin)
	assert.Equal(t, "Paris, France", plan.Legs[0].Destination)
	assert.Equal(t, date("2024-07-15"), plan.Legs[0].Date)
	assert.Equal(t, "Paris, France", plan.Legs[1].Origin)
	assert.Equal(t, "Rome, Italy", plan.Legs[1].Destination)
	assert.Equal(t, date("2024-07-18"), plan.Legs[1].Date)
	assert.Equal(t, "Rome, Italy", plan.Legs[2].Origin)
	assert.Equal(t, "New York, NY", plan.Legs[2].Destination)
	assert.Equal(t, date("2024-07-21"), plan.Legs[2].Date)

	require.Len(t, plan.Stays, 2)
	assert.Equal(t, date("2024-07-15"), plan.Stays[0].CheckIn)
	assert.Equal(t, date("2024-07-18"), plan.Stays[0].CheckOut)
	assert.Equal(t, date("2024-07-18"), plan.Stays[1].CheckIn)
	assert.Equal(t, date("2024-07-21"), plan.Stays[1].CheckOut)

	// Soft allocation: 40% flights over 3 legs, 40% hotels and 20%
	// activities over 2 destinations. Never reconciled against the total.
	assert.InDelta(t, 400.0, plan.FlightBudget, 1e-9)
	assert.InDelta(t, 600.0, plan.HotelBudget, 1e-9)
	assert.InDelta(t, 300.0, plan.ActivityBudget, 1e-9)
}

func TestSegmentOneWay(t *testing.T) {
	plan, err := segment(travel.TravelRequest{
		Destinations:  []string{"Paris, France", "Rome, Italy"},
		DepartureCity: "New York, NY",
		StartDate:     "2024-07-15",
		EndDate:       "2024-07-22",
		Budget:        3000,
		Travelers:     2,
		Roundtrip:     false,
	})
	require.NoError(t, err)

	require.Len(t, plan.Legs, 2)
	assert.Equal(t, "Rome, Italy", plan.Legs[1].Destination)
	assert.InDelta(t, 600.0, plan.FlightBudget, 1e-9)
}

func TestSegmentBudgetsNonNegative(t *testing.T) {
	plan, err := segment(travel.TravelRequest{
		Destinations:  []string{"Lisbon, Portugal"},
		DepartureCity: "Madrid, Spain",
		StartDate:     "2024-03-01",
		EndDate:       "2024-03-04",
		Budget:        0,
		Travelers:     1,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, plan.FlightBudget, 0.0)
	assert.GreaterOrEqual(t, plan.HotelBudget, 0.0)
	assert.GreaterOrEqual(t, plan.ActivityBudget, 0.0)
}

func TestSegmentRejectsBadInput(t *testing.T) {
	base := travel.TravelRequest{
		Destinations:  []string{"Paris, France"},
		DepartureCity: "New York, NY",
		StartDate:     "2024-07-15",
		EndDate:       "2024-07-22",
	}

	t.Run("malformed start date", func(t *testing.T) {
		req := base
		req.StartDate = "July 15 2024"
		_, err := segment(req)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("malformed end date", func(t *testing.T) {
		req := base
		req.EndDate = "not-a-date"
		_, err := segment(req)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("end before start", func(t *testing.T) {
		req := base
		req.StartDate = "2024-07-22"
		req.EndDate = "2024-07-15"
		_, err := segment(req)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("end equals start", func(t *testing.T) {
		req := base
		req.EndDate = req.StartDate
		_, err := segment(req)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("no destinations", func(t *testing.T) {
		req := base
		req.Destinations = nil
		_, err := segment(req)
		assert.ErrorIs(t, err, ErrNoDestinations)
	})
}

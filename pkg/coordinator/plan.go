package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skyroute/tripmesh/pkg/bus"
	"github.com/skyroute/tripmesh/pkg/travel"
)

var (
	// ErrInvalidDateRange is returned when dates are malformed or the span
	// is not positive. The only failure PlanTravel surfaces to the caller.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrNoDestinations is returned for a request with no destinations.
	ErrNoDestinations = errors.New("no destinations")
)

// flightLeg is one city-to-city segment in visit order.
type flightLeg struct {
	Origin      string
	Destination string
	Date        time.Time
}

// stayWindow is a destination's uniform hotel and activities window.
type stayWindow struct {
	Destination string
	CheckIn     time.Time
	CheckOut    time.Time
}

// segmentPlan is the result of decomposing one request: the legs to fly, the
// windows to stay, and the per-category budget hints.
type segmentPlan struct {
	Legs               []flightLeg
	Stays              []stayWindow
	DaysPerDestination int
	FlightBudget       float64
	HotelBudget        float64
	ActivityBudget     float64
}

// segment validates req and computes the segmentation plan.
//
// The window length is totalDays floor-divided by the destination count; any
// remainder days are dropped from the schedule. The budget split (40% flights,
// 40% hotels, 20% activities, each divided per leg or destination) is a soft
// hint forwarded to providers, not a partition of the total. Both are
// documented behavior and must stay as they are.
func segment(req travel.TravelRequest) (*segmentPlan, error) {
	if len(req.Destinations) == 0 {
		return nil, ErrNoDestinations
	}

	start, err := time.Parse(travel.DateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing start date: %v", ErrInvalidDateRange, err)
	}
	end, err := time.Parse(travel.DateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing end date: %v", ErrInvalidDateRange, err)
	}

	totalDays := int(end.Sub(start).Hours() / 24)
	if totalDays <= 0 {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrInvalidDateRange)
	}

	destCount := len(req.Destinations)
	daysPerDestination := totalDays / destCount

	cities := make([]string, 0, destCount+2)
	cities = append(cities, req.DepartureCity)
	cities = append(cities, req.Destinations...)
	if req.Roundtrip {
		cities = append(cities, req.DepartureCity)
	}

	legs := make([]flightLeg, 0, len(cities)-1)
	for i := 0; i < len(cities)-1; i++ {
		legs = append(legs, flightLeg{
			Origin:      cities[i],
			Destination: cities[i+1],
			Date:        start.AddDate(0, 0, i*daysPerDestination),
		})
	}

	stays := make([]stayWindow, 0, destCount)
	for i, dest := range req.Destinations {
		stays = append(stays, stayWindow{
			Destination: dest,
			CheckIn:     start.AddDate(0, 0, i*daysPerDestination),
			CheckOut:    start.AddDate(0, 0, (i+1)*daysPerDestination),
		})
	}

	legCount := destCount
	if req.Roundtrip {
		legCount++
	}

	return &segmentPlan{
		Legs:               legs,
		Stays:              stays,
		DaysPerDestination: daysPerDestination,
		FlightBudget:       req.Budget * 0.4 / float64(legCount),
		HotelBudget:        req.Budget * 0.4 / float64(destCount),
		ActivityBudget:     req.Budget * 0.2 / float64(destCount),
	}, nil
}

// PlanTravel is the sole entry point of the orchestration: it decomposes req,
// dispatches every sub-request concurrently, waits for all of them to settle,
// and compiles the aggregate itinerary. Only validation failures are returned
// as errors; every provider-side failure degrades the plan instead.
func (c *Coordinator) PlanTravel(ctx context.Context, req travel.TravelRequest) (*travel.Itinerary, error) {
	plan, err := segment(req)
	if err != nil {
		c.logger.Error("rejecting travel request", "error", err)
		return nil, err
	}

	sess := newSession(req)
	c.logger.Info("planning started",
		"session", sess.id, "destinations", req.Destinations, "roundtrip", req.Roundtrip)

	subs := c.buildSubRequests(sess, req, plan)
	sess.outstanding = len(subs)

	c.mu.Lock()
	c.sessions[sess.id] = sess
	if sess.outstanding == 0 {
		// No providers registered at all; nothing to wait for.
		sess.closed = true
		close(sess.done)
	}
	c.mu.Unlock()

	// Fan out: every sub-request is in flight before any is awaited. Each
	// dispatch is independent; a failed send settles its slot and the rest
	// proceed.
	g := new(errgroup.Group)
	for _, msg := range subs {
		msg := msg
		g.Go(func() error {
			if err := c.bus.Send(msg); err != nil {
				c.mu.Lock()
				c.settleLocked(sess)
				c.mu.Unlock()
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.Warn("not all sub-requests were dispatched", "session", sess.id, "error", err)
	}

	c.await(ctx, sess)

	c.mu.Lock()
	sess.status = statusComplete
	itinerary := c.compileLocked(sess, plan)
	delete(c.sessions, sess.id)
	c.mu.Unlock()

	c.logger.Info("planning finished",
		"session", sess.id, "flights", len(itinerary.Flights),
		"total_estimated_cost", itinerary.TotalEstimatedCost)
	return itinerary, nil
}

// buildSubRequests discovers one agent per role and builds the request
// envelopes. A role with no registered agent is skipped, which leaves that
// category empty in the result.
func (c *Coordinator) buildSubRequests(sess *session, req travel.TravelRequest, plan *segmentPlan) []bus.Message {
	var subs []bus.Message

	if flightAgents := c.bus.Discover(bus.RoleFlight); len(flightAgents) > 0 {
		for _, leg := range plan.Legs {
			subs = append(subs, bus.NewRequest(c.id, flightAgents[0], bus.ProviderRequest{
				SessionID:   sess.id,
				Origin:      leg.Origin,
				Destination: leg.Destination,
				WindowStart: leg.Date,
				Travelers:   req.Travelers,
				Budget:      plan.FlightBudget,
			}))
		}
	} else {
		c.logger.Warn("no flight agents registered, skipping flights", "session", sess.id)
	}

	hotelAgents := c.bus.Discover(bus.RoleHotel)
	activityAgents := c.bus.Discover(bus.RoleActivity)
	if len(hotelAgents) == 0 {
		c.logger.Warn("no hotel agents registered, skipping hotels", "session", sess.id)
	}
	if len(activityAgents) == 0 {
		c.logger.Warn("no activity agents registered, skipping activities", "session", sess.id)
	}

	for _, stay := range plan.Stays {
		if len(hotelAgents) > 0 {
			subs = append(subs, bus.NewRequest(c.id, hotelAgents[0], bus.ProviderRequest{
				SessionID:   sess.id,
				Destination: stay.Destination,
				WindowStart: stay.CheckIn,
				WindowEnd:   stay.CheckOut,
				Travelers:   req.Travelers,
				Budget:      plan.HotelBudget,
				Preferences: req.Preferences["hotel"],
			}))
		}
		if len(activityAgents) > 0 {
			subs = append(subs, bus.NewRequest(c.id, activityAgents[0], bus.ProviderRequest{
				SessionID:   sess.id,
				Destination: stay.Destination,
				WindowStart: stay.CheckIn,
				WindowEnd:   stay.CheckOut,
				Travelers:   req.Travelers,
				Budget:      plan.ActivityBudget,
				Preferences: req.Preferences["activities"],
			}))
		}
	}

	return subs
}

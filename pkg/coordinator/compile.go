package coordinator

import (
	"fmt"
	"time"

	"github.com/skyroute/tripmesh/pkg/bus"
	"github.com/skyroute/tripmesh/pkg/travel"
)

// compileLocked assembles the aggregate itinerary from whatever settled.
// Flights keep fixed leg order regardless of arrival order; destinations a
// provider never answered for show up with empty lists. Caller holds c.mu.
func (c *Coordinator) compileLocked(sess *session, plan *segmentPlan) *travel.Itinerary {
	req := sess.request

	itinerary := &travel.Itinerary{
		Destinations: req.Destinations,
		Roundtrip:    req.Roundtrip,
		Dates:        fmt.Sprintf("%s to %s", req.StartDate, req.EndDate),
		Travelers:    req.Travelers,
		Flights:      []travel.Option{},
		Plans:        make(map[string]travel.DestinationPlan, len(req.Destinations)),
		GeneratedAt:  time.Now(),
	}

	for _, leg := range plan.Legs {
		resp, ok := sess.responses[leg.Destination][bus.RoleFlight.String()]
		if !ok {
			c.logger.Warn("no flight options for leg",
				"session", sess.id, "destination", leg.Destination)
			continue
		}
		itinerary.Flights = append(itinerary.Flights, resp.Options...)
	}

	for _, dest := range req.Destinations {
		destPlan := travel.DestinationPlan{
			Hotels:     []travel.Option{},
			Activities: []travel.Option{},
		}
		if resp, ok := sess.responses[dest][bus.RoleHotel.String()]; ok {
			destPlan.Hotels = resp.Options
		}
		if resp, ok := sess.responses[dest][bus.RoleActivity.String()]; ok {
			destPlan.Activities = resp.Options
		}
		itinerary.Plans[dest] = destPlan
	}

	itinerary.TotalEstimatedCost = estimateCost(sess)
	return itinerary
}

// estimateCost is a deliberately rough figure, not the sum of the returned
// itinerary: the cheapest-listed (first) flight per leg destination, the
// first hotel at a fixed 3 nights, and at most the first two activities per
// destination. The simplifications match the planner's documented behavior.
func estimateCost(sess *session) float64 {
	req := sess.request
	total := 0.0

	legDestinations := make([]string, 0, len(req.Destinations)+1)
	legDestinations = append(legDestinations, req.Destinations...)
	if req.Roundtrip {
		legDestinations = append(legDestinations, req.DepartureCity)
	}
	for _, dest := range legDestinations {
		if resp, ok := sess.responses[dest][bus.RoleFlight.String()]; ok && len(resp.Options) > 0 {
			total += resp.Options[0].Price()
		}
	}

	const nights = 3 // fixed stay length for the estimate
	for _, dest := range req.Destinations {
		if resp, ok := sess.responses[dest][bus.RoleHotel.String()]; ok && len(resp.Options) > 0 {
			total += resp.Options[0].Price() * nights
		}
		if resp, ok := sess.responses[dest][bus.RoleActivity.String()]; ok {
			for i, opt := range resp.Options {
				if i >= 2 {
					break
				}
				total += opt.Price()
			}
		}
	}

	return total
}

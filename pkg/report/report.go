// Package report renders an itinerary for the console. It is presentation
// only; nothing in the planner depends on it.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/skyroute/tripmesh/pkg/travel"
)

var (
	header  = color.New(color.FgCyan, color.Bold)
	section = color.New(color.FgYellow, color.Bold)
	money   = color.New(color.FgGreen, color.Bold)
)

// Print writes a human-readable itinerary to w.
func Print(w io.Writer, itinerary *travel.Itinerary) {
	header.Fprintln(w, "COMPLETE TRAVEL ITINERARY")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Destinations: %s\n", strings.Join(itinerary.Destinations, ", "))
	fmt.Fprintf(w, "Travel Dates: %s\n", itinerary.Dates)
	fmt.Fprintf(w, "Number of Travelers: %d\n", itinerary.Travelers)

	section.Fprintln(w, "\nFLIGHT ITINERARY:")
	if len(itinerary.Flights) == 0 {
		fmt.Fprintln(w, "  (no flight options)")
	}
	for i, opt := range itinerary.Flights {
		flight, ok := opt.(travel.FlightOption)
		if !ok {
			fmt.Fprintf(w, "  %d. %+v\n", i+1, opt)
			continue
		}
		fmt.Fprintf(w, "  %d. %s from %s to %s - $%.2f\n",
			i+1, flight.Airline, flight.DepartureCity, flight.DestinationCity, flight.Cost)
		fmt.Fprintf(w, "     Departure: %s | Duration: %s\n", flight.DepartureTime, flight.Duration)
	}

	for _, dest := range itinerary.Destinations {
		plan := itinerary.Plans[dest]
		section.Fprintf(w, "\n%s\n", dest)

		fmt.Fprintln(w, "  HOTEL OPTIONS:")
		if len(plan.Hotels) == 0 {
			fmt.Fprintln(w, "    (none)")
		}
		for i, opt := range plan.Hotels {
			hotel, ok := opt.(travel.HotelOption)
			if !ok {
				fmt.Fprintf(w, "    %d. %+v\n", i+1, opt)
				continue
			}
			fmt.Fprintf(w, "    %d. %s - $%.2f/night\n", i+1, hotel.Name, hotel.PricePerNight)
			fmt.Fprintf(w, "       Rating: %.1f | Location: %s\n", hotel.Rating, hotel.Location)
		}

		fmt.Fprintln(w, "  ACTIVITY OPTIONS:")
		if len(plan.Activities) == 0 {
			fmt.Fprintln(w, "    (none)")
		}
		for i, opt := range plan.Activities {
			activity, ok := opt.(travel.ActivityOption)
			if !ok {
				fmt.Fprintf(w, "    %d. %+v\n", i+1, opt)
				continue
			}
			fmt.Fprintf(w, "    %d. %s - $%.2f\n", i+1, activity.Name, activity.Cost)
			fmt.Fprintf(w, "       Type: %s | Duration: %s | Rating: %.1f\n",
				activity.Type, activity.Duration, activity.Rating)
		}
	}

	money.Fprintf(w, "\nESTIMATED TOTAL COST: $%.2f\n", itinerary.TotalEstimatedCost)
	fmt.Fprintf(w, "Generated at: %s\n", itinerary.GeneratedAt.Format("2006-01-02T15:04:05"))
}

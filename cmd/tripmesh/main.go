package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/skyroute/tripmesh/internal/observability"
	"github.com/skyroute/tripmesh/pkg/agent"
	"github.com/skyroute/tripmesh/pkg/bus"
	"github.com/skyroute/tripmesh/pkg/catalog"
	"github.com/skyroute/tripmesh/pkg/config"
	"github.com/skyroute/tripmesh/pkg/coordinator"
	"github.com/skyroute/tripmesh/pkg/providers"
	"github.com/skyroute/tripmesh/pkg/report"
	"github.com/skyroute/tripmesh/pkg/travel"
)

var (
	flagConfig       string
	flagDestinations []string
	flagFrom         string
	flagStart        string
	flagEnd          string
	flagBudget       float64
	flagTravelers    int
	flagRoundtrip    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tripmesh",
		Short: "Tripmesh plans multi-city trips by fanning a request out to flight, hotel and activity agents over an in-process bus.",
	}

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a trip",
		RunE:  runPlan,
	}
	planCmd.Flags().StringVar(&flagConfig, "config", "", "path to YAML config file")
	planCmd.Flags().StringSliceVar(&flagDestinations, "destinations", []string{"Paris, France", "Rome, Italy"}, "destination cities in visit order")
	planCmd.Flags().StringVar(&flagFrom, "from", "New York, NY", "departure city")
	planCmd.Flags().StringVar(&flagStart, "start", "2024-07-15", "start date (YYYY-MM-DD)")
	planCmd.Flags().StringVar(&flagEnd, "end", "2024-07-22", "end date (YYYY-MM-DD)")
	planCmd.Flags().Float64Var(&flagBudget, "budget", 3000, "total budget")
	planCmd.Flags().IntVar(&flagTravelers, "travelers", 2, "number of travelers")
	planCmd.Flags().BoolVar(&flagRoundtrip, "roundtrip", true, "return to the departure city")

	for _, envFile := range []string{
		".env",
		"../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	rootCmd.AddCommand(planCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	b := bus.New(logger)

	flightAgent, err := agent.NewProvider(b, bus.RoleFlight,
		&catalog.MockFlights{Latency: cfg.Latency.Flight},
		agent.WithID("flight_agent"), agent.WithLogger(logger))
	if err != nil {
		return err
	}
	hotelAgent, err := agent.NewProvider(b, bus.RoleHotel,
		&catalog.MockHotels{Latency: cfg.Latency.Hotel},
		agent.WithID("hotel_agent"), agent.WithLogger(logger))
	if err != nil {
		return err
	}

	activitySource, err := buildActivitySource(ctx, cfg)
	if err != nil {
		return err
	}
	activityAgent, err := agent.NewProvider(b, bus.RoleActivity, activitySource,
		agent.WithID("activities_agent"), agent.WithLogger(logger))
	if err != nil {
		return err
	}

	master, err := coordinator.New(b,
		coordinator.WithID("master_agent"),
		coordinator.WithLogger(logger),
		coordinator.WithDeadline(cfg.PlanDeadline))
	if err != nil {
		return err
	}

	flightAgent.Start(ctx)
	hotelAgent.Start(ctx)
	activityAgent.Start(ctx)
	master.Start(ctx)

	request := travel.TravelRequest{
		Destinations:  flagDestinations,
		DepartureCity: flagFrom,
		StartDate:     flagStart,
		EndDate:       flagEnd,
		Budget:        flagBudget,
		Travelers:     flagTravelers,
		Roundtrip:     flagRoundtrip,
		Preferences: map[string]map[string]any{
			"hotel":      {"rating_min": 4.0},
			"activities": {"types": []string{"cultural", "culinary"}},
		},
	}

	itinerary, err := master.PlanTravel(ctx, request)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	report.Print(os.Stdout, itinerary)
	return nil
}

// buildActivitySource picks the activity catalog: deterministic fixtures by
// default, a completion-backed source when enabled in config.
func buildActivitySource(ctx context.Context, cfg *config.Config) (agent.Processor, error) {
	if !cfg.LLM.Enabled {
		return &catalog.MockActivities{Latency: cfg.Latency.Activity}, nil
	}

	var client providers.CompletionClient
	switch cfg.LLM.Backend {
	case "gemini":
		gemini, err := providers.Gemini(ctx)
		if err != nil {
			return nil, err
		}
		client = gemini
	default:
		client = providers.OpenAI()
	}

	return &catalog.LLMActivities{Client: client, Model: cfg.LLM.Model}, nil
}

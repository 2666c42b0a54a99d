package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/skyroute/tripmesh/pkg/bus"
	"github.com/skyroute/tripmesh/pkg/providers"
	"github.com/skyroute/tripmesh/pkg/travel"
)

const activityPromptTemplate = `Suggest %d bookable activities in %s for %d traveler(s) with a budget of %.0f.
Answer with one activity per line, no other text, in the exact format:
name | type | price | duration | rating
Example:
City Walking Tour | Cultural | 25 | 3 hours | 4.7`

// LLMActivities asks a completion backend for activity suggestions instead of
// serving fixtures. A malformed completion fails the request, which the agent
// layer turns into an error reply; the plan degrades instead of aborting.
type LLMActivities struct {
	Client providers.CompletionClient
	Model  string
	Count  int
}

func (l *LLMActivities) ProcessRequest(ctx context.Context, req bus.ProviderRequest) (bus.ProviderResponse, error) {
	count := l.Count
	if count <= 0 {
		count = 2
	}

	prompt := fmt.Sprintf(activityPromptTemplate, count, req.Destination, req.Travelers, req.Budget)
	raw, err := l.Client.Complete(ctx, l.Model, prompt)
	if err != nil {
		return bus.ProviderResponse{}, fmt.Errorf("completing activity suggestions: %w", err)
	}

	options, err := parseActivities(raw, req.Destination)
	if err != nil {
		return bus.ProviderResponse{}, err
	}

	return bus.ProviderResponse{
		SessionID:   req.SessionID,
		Destination: req.Destination,
		Status:      StatusSuccess,
		Options:     options,
	}, nil
}

func parseActivities(raw, city string) ([]travel.Option, error) {
	var options []travel.Option
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 5 {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		price, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		rating, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			continue
		}
		options = append(options, travel.ActivityOption{
			Name:     fields[0],
			Type:     fields[1],
			Cost:     price,
			Duration: fields[3],
			Rating:   rating,
			City:     city,
		})
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no parseable activities in completion")
	}
	return options, nil
}

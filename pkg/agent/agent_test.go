package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skyroute/tripmesh/pkg/bus"
	"github.com/skyroute/tripmesh/pkg/travel"
)

type processorFunc func(ctx context.Context, req bus.ProviderRequest) (bus.ProviderResponse, error)

func (f processorFunc) ProcessRequest(ctx context.Context, req bus.ProviderRequest) (bus.ProviderResponse, error) {
	return f(ctx, req)
}

type collector struct {
	id    string
	role  bus.Role
	inbox chan bus.Message
}

func newCollector(id string, role bus.Role) *collector {
	return &collector{id: id, role: role, inbox: make(chan bus.Message, 10)}
}

func (c *collector) ID() string                { return c.id }
func (c *collector) Role() bus.Role            { return c.role }
func (c *collector) Inbox() chan<- bus.Message { return c.inbox }

func (c *collector) next(t *testing.T) bus.Message {
	t.Helper()
	select {
	case msg := <-c.inbox:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for reply")
		return bus.Message{}
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProviderRespondsWithCorrelation(t *testing.T) {
	b := bus.New(quietLogger())
	master := newCollector("master_agent", bus.RoleCoordinator)
	require.NoError(t, b.Register(master))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, err := NewProvider(b, bus.RoleFlight, processorFunc(
		func(ctx context.Context, req bus.ProviderRequest) (bus.ProviderResponse, error) {
			return bus.ProviderResponse{
				SessionID:   req.SessionID,
				Destination: req.Destination,
				Status:      "success",
				Options:     []travel.Option{travel.FlightOption{Airline: "AirLine One", Cost: 450}},
			}, nil
		}), WithID("flight_agent"), WithLogger(quietLogger()))
	require.NoError(t, err)
	provider.Start(ctx)

	req := bus.NewRequest("master_agent", "flight_agent", bus.ProviderRequest{
		SessionID:   "session-1",
		Destination: "Paris, France",
	})
	require.NoError(t, b.Send(req))

	reply := master.next(t)
	require.Equal(t, bus.KindResponse, reply.Kind)
	require.Equal(t, req.ID, reply.CorrelationID)
	require.Equal(t, "flight_agent", reply.Sender)

	payload, ok := reply.Payload.(bus.ProviderResponse)
	require.True(t, ok)
	require.Equal(t, "session-1", payload.SessionID)
	require.Equal(t, "Paris, France", payload.Destination)
	require.Len(t, payload.Options, 1)
}

func TestProviderConvertsFailureToErrorMessage(t *testing.T) {
	b := bus.New(quietLogger())
	master := newCollector("master_agent", bus.RoleCoordinator)
	require.NoError(t, b.Register(master))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, err := NewProvider(b, bus.RoleHotel, processorFunc(
		func(ctx context.Context, req bus.ProviderRequest) (bus.ProviderResponse, error) {
			return bus.ProviderResponse{}, fmt.Errorf("inventory unavailable")
		}), WithID("hotel_agent"), WithLogger(quietLogger()))
	require.NoError(t, err)
	provider.Start(ctx)

	req := bus.NewRequest("master_agent", "hotel_agent", bus.ProviderRequest{
		SessionID:   "session-1",
		Destination: "Rome, Italy",
	})
	require.NoError(t, b.Send(req))

	reply := master.next(t)
	require.Equal(t, bus.KindError, reply.Kind)
	require.Equal(t, req.ID, reply.CorrelationID)

	payload, ok := reply.Payload.(bus.ErrorPayload)
	require.True(t, ok)
	require.Equal(t, "session-1", payload.SessionID)
	require.Contains(t, payload.Err, "inventory unavailable")
}

func TestProviderIgnoresNonRequests(t *testing.T) {
	b := bus.New(quietLogger())
	master := newCollector("master_agent", bus.RoleCoordinator)
	require.NoError(t, b.Register(master))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	called := false
	provider, err := NewProvider(b, bus.RoleActivity, processorFunc(
		func(ctx context.Context, req bus.ProviderRequest) (bus.ProviderResponse, error) {
			called = true
			return bus.ProviderResponse{}, nil
		}), WithID("activities_agent"), WithLogger(quietLogger()))
	require.NoError(t, err)
	provider.Start(ctx)

	// Discovery is resolved bus-side; an agent receiving one does nothing.
	discover := bus.Message{
		Receiver: "activities_agent",
		Sender:   "master_agent",
		Kind:     bus.KindDiscover,
	}
	require.NoError(t, b.Send(discover))

	select {
	case msg := <-master.inbox:
		t.Fatalf("unexpected reply to discover message: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
	require.False(t, called)
}

package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/skyroute/tripmesh/pkg/bus"
)

// Processor is the role-specific part of an agent: it turns one provider
// request into one response. Everything else about message handling is shared.
type Processor interface {
	ProcessRequest(ctx context.Context, req bus.ProviderRequest) (bus.ProviderResponse, error)
}

// Params collects the knobs for building a provider agent.
type Params struct {
	ID        string
	Role      bus.Role
	Bus       *bus.Bus
	Processor Processor
	Logger    *slog.Logger
	InboxSize int
}

// Option configures agent construction.
type Option func(*Params)

func WithID(id string) Option {
	return func(p *Params) {
		p.ID = id
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Params) {
		p.Logger = l
	}
}

func WithInboxSize(n int) Option {
	return func(p *Params) {
		p.InboxSize = n
	}
}

// Provider is a named agent that answers a single kind of sub-request by
// delegating to its Processor and replying through the bus.
type Provider struct {
	id        string
	role      bus.Role
	bus       *bus.Bus
	processor Processor
	inbox     chan bus.Message
	logger    *slog.Logger
}

// NewProvider builds and registers a provider agent on b.
func NewProvider(b *bus.Bus, role bus.Role, processor Processor, opts ...Option) (*Provider, error) {
	params := &Params{
		ID:        role.String() + "-agent-" + uuid.New().String(),
		Role:      role,
		Bus:       b,
		Processor: processor,
		Logger:    slog.Default(),
		InboxSize: 100,
	}
	for _, opt := range opts {
		opt(params)
	}

	a := &Provider{
		id:        params.ID,
		role:      params.Role,
		bus:       params.Bus,
		processor: params.Processor,
		inbox:     make(chan bus.Message, params.InboxSize),
		logger:    params.Logger.With("agent", params.ID),
	}
	if err := b.Register(a); err != nil {
		return nil, fmt.Errorf("registering %s: %w", a.id, err)
	}
	return a, nil
}

func (a *Provider) ID() string {
	return a.id
}

func (a *Provider) Role() bus.Role {
	return a.role
}

// Inbox implements bus.Agent.
func (a *Provider) Inbox() chan<- bus.Message {
	return a.inbox
}

// Start runs the inbox loop until ctx is cancelled.
func (a *Provider) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case msg := <-a.inbox:
				a.handle(ctx, msg)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// handle implements the shared request state machine: a request either yields
// a response or an error message back to the sender, correlated by request id.
// Discovery is resolved bus-side, so a discover message is a no-op here.
func (a *Provider) handle(ctx context.Context, msg bus.Message) {
	a.logger.Info("received message", "from", msg.Sender, "kind", msg.Kind.String())

	if msg.Kind != bus.KindRequest {
		return
	}

	req, ok := msg.Payload.(bus.ProviderRequest)
	if !ok {
		a.logger.Warn("request with unexpected payload type dropped", "from", msg.Sender)
		return
	}

	resp, err := a.processor.ProcessRequest(ctx, req)
	if err != nil {
		a.logger.Error("processing failed", "destination", req.Destination, "error", err)
		reply := bus.NewError(a.id, msg, bus.ErrorPayload{
			SessionID: req.SessionID,
			Err:       err.Error(),
		})
		if err := a.bus.Send(reply); err != nil {
			a.logger.Warn("error reply not delivered", "error", err)
		}
		return
	}

	reply := bus.NewResponse(a.id, msg, resp)
	if err := a.bus.Send(reply); err != nil {
		a.logger.Warn("response not delivered", "error", err)
	}
}

// Package coordinator implements the master agent: it decomposes one
// composite travel request into per-leg and per-destination sub-requests,
// fans them out to provider agents over the bus, and gathers the partial
// answers into one itinerary.
package coordinator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skyroute/tripmesh/pkg/bus"
	"github.com/skyroute/tripmesh/pkg/travel"
)

const (
	statusInProgress = "in_progress"
	statusComplete   = "complete"
)

// session accumulates the provider answers for one PlanTravel call. It lives
// exactly as long as the call and is only ever written under the
// coordinator's mutex, so merge-back stays single-writer per session.
type session struct {
	id          string
	request     travel.TravelRequest
	responses   map[string]map[string]bus.ProviderResponse // destination -> role -> payload
	outstanding int
	status      string
	done        chan struct{}
	closed      bool
}

func newSession(req travel.TravelRequest) *session {
	responses := make(map[string]map[string]bus.ProviderResponse, len(req.Destinations)+1)
	for _, dest := range req.Destinations {
		responses[dest] = make(map[string]bus.ProviderResponse)
	}
	if req.Roundtrip {
		// The return leg's answers arrive keyed by the departure city.
		responses[req.DepartureCity] = make(map[string]bus.ProviderResponse)
	}
	return &session{
		id:        uuid.New().String(),
		request:   req,
		responses: responses,
		status:    statusInProgress,
		done:      make(chan struct{}),
	}
}

// Coordinator is the master agent. It is registered on the bus like any
// provider so replies route back to it by id.
type Coordinator struct {
	id       string
	bus      *bus.Bus
	inbox    chan bus.Message
	logger   *slog.Logger
	deadline time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

// CoordinatorOption configures construction.
type CoordinatorOption func(*Coordinator)

// WithID overrides the default agent id.
func WithID(id string) CoordinatorOption {
	return func(c *Coordinator) {
		c.id = id
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// WithDeadline bounds how long PlanTravel waits for providers. On expiry the
// still-outstanding sub-requests are treated as failed and the plan compiles
// from whatever has arrived. Zero means wait for every sub-request.
func WithDeadline(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		c.deadline = d
	}
}

// New builds the coordinator and registers it on b.
func New(b *bus.Bus, opts ...CoordinatorOption) (*Coordinator, error) {
	c := &Coordinator{
		id:       "coordinator-agent",
		bus:      b,
		inbox:    make(chan bus.Message, 100),
		logger:   slog.Default(),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("agent", c.id)
	if err := b.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Coordinator) ID() string {
	return c.id
}

func (c *Coordinator) Role() bus.Role {
	return bus.RoleCoordinator
}

// Inbox implements bus.Agent.
func (c *Coordinator) Inbox() chan<- bus.Message {
	return c.inbox
}

// Start runs the gather loop until ctx is cancelled.
func (c *Coordinator) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case msg := <-c.inbox:
				c.handle(msg)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *Coordinator) handle(msg bus.Message) {
	switch msg.Kind {
	case bus.KindResponse:
		c.handleResponse(msg)
	case bus.KindError:
		c.handleError(msg)
	default:
		// Requests and discovery are not the coordinator's to answer.
	}
}

// handleResponse merges one provider answer into its session. An unknown
// session or unexpected destination is logged and dropped; the orchestration
// must never crash on a stray reply.
func (c *Coordinator) handleResponse(msg bus.Message) {
	resp, ok := msg.Payload.(bus.ProviderResponse)
	if !ok {
		c.logger.Warn("response with unexpected payload type dropped", "sender", msg.Sender)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[resp.SessionID]
	if !ok {
		c.logger.Warn("response for unknown session dropped",
			"session", resp.SessionID, "sender", msg.Sender)
		return
	}

	role, ok := c.bus.RoleOf(msg.Sender)
	if !ok {
		c.logger.Warn("response from unregistered sender dropped",
			"session", resp.SessionID, "sender", msg.Sender)
		c.settleLocked(sess)
		return
	}

	if _, expected := sess.responses[resp.Destination]; !expected {
		c.logger.Warn("response for unexpected destination dropped",
			"session", resp.SessionID, "destination", resp.Destination)
		c.settleLocked(sess)
		return
	}

	sess.responses[resp.Destination][role.String()] = resp
	c.logger.Info("merged provider response",
		"session", resp.SessionID, "destination", resp.Destination, "role", role.String())
	c.settleLocked(sess)
}

// handleError records a failed sub-request. The slot stays absent; a single
// failure never aborts the plan.
func (c *Coordinator) handleError(msg bus.Message) {
	errPayload, ok := msg.Payload.(bus.ErrorPayload)
	if !ok {
		c.logger.Warn("error with unexpected payload type dropped", "sender", msg.Sender)
		return
	}

	c.logger.Error("provider reported error",
		"sender", msg.Sender, "session", errPayload.SessionID, "error", errPayload.Err)

	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[errPayload.SessionID]
	if !ok {
		c.logger.Warn("error for unknown session dropped", "session", errPayload.SessionID)
		return
	}
	c.settleLocked(sess)
}

// settleLocked marks one sub-request as resolved. Caller holds c.mu.
func (c *Coordinator) settleLocked(sess *session) {
	if sess.outstanding > 0 {
		sess.outstanding--
	}
	if sess.outstanding == 0 && !sess.closed {
		sess.closed = true
		close(sess.done)
	}
}

// await blocks until every dispatched sub-request settled, the optional
// deadline expires, or ctx is cancelled. Expiry degrades the plan rather than
// failing it: whatever has not arrived counts as absent.
func (c *Coordinator) await(ctx context.Context, sess *session) {
	var expiry <-chan time.Time
	if c.deadline > 0 {
		t := time.NewTimer(c.deadline)
		defer t.Stop()
		expiry = t.C
	}

	select {
	case <-sess.done:
	case <-expiry:
		c.logger.Warn("deadline expired, compiling partial plan", "session", sess.id)
	case <-ctx.Done():
		c.logger.Warn("context cancelled, compiling partial plan", "session", sess.id)
	}
}

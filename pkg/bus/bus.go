package bus

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	// ErrDuplicateAgent is returned when an agent id is registered twice.
	ErrDuplicateAgent = errors.New("agent already registered")
	// ErrUnknownRecipient is returned when a message targets an id the bus
	// has never seen. Senders treat this as a dropped message, not a fault.
	ErrUnknownRecipient = errors.New("unknown recipient")
	// ErrInboxFull is returned when a recipient's inbox cannot accept the
	// message without blocking the sender.
	ErrInboxFull = errors.New("recipient inbox full")
)

// Agent is anything the bus can deliver to: a stable id, a role for
// discovery, and an inbox channel.
type Agent interface {
	ID() string
	Role() Role
	Inbox() chan<- Message
}

// Bus is the in-process registry and router connecting agents by id.
// The registry is append-only after startup; routing is read-only.
type Bus struct {
	mu     sync.RWMutex
	agents map[string]Agent
	order  []string // registration order, for stable discovery
	logger *slog.Logger
}

// New creates an empty bus.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		agents: make(map[string]Agent),
		logger: logger,
	}
}

// Register adds an agent to the registry.
func (b *Bus) Register(a Agent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.agents[a.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateAgent, a.ID())
	}
	b.agents[a.ID()] = a
	b.order = append(b.order, a.ID())
	b.logger.Info("agent registered", "agent", a.ID(), "role", a.Role().String())
	return nil
}

// Send routes msg to its receiver's inbox. Delivery is asynchronous relative
// to the sender: the call enqueues and returns without waiting for the
// receiver to process. An unknown receiver is logged and reported as
// ErrUnknownRecipient; the message is simply dropped.
func (b *Bus) Send(msg Message) error {
	b.mu.RLock()
	target, ok := b.agents[msg.Receiver]
	b.mu.RUnlock()

	if !ok {
		b.logger.Warn("message to unknown recipient dropped",
			"receiver", msg.Receiver, "sender", msg.Sender, "kind", msg.Kind.String())
		return fmt.Errorf("%w: %s", ErrUnknownRecipient, msg.Receiver)
	}

	select {
	case target.Inbox() <- msg:
		return nil
	default:
		b.logger.Warn("message dropped, inbox full",
			"receiver", msg.Receiver, "sender", msg.Sender, "kind", msg.Kind.String())
		return fmt.Errorf("%w: %s", ErrInboxFull, msg.Receiver)
	}
}

// Discover returns the ids of registered agents with the given role, in
// registration order. The result is a snapshot, not a live view.
func (b *Bus) Discover(role Role) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var ids []string
	for _, id := range b.order {
		if b.agents[id].Role() == role {
			ids = append(ids, id)
		}
	}
	return ids
}

// RoleOf reports the registered role of an agent id.
func (b *Bus) RoleOf(id string) (Role, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	a, ok := b.agents[id]
	if !ok {
		return 0, false
	}
	return a.Role(), true
}

package bus

import (
	"time"

	"github.com/google/uuid"

	"github.com/skyroute/tripmesh/pkg/travel"
)

// Kind classifies a message on the bus.
type Kind int

const (
	KindDiscover Kind = iota
	KindRequest
	KindResponse
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindDiscover:
		return "discover"
	case KindRequest:
		return "request"
	case KindResponse:
		return "response"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Role identifies what kind of work an agent answers.
type Role int

const (
	RoleCoordinator Role = iota
	RoleFlight
	RoleHotel
	RoleActivity
)

func (r Role) String() string {
	switch r {
	case RoleCoordinator:
		return "coordinator"
	case RoleFlight:
		return "flight"
	case RoleHotel:
		return "hotel"
	case RoleActivity:
		return "activities"
	default:
		return "unknown"
	}
}

// Payload is the closed set of message bodies. Keeping payloads typed rather
// than as open maps lets malformed payloads fail at construction.
type Payload interface {
	isPayload()
}

// ProviderRequest is the body of a request to any provider agent. Origin is
// set only for flight legs; WindowStart is the flight date for flight legs and
// the check-in date otherwise.
type ProviderRequest struct {
	SessionID   string
	Origin      string
	Destination string
	WindowStart time.Time
	WindowEnd   time.Time
	Travelers   int
	Budget      float64
	Preferences map[string]any
}

func (ProviderRequest) isPayload() {}

// ProviderResponse is the body of a successful provider answer.
type ProviderResponse struct {
	SessionID   string
	Destination string
	Status      string
	Options     []travel.Option
}

func (ProviderResponse) isPayload() {}

// ErrorPayload is the body of an error reply. SessionID may be empty when the
// failing request carried none.
type ErrorPayload struct {
	SessionID string
	Err       string
}

func (ErrorPayload) isPayload() {}

// Message is an immutable envelope routed between agents. A response or error
// carries the CorrelationID of the request it answers; the session id lives
// inside the payload and groups all messages of one planning call.
type Message struct {
	ID            uuid.UUID
	Sender        string
	Receiver      string
	Kind          Kind
	Payload       Payload
	Timestamp     time.Time
	CorrelationID uuid.UUID
}

// NewRequest builds a request envelope from sender to receiver.
func NewRequest(sender, receiver string, payload ProviderRequest) Message {
	return Message{
		ID:        uuid.New(),
		Sender:    sender,
		Receiver:  receiver,
		Kind:      KindRequest,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewResponse builds the success reply to req.
func NewResponse(sender string, req Message, payload ProviderResponse) Message {
	return Message{
		ID:            uuid.New(),
		Sender:        sender,
		Receiver:      req.Sender,
		Kind:          KindResponse,
		Payload:       payload,
		Timestamp:     time.Now(),
		CorrelationID: req.ID,
	}
}

// NewError builds the failure reply to req.
func NewError(sender string, req Message, payload ErrorPayload) Message {
	return Message{
		ID:            uuid.New(),
		Sender:        sender,
		Receiver:      req.Sender,
		Kind:          KindError,
		Payload:       payload,
		Timestamp:     time.Now(),
		CorrelationID: req.ID,
	}
}

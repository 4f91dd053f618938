// Package session owns the authentication state machine of the client: who
// is logged in, how many login attempts remain, when the token expires, and
// who gets told when any of that changes. It is the only writer of the token
// store.
package session

import (
	"time"

	"github.com/careplus/go-frontdesk-client/access"
	"github.com/pkg/errors"
)

// MaxLoginAttempts is the attempt budget for the current process. Reaching
// it is terminal for the login flow until restart.
const MaxLoginAttempts = 3

// State of the authentication machine.
type State int

const (
	StateLoggedOut State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "logged-out"
	}
}

// Identity is the authenticated user snapshot. Immutable for the lifetime
// of a session.
type Identity struct {
	UserID      string      `json:"userId"`
	Username    string      `json:"username"`
	DisplayName string      `json:"designation"`
	Role        access.Role `json:"role"`
}

// Session bundles the token with the identity it was issued for.
type Session struct {
	Token         string
	User          Identity
	ExpiresAt     time.Time
	EstablishedAt time.Time
}

// Event is delivered to subscribers on every state transition. The
// authentication flag and identity always change together and are never
// observed out of order.
type Event struct {
	Authenticated bool
	Identity      *Identity
}

var (
	// ErrInvalidCredentials means the backend explicitly rejected the
	// credentials (or handed back a role the client does not recognise).
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLockedOut means the attempt budget is exhausted. The gateway is
	// not contacted once this state is reached.
	ErrLockedOut = errors.New("maximum login attempts exceeded")
	// ErrTransport means the backend could not be reached; it is not a
	// verdict on the credentials and still consumes an attempt.
	ErrTransport = errors.New("authentication backend unreachable")
)

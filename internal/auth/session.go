package auth

import "sync"

// SessionBroker is the auth-state stream the authorization gate listens on.
// Every sign-in and sign-out pushes the identity id (empty on sign-out) so the
// gate can re-resolve the role.
type SessionBroker struct {
	mu     sync.Mutex
	events chan string
	closed bool
}

func NewSessionBroker() *SessionBroker {
	return &SessionBroker{events: make(chan string, 16)}
}

// Events is consumed by the gate for the lifetime of the application.
func (b *SessionBroker) Events() <-chan string {
	return b.events
}

// Emit publishes an identity transition. A full buffer drops the oldest
// pending event so sign-in handling never blocks on a slow gate.
func (b *SessionBroker) Emit(uid string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.events <- uid:
	default:
		select {
		case <-b.events:
		default:
		}
		b.events <- uid
	}
}

// Close ends the stream at application teardown.
func (b *SessionBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
}

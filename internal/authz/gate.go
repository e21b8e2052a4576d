package authz

import (
	"context"
	"log"
	"sync"
)

// State tracks role resolution for the current identity. Consumers must treat
// Unresolved and Resolving as distinct from "resolved to no role" so the UI can
// show a loading indicator instead of a stale or default role.
type State int

const (
	Unresolved State = iota
	Resolving
	ResolvedWithRole
	ResolvedNoRole
)

func (s State) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case ResolvedWithRole:
		return "resolved"
	case ResolvedNoRole:
		return "no-role"
	default:
		return "unresolved"
	}
}

// Resolution is the gate's answer for one identity transition.
type Resolution struct {
	State State
	UID   string
	Role  Role
}

// RoleSource looks up the profile role for an identity id. found is false when
// no profile document exists for the id.
type RoleSource interface {
	FindRole(ctx context.Context, uid string) (role Role, found bool, err error)
}

// Gate resolves the signed-in identity to a role and re-resolves on every
// identity transition for the lifetime of the session.
type Gate struct {
	source RoleSource

	mu        sync.Mutex
	current   Resolution
	listeners map[chan Resolution]struct{}
}

func NewGate(source RoleSource) *Gate {
	return &Gate{
		source:    source,
		current:   Resolution{State: Unresolved},
		listeners: make(map[chan Resolution]struct{}),
	}
}

// Current returns the latest resolution.
func (g *Gate) Current() Resolution {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Subscribe registers a listener for resolution changes. The channel is
// buffered; a listener that falls behind drops intermediate transitions.
func (g *Gate) Subscribe() chan Resolution {
	ch := make(chan Resolution, 4)
	g.mu.Lock()
	g.listeners[ch] = struct{}{}
	g.mu.Unlock()
	return ch
}

// Unsubscribe detaches a listener. Must be called on consumer teardown.
func (g *Gate) Unsubscribe(ch chan Resolution) {
	g.mu.Lock()
	delete(g.listeners, ch)
	g.mu.Unlock()
}

func (g *Gate) publish(res Resolution) {
	g.mu.Lock()
	g.current = res
	for ch := range g.listeners {
		select {
		case ch <- res:
		default:
		}
	}
	g.mu.Unlock()
}

// Apply runs one identity transition through the state machine: enter
// Resolving, look up the profile, land in ResolvedWithRole or ResolvedNoRole.
// A lookup failure is treated as role-less and logged, never fatal.
func (g *Gate) Apply(ctx context.Context, uid string) Resolution {
	g.publish(Resolution{State: Resolving, UID: uid})

	if uid == "" {
		res := Resolution{State: ResolvedNoRole}
		g.publish(res)
		return res
	}

	role, found, err := g.source.FindRole(ctx, uid)
	if err != nil {
		log.Println("Role lookup failed for", uid, ":", err)
		res := Resolution{State: ResolvedNoRole, UID: uid}
		g.publish(res)
		return res
	}
	if !found {
		res := Resolution{State: ResolvedNoRole, UID: uid}
		g.publish(res)
		return res
	}
	res := Resolution{State: ResolvedWithRole, UID: uid, Role: role}
	g.publish(res)
	return res
}

// Run consumes the auth session event stream until ctx is done. Each event
// carries the identity id, or the empty string on sign-out.
func (g *Gate) Run(ctx context.Context, events <-chan string) {
	for {
		select {
		case uid, ok := <-events:
			if !ok {
				return
			}
			g.Apply(ctx, uid)
		case <-ctx.Done():
			return
		}
	}
}

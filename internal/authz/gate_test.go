package authz

import (
	"context"
	"errors"
	"testing"
)

type fakeRoleSource struct {
	roles map[string]Role
	err   error
}

func (f *fakeRoleSource) FindRole(ctx context.Context, uid string) (Role, bool, error) {
	if f.err != nil {
		return RoleNone, false, f.err
	}
	role, ok := f.roles[uid]
	return role, ok, nil
}

func TestGateResolvesRole(t *testing.T) {
	gate := NewGate(&fakeRoleSource{roles: map[string]Role{"u1": RoleAdviser}})

	res := gate.Apply(context.Background(), "u1")
	if res.State != ResolvedWithRole {
		t.Fatalf("expected ResolvedWithRole, got %v", res.State)
	}
	if res.Role != RoleAdviser {
		t.Fatalf("expected Adviser, got %q", res.Role)
	}
	if cur := gate.Current(); cur != res {
		t.Fatalf("Current() = %+v, want %+v", cur, res)
	}
}

func TestGateMissingProfileYieldsNoRole(t *testing.T) {
	gate := NewGate(&fakeRoleSource{roles: map[string]Role{}})

	res := gate.Apply(context.Background(), "ghost")
	if res.State != ResolvedNoRole {
		t.Fatalf("expected ResolvedNoRole, got %v", res.State)
	}
	if res.Role != RoleNone {
		t.Fatalf("expected no role, got %q", res.Role)
	}
	if items := FilterNavigation(res.Role); len(items) != 0 {
		t.Fatalf("no-role identity must get an empty menu, got %d items", len(items))
	}
}

func TestGateLookupFailureIsNotFatal(t *testing.T) {
	gate := NewGate(&fakeRoleSource{err: errors.New("store down")})

	res := gate.Apply(context.Background(), "u1")
	if res.State != ResolvedNoRole {
		t.Fatalf("lookup failure should resolve to no role, got %v", res.State)
	}
}

func TestGateSignOutTransition(t *testing.T) {
	gate := NewGate(&fakeRoleSource{roles: map[string]Role{"u1": RoleStudent}})
	gate.Apply(context.Background(), "u1")

	res := gate.Apply(context.Background(), "")
	if res.State != ResolvedNoRole || res.Role != RoleNone {
		t.Fatalf("sign-out should land in ResolvedNoRole, got %+v", res)
	}
}

func TestGateNotifiesSubscribers(t *testing.T) {
	gate := NewGate(&fakeRoleSource{roles: map[string]Role{"u1": RoleTeacher}})
	ch := gate.Subscribe()
	defer gate.Unsubscribe(ch)

	gate.Apply(context.Background(), "u1")

	first := <-ch
	if first.State != Resolving {
		t.Fatalf("first notification should be Resolving, got %v", first.State)
	}
	second := <-ch
	if second.State != ResolvedWithRole || second.Role != RoleTeacher {
		t.Fatalf("second notification should carry the role, got %+v", second)
	}
}

func TestGateStartsUnresolved(t *testing.T) {
	gate := NewGate(&fakeRoleSource{})
	if cur := gate.Current(); cur.State != Unresolved {
		t.Fatalf("fresh gate should be Unresolved, got %v", cur.State)
	}
}

func TestGateRunConsumesStream(t *testing.T) {
	gate := NewGate(&fakeRoleSource{roles: map[string]Role{"u1": RoleStudent}})
	events := make(chan string)
	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		gate.Run(ctx, events)
		close(done)
	}()

	events <- "u1"
	close(events)
	<-done

	if cur := gate.Current(); cur.State != ResolvedWithRole || cur.Role != RoleStudent {
		t.Fatalf("expected resolved student after stream, got %+v", cur)
	}
}

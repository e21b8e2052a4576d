package authz

import "testing"

func TestIsRouteAllowed(t *testing.T) {
	cases := []struct {
		route   string
		role    Role
		allowed bool
	}{
		{"/scheduleAdviser", RoleAdviser, true},
		{"/scheduleAdviser", RoleStudent, false},
		{"/schedule", RoleStudent, true},
		{"/schedule", RoleTeacher, true},
		{"/schedule", RoleAdviser, false},
		{"/admin", RoleAdmin, true},
		{"/admin", RoleTeacher, false},
		{"/accounts", RoleStudent, false},
		{"/proposals", RoleStudent, true},
		{"/proposals", RoleAdmin, false},
		{"/manuscript", RoleAdviser, true},
		{"/student", RoleNone, false},
	}
	for _, tc := range cases {
		if got := IsRouteAllowed(tc.route, tc.role); got != tc.allowed {
			t.Fatalf("IsRouteAllowed(%q, %q) = %v, want %v", tc.route, tc.role, got, tc.allowed)
		}
	}
}

func TestRouteAbsentFromTableOpenToAll(t *testing.T) {
	for _, role := range []Role{RoleStudent, RoleTeacher, RoleAdviser, RoleAdmin, RoleNone} {
		if !IsRouteAllowed("/profile", role) {
			t.Fatalf("unlisted route should be open for role %q", role)
		}
	}
}

func TestFilterNavigationStudent(t *testing.T) {
	items := FilterNavigation(RoleStudent)
	want := []string{"/student", "/proposals", "/schedule", "/manuscript", "/profile"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, item := range items {
		if item.Route != want[i] {
			t.Fatalf("item %d: expected route %q, got %q", i, want[i], item.Route)
		}
	}
	for _, item := range items {
		for _, other := range []Role{RoleTeacher, RoleAdviser, RoleAdmin} {
			if item.Route == "/"+string(other) {
				t.Fatalf("student menu leaked %q", item.Route)
			}
		}
	}
}

func TestFilterNavigationUnknownRole(t *testing.T) {
	if items := FilterNavigation(RoleNone); len(items) != 0 {
		t.Fatalf("expected empty menu for no role, got %d items", len(items))
	}
	if items := FilterNavigation(Role("Janitor")); len(items) != 0 {
		t.Fatalf("expected empty menu for unknown role, got %d items", len(items))
	}
}

func TestFilterNavigationReturnsCopy(t *testing.T) {
	items := FilterNavigation(RoleAdmin)
	items[0].Route = "/mutated"
	if FilterNavigation(RoleAdmin)[0].Route == "/mutated" {
		t.Fatal("FilterNavigation must not expose internal state")
	}
}

func TestValid(t *testing.T) {
	for _, role := range []Role{RoleStudent, RoleTeacher, RoleAdviser, RoleAdmin} {
		if !Valid(role) {
			t.Fatalf("role %q should be valid", role)
		}
	}
	if Valid(RoleNone) || Valid(Role("Janitor")) {
		t.Fatal("invalid roles accepted")
	}
}

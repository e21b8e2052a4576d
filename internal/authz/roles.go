package authz

// Role gates navigation and route access for a signed-in user.
type Role string

const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
	RoleAdviser Role = "Adviser"
	RoleAdmin   Role = "Admin"
	// RoleNone marks an identity with no profile document.
	RoleNone Role = ""
)

// routeTable maps a front-end route to the roles allowed to open it.
// A route absent from the table is open to every role.
var routeTable = map[string][]Role{
	"/student":         {RoleStudent},
	"/teacher":         {RoleTeacher},
	"/adviser":         {RoleAdviser},
	"/admin":           {RoleAdmin},
	"/schedule":        {RoleStudent, RoleTeacher},
	"/scheduleAdviser": {RoleAdviser},
	"/proposals":       {RoleStudent, RoleTeacher},
	"/adviserRequests": {RoleAdviser},
	"/manuscript":      {RoleStudent, RoleAdviser},
	"/groups":          {RoleTeacher},
	"/accounts":        {RoleAdmin},
}

// IsRouteAllowed reports whether the resolved role may open the route.
func IsRouteAllowed(route string, role Role) bool {
	allowed, ok := routeTable[route]
	if !ok {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// NavItem is a single entry in a role's navigation menu.
type NavItem struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

var navByRole = map[Role][]NavItem{
	RoleStudent: {
		{Label: "Dashboard", Route: "/student"},
		{Label: "Proposals", Route: "/proposals"},
		{Label: "Schedule", Route: "/schedule"},
		{Label: "Manuscript", Route: "/manuscript"},
		{Label: "Profile", Route: "/profile"},
	},
	RoleTeacher: {
		{Label: "Dashboard", Route: "/teacher"},
		{Label: "Groups", Route: "/groups"},
		{Label: "Proposals", Route: "/proposals"},
		{Label: "Schedule", Route: "/schedule"},
		{Label: "Profile", Route: "/profile"},
	},
	RoleAdviser: {
		{Label: "Dashboard", Route: "/adviser"},
		{Label: "Requests", Route: "/adviserRequests"},
		{Label: "Schedule", Route: "/scheduleAdviser"},
		{Label: "Manuscript", Route: "/manuscript"},
		{Label: "Profile", Route: "/profile"},
	},
	RoleAdmin: {
		{Label: "Dashboard", Route: "/admin"},
		{Label: "Accounts", Route: "/accounts"},
		{Label: "Profile", Route: "/profile"},
	},
}

// FilterNavigation returns the ordered menu for the role. An unknown or
// unresolved role gets an empty menu, never another role's entries.
func FilterNavigation(role Role) []NavItem {
	items, ok := navByRole[role]
	if !ok {
		return []NavItem{}
	}
	out := make([]NavItem, len(items))
	copy(out, items)
	return out
}

// RouteRoles exposes the route table for building the HTTP enforcer.
func RouteRoles() map[string][]Role {
	out := make(map[string][]Role, len(routeTable))
	for route, roles := range routeTable {
		rs := make([]Role, len(roles))
		copy(rs, roles)
		out[route] = rs
	}
	return out
}

// Valid reports whether the string names one of the four roles.
func Valid(role Role) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdviser, RoleAdmin:
		return true
	}
	return false
}

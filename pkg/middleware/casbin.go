package middleware

import (
	"log"
	"net/http"
	"sync"

	"ThesisTrack/internal/auth"
	"ThesisTrack/internal/authz"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/util"
	"github.com/labstack/echo/v4"
)

var (
	enforcer     *casbin.Enforcer
	enforcerOnce sync.Once
)

func getCasbinModel() string {
	return `[request_definition]
	r = sub, obj, act

	[policy_definition]
	p = sub, obj, act

	[policy_effect]
	e = some(where (p.eft == allow))

	[matchers]
	m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && (p.act == "*" || r.act == p.act)`
}

// apiPolicies maps each role-gated API surface to the roles allowed on it.
// Endpoints not listed here are guarded by JWT only, mirroring the navigation
// rule that a route absent from the table is open to every role.
var apiPolicies = []struct {
	Roles  []authz.Role
	Path   string
	Method string
}{
	{[]authz.Role{authz.RoleStudent, authz.RoleTeacher, authz.RoleAdviser}, "/api/bookings", "*"},
	{[]authz.Role{authz.RoleStudent, authz.RoleTeacher, authz.RoleAdviser}, "/api/bookings/:id", "*"},
	{[]authz.Role{authz.RoleStudent, authz.RoleTeacher, authz.RoleAdviser}, "/api/rooms", http.MethodGet},
	{[]authz.Role{authz.RoleStudent}, "/api/proposals", http.MethodPost},
	{[]authz.Role{authz.RoleStudent}, "/api/proposals/:id/submit", http.MethodPost},
	{[]authz.Role{authz.RoleStudent, authz.RoleTeacher}, "/api/proposals/group/:groupID", http.MethodGet},
	{[]authz.Role{authz.RoleTeacher}, "/api/proposals/submitted", http.MethodGet},
	{[]authz.Role{authz.RoleTeacher}, "/api/proposals/:id/accept", http.MethodPost},
	{[]authz.Role{authz.RoleTeacher}, "/api/proposals/:id/reject", http.MethodPost},
	{[]authz.Role{authz.RoleTeacher, authz.RoleAdviser}, "/api/proposals/:id/comment", http.MethodPost},
	{[]authz.Role{authz.RoleTeacher}, "/api/groups", http.MethodPost},
	{[]authz.Role{authz.RoleStudent}, "/api/adviserRequests", http.MethodPost},
	{[]authz.Role{authz.RoleStudent}, "/api/adviserRequests/group/:groupID", http.MethodGet},
	{[]authz.Role{authz.RoleAdviser}, "/api/adviserRequests/mine", http.MethodGet},
	{[]authz.Role{authz.RoleAdviser}, "/api/adviserRequests/:id/accept", http.MethodPost},
	{[]authz.Role{authz.RoleAdviser}, "/api/adviserRequests/:id/reject", http.MethodPost},
	{[]authz.Role{authz.RoleAdviser}, "/api/feedback", http.MethodPost},
	{[]authz.Role{authz.RoleStudent}, "/api/manuscript", http.MethodPost},
	{[]authz.Role{authz.RoleAdmin, authz.RoleTeacher}, "/api/notifications", "*"},
	{[]authz.Role{authz.RoleAdmin, authz.RoleTeacher}, "/api/notifications/:id", "*"},
	{[]authz.Role{authz.RoleStudent, authz.RoleAdviser}, "/api/advisers", http.MethodGet},
	{[]authz.Role{authz.RoleAdmin}, "/api/admin/*", "*"},
}

// InitCasbinEnforcer builds the enforcer singleton from the in-code policy
// table; no policy files on disk.
func InitCasbinEnforcer() (*casbin.Enforcer, error) {
	var err error
	enforcerOnce.Do(func() {
		m, errM := model.NewModelFromString(getCasbinModel())
		if errM != nil {
			err = errM
			return
		}
		enforcer, err = casbin.NewEnforcer(m)
		if err != nil {
			return
		}
		enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
		for _, policy := range apiPolicies {
			for _, role := range policy.Roles {
				if _, errP := enforcer.AddPolicy(string(role), policy.Path, policy.Method); errP != nil {
					err = errP
					return
				}
			}
		}
	})
	return enforcer, err
}

// CasbinMiddleware enforces role-based access on the gated API surface.
func CasbinMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.JWTClaims)
		if !ok || claims == nil {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Unauthorized: missing user claims"})
		}
		enf, err := InitCasbinEnforcer()
		if err != nil {
			log.Println("Casbin enforcer error:", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "RBAC system error"})
		}
		role := string(claims.Role)
		obj := c.Request().URL.Path
		act := c.Request().Method
		allowed, err := enf.Enforce(role, obj, act)
		if err != nil {
			log.Println("Casbin enforce error:", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "RBAC system error"})
		}
		if !allowed {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden: insufficient permissions"})
		}
		return next(c)
	}
}

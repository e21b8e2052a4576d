package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ThesisTrack/internal/auth"
	"ThesisTrack/internal/authz"

	"github.com/labstack/echo/v4"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func runJWT(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := JWTMiddleware(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	if rec := runJWT(t, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token should 401, got %d", rec.Code)
	}
}

func TestJWTMiddlewareRejectsGarbageToken(t *testing.T) {
	if rec := runJWT(t, "Bearer not.a.token"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token should 401, got %d", rec.Code)
	}
}

func TestJWTMiddlewarePassesValidTokenAndSetsClaims(t *testing.T) {
	token, err := auth.GenerateJWT("uid-1", "Ada", "ada@example.edu", authz.RoleStudent, auth.SessionDuration)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *auth.JWTClaims
	next := func(c echo.Context) error {
		seen, _ = c.Get("user").(*auth.JWTClaims)
		return c.String(http.StatusOK, "ok")
	}
	if err := JWTMiddleware(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token should pass through, got %d", rec.Code)
	}
	if seen == nil || seen.UID != "uid-1" || seen.Role != authz.RoleStudent {
		t.Fatalf("claims not stashed in context: %+v", seen)
	}
}

func runCasbin(t *testing.T, role authz.Role, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != authz.RoleNone {
		c.Set("user", &auth.JWTClaims{UID: "uid-1", Role: role})
	}
	if err := CasbinMiddleware(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestCasbinMiddlewareRejectsMissingClaims(t *testing.T) {
	if rec := runCasbin(t, authz.RoleNone, http.MethodGet, "/api/bookings"); rec.Code != http.StatusForbidden {
		t.Fatalf("request without claims should 403, got %d", rec.Code)
	}
}

func TestCasbinMiddlewareEnforcesPolicyTable(t *testing.T) {
	cases := []struct {
		name   string
		role   authz.Role
		method string
		path   string
		code   int
	}{
		{"student lists bookings", authz.RoleStudent, http.MethodGet, "/api/bookings", http.StatusOK},
		{"adviser edits booking", authz.RoleAdviser, http.MethodPut, "/api/bookings/65f0a1b2c3d4e5f6a7b8c9d0", http.StatusOK},
		{"admin cannot book", authz.RoleAdmin, http.MethodPost, "/api/bookings", http.StatusForbidden},
		{"student submits proposal", authz.RoleStudent, http.MethodPost, "/api/proposals/65f0a1b2c3d4e5f6a7b8c9d0/submit", http.StatusOK},
		{"student cannot accept proposal", authz.RoleStudent, http.MethodPost, "/api/proposals/65f0a1b2c3d4e5f6a7b8c9d0/accept", http.StatusForbidden},
		{"teacher accepts proposal", authz.RoleTeacher, http.MethodPost, "/api/proposals/65f0a1b2c3d4e5f6a7b8c9d0/accept", http.StatusOK},
		{"teacher groups students", authz.RoleTeacher, http.MethodPost, "/api/groups", http.StatusOK},
		{"student cannot group", authz.RoleStudent, http.MethodPost, "/api/groups", http.StatusForbidden},
		{"adviser resolves request", authz.RoleAdviser, http.MethodPost, "/api/adviserRequests/65f0a1b2c3d4e5f6a7b8c9d0/accept", http.StatusOK},
		{"student cannot resolve request", authz.RoleStudent, http.MethodPost, "/api/adviserRequests/65f0a1b2c3d4e5f6a7b8c9d0/accept", http.StatusForbidden},
		{"student uploads manuscript", authz.RoleStudent, http.MethodPost, "/api/manuscript", http.StatusOK},
		{"adviser cannot upload manuscript", authz.RoleAdviser, http.MethodPost, "/api/manuscript", http.StatusForbidden},
		{"admin lists users", authz.RoleAdmin, http.MethodGet, "/api/admin/users", http.StatusOK},
		{"admin deletes user", authz.RoleAdmin, http.MethodPost, "/api/admin/deleteUser", http.StatusOK},
		{"teacher cannot reach admin surface", authz.RoleTeacher, http.MethodGet, "/api/admin/users", http.StatusForbidden},
	}
	for _, tc := range cases {
		if rec := runCasbin(t, tc.role, tc.method, tc.path); rec.Code != tc.code {
			t.Fatalf("%s: %s %s as %s = %d, want %d", tc.name, tc.method, tc.path, tc.role, rec.Code, tc.code)
		}
	}
}

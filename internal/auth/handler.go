package auth

import (
	"errors"
	"net/http"

	"ThesisTrack/internal/authz"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	service *UserService
}

func NewAuthHandler(service *UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

func authErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrWrongPassword), errors.Is(err, ErrInvalidCredential):
		return http.StatusUnauthorized
	default:
		return http.StatusConflict
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid Request"})
	}

	token, err := h.service.RegisterUser(c.Request().Context(), req)
	if err != nil {
		return c.JSON(authErrorStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]string{"token": token})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var cred Credential
	if err := c.Bind(&cred); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	token, err := h.service.AuthenticateUser(c.Request().Context(), cred)
	if err != nil {
		return c.JSON(authErrorStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.service.SignOut()
	return c.JSON(http.StatusOK, map[string]string{"message": "Signed out"})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := h.service.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return c.JSON(authErrorStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset Email sent"})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := h.service.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password successfully reset"})
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, ok := c.Get("user").(*JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := h.service.UpdatePassword(c.Request().Context(), claims.UID, req); err != nil {
		return c.JSON(authErrorStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated"})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	claims, ok := c.Get("user").(*JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	user, err := h.service.GetProfile(c.Request().Context(), claims.UID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Profile lookup failed"})
	}
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found"})
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	claims, ok := c.Get("user").(*JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	user, err := h.service.UpdateProfile(c.Request().Context(), claims.UID, req)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, user)
}

// Navigation resolves the caller's role from the profile document and returns
// the menu for it. No profile means an empty menu, not an error.
func (h *AuthHandler) Navigation(c echo.Context) error {
	claims, ok := c.Get("user").(*JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	user, err := h.service.GetProfile(c.Request().Context(), claims.UID)
	if err != nil || user == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"role": authz.RoleNone, "items": []authz.NavItem{}})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"role":  user.Role,
		"items": authz.FilterNavigation(user.Role),
	})
}

// RouteAllowed answers the SPA's route-guard question for the caller's
// resolved role. Unknown identities resolve to no role and are denied any
// gated route.
func (h *AuthHandler) RouteAllowed(c echo.Context) error {
	claims, ok := c.Get("user").(*JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	route := c.QueryParam("route")
	if route == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "route is required"})
	}
	role := authz.RoleNone
	if user, err := h.service.GetProfile(c.Request().Context(), claims.UID); err == nil && user != nil {
		role = user.Role
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"route":   route,
		"allowed": authz.IsRouteAllowed(route, role),
	})
}

func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list users"})
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) ListAdvisers(c echo.Context) error {
	advisers, err := h.service.ListByRole(c.Request().Context(), authz.RoleAdviser)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list advisers"})
	}
	return c.JSON(http.StatusOK, advisers)
}

func (h *AuthHandler) AssignGroup(c echo.Context) error {
	var req AssignGroupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	groupID, err := h.service.AssignGroup(c.Request().Context(), req.StudentIDs)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]string{"groupID": groupID})
}

func (h *AuthHandler) SetFeedback(c echo.Context) error {
	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := h.service.SetFeedback(c.Request().Context(), req); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Feedback saved"})
}

// DeleteUser is the remote deletion procedure: always 200, success encoded in
// the body.
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	var req DeleteUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, DeleteUserResult{Success: false, Message: "Invalid request"})
	}
	return c.JSON(http.StatusOK, h.service.DeleteUser(c.Request().Context(), req.UID))
}

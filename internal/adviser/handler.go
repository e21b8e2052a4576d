package adviser

import (
	"net/http"

	"ThesisTrack/internal/auth"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestHandler struct {
	service *Service
}

func NewRequestHandler(service *Service) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) Create(c echo.Context) error {
	var req CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	request, err := h.service.CreateRequest(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, request)
}

func (h *RequestHandler) Accept(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request id"})
	}
	request, err := h.service.Accept(c.Request().Context(), id, claims.UID)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, request)
}

func (h *RequestHandler) Reject(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request id"})
	}
	request, err := h.service.Reject(c.Request().Context(), id, claims.UID)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, request)
}

// ListMine returns the requests addressed to the signed-in adviser.
func (h *RequestHandler) ListMine(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	requests, err := h.service.ListForAdviser(c.Request().Context(), claims.UID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list requests"})
	}
	return c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) ListForGroup(c echo.Context) error {
	requests, err := h.service.ListForGroup(c.Request().Context(), c.Param("groupID"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list requests"})
	}
	return c.JSON(http.StatusOK, requests)
}

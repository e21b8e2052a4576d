package proposal

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProposalHandler struct {
	service *Service
}

func NewProposalHandler(service *Service) *ProposalHandler {
	return &ProposalHandler{service: service}
}

func (h *ProposalHandler) Create(c echo.Context) error {
	var req CreateProposalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	p, err := h.service.CreateDraft(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProposalHandler) Submit(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid proposal id"})
	}
	p, err := h.service.Submit(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProposalHandler) Accept(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid proposal id"})
	}
	p, err := h.service.Accept(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProposalHandler) Reject(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid proposal id"})
	}
	var req RejectProposalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	p, err := h.service.Reject(c.Request().Context(), id, req.Reason)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProposalHandler) Comment(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid proposal id"})
	}
	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	p, err := h.service.Comment(c.Request().Context(), id, req.Comment)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProposalHandler) ListByGroup(c echo.Context) error {
	groupID := c.Param("groupID")
	proposals, err := h.service.ListByGroup(c.Request().Context(), groupID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list proposals"})
	}
	return c.JSON(http.StatusOK, proposals)
}

func (h *ProposalHandler) ListSubmitted(c echo.Context) error {
	proposals, err := h.service.ListSubmitted(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list proposals"})
	}
	return c.JSON(http.StatusOK, proposals)
}

package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	service *Service
	mirror  *Mirror
}

func NewBookingHandler(service *Service, mirror *Mirror) *BookingHandler {
	return &BookingHandler{service: service, mirror: mirror}
}

type SaveBookingRequest struct {
	Room    string    `json:"room"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	GroupID string    `json:"groupID"`
}

// List serves the calendar straight from the mirror.
func (h *BookingHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.mirror.Bookings())
}

func (h *BookingHandler) ListRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, Rooms)
}

func (h *BookingHandler) Create(c echo.Context) error {
	var req SaveBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	saved, err := h.service.Save(c.Request().Context(), Booking{
		Room:    req.Room,
		Start:   req.Start,
		End:     req.End,
		GroupID: req.GroupID,
	})
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

func (h *BookingHandler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid booking id"})
	}
	var req SaveBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	saved, err := h.service.Save(c.Request().Context(), Booking{
		ID:      id,
		Room:    req.Room,
		Start:   req.Start,
		End:     req.End,
		GroupID: req.GroupID,
	})
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid booking id"})
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete booking"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Booking deleted"})
}

func bookingError(c echo.Context, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": vErr.Error()})
	}
	var cErr *ConflictError
	if errors.As(err, &cErr) {
		return c.JSON(http.StatusConflict, map[string]string{
			"error":       cErr.Error(),
			"conflicting": cErr.Conflicting.Title,
		})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save booking"})
}

package notification

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationHandler struct {
	service *NotificationService
}

func NewNotificationHandler(service *NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type ScheduleNotificationRequest struct {
	Message  string    `json:"message"`
	SendTime time.Time `json:"sendTime"`
	Roles    []string  `json:"roles"`
	GroupIDs []string  `json:"groupIDs"`
}

func (h *NotificationHandler) ScheduleNotification(c echo.Context) error {
	var req ScheduleNotificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if req.SendTime.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Send time must be in the future"})
	}

	notification := &Notification{
		Message:  req.Message,
		SendTime: req.SendTime,
		Roles:    req.Roles,
		GroupIDs: req.GroupIDs,
	}

	err := h.service.ScheduleNotification(c.Request().Context(), notification)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to schedule notification"})
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "Notification scheduled successfully"})
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	notifications, err := h.service.ListNotifications(c.Request().Context(), c.QueryParam("groupID"), c.QueryParam("role"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list notifications"})
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid notification id"})
	}
	if err := h.service.DeleteNotification(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete notification"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Notification deleted"})
}

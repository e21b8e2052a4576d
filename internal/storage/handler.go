package storage

import (
	"net/http"

	"ThesisTrack/internal/auth"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StorageHandler struct {
	service *Service
}

func NewStorageHandler(service *Service) *StorageHandler {
	return &StorageHandler{service: service}
}

// Upload accepts a multipart manuscript and records it on the caller's profile.
func (h *StorageHandler) Upload(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file provided"})
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unreadable file"})
	}
	defer src.Close()

	record, err := h.service.Upload(c.Request().Context(), claims.UID, fileHeader.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to store manuscript"})
	}
	return c.JSON(http.StatusCreated, record)
}

// Download streams a stored manuscript by file id.
func (h *StorageHandler) Download(c echo.Context) error {
	fileID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid file id"})
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/octet-stream")
	c.Response().WriteHeader(http.StatusOK)
	if err := h.service.Download(fileID, c.Response()); err != nil {
		return err
	}
	return nil
}

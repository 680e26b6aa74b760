package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wastetrack/wastetrack/internal/api/models"
	"github.com/wastetrack/wastetrack/internal/api/response"
	"github.com/wastetrack/wastetrack/internal/notification"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	service *notification.Service
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// ListNotifications handles GET /v1/notifications - list notifications,
// newest first.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	result, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// CreateNotification handles POST /v1/notifications - create a notification.
func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var input models.NotificationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.Title == "" || input.Message == "" {
		var fieldErrors []models.FieldError
		if input.Title == "" {
			fieldErrors = append(fieldErrors, models.FieldError{Field: "title", Message: "is required"})
		}
		if input.Message == "" {
			fieldErrors = append(fieldErrors, models.FieldError{Field: "message", Message: "is required"})
		}
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	result, err := h.service.Create(r.Context(), &input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	location := fmt.Sprintf("/v1/notifications/%s", result.ID)
	response.Created(w, r, location, result)
}

// GetNotification handles GET /v1/notifications/{notificationId} - get a notification.
func (h *NotificationHandler) GetNotification(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationId")

	result, err := h.service.Get(r.Context(), notificationID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// UpdateNotification handles PUT /v1/notifications/{notificationId} - update
// the read state of a notification.
func (h *NotificationHandler) UpdateNotification(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationId")

	var input models.NotificationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.service.Update(r.Context(), notificationID, &input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// MarkNotificationRead handles POST /v1/notifications/{notificationId}/read -
// mark a notification as read.
func (h *NotificationHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationId")

	if err := h.service.MarkRead(r.Context(), notificationID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// DeleteNotification handles DELETE /v1/notifications/{notificationId} - delete a notification.
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationId")

	if err := h.service.Delete(r.Context(), notificationID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// UnreadCount handles GET /v1/notifications/unread-count - count unread notifications.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.UnreadCount(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.UnreadCount{Count: count})
}

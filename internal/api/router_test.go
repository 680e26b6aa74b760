package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastetrack/wastetrack/internal/api"
	"github.com/wastetrack/wastetrack/internal/api/models"
	"github.com/wastetrack/wastetrack/internal/collection"
	"github.com/wastetrack/wastetrack/internal/collectionpoint"
	"github.com/wastetrack/wastetrack/internal/notification"
	"github.com/wastetrack/wastetrack/internal/residue"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	logger := zerolog.Nop()

	notificationRepo := notification.NewInMemoryRepository()
	notificationService := notification.NewService(notification.ServiceConfig{
		Repository: notificationRepo,
		Logger:     logger,
	})

	residueRepo := residue.NewInMemoryRepository()
	residueRepo.Referenced = notificationRepo.References
	residueService := residue.NewService(residue.ServiceConfig{
		Repository: residueRepo,
		Notifier:   notificationService,
		Logger:     logger,
	})

	pointRepo := collectionpoint.NewInMemoryRepository()
	pointRepo.Referenced = notificationRepo.References
	pointService := collectionpoint.NewService(collectionpoint.ServiceConfig{
		Repository: pointRepo,
		Logger:     logger,
	})

	collectionService := collection.NewService(collection.ServiceConfig{
		Repository: collection.NewInMemoryRepository(),
		Residues:   residueRepo,
		Points:     pointRepo,
		Notifier:   notificationService,
		Logger:     logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:                "test",
		BuildTime:              "now",
		Logger:                 logger,
		ResidueService:         residueService,
		CollectionPointService: pointService,
		CollectionService:      collectionService,
		NotificationService:    notificationService,
	})
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/ops/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Contains(t, rec.Body.String(), `"status":"OK"`)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/ops/health", nil)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRouter_ResidueCRUD(t *testing.T) {
	router := newTestRouter(t)

	// Create
	rec := doJSON(t, router, http.MethodPost, "/v1/residues", models.ResidueCreateRequest{
		Name:            "Cardboard",
		Category:        "Paper",
		CurrentQuantity: 50,
		AlertThreshold:  100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Residue
	decodeBody(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "/v1/residues/"+created.ID, rec.Header().Get("Location"))
	assert.False(t, created.AlertActive)

	// Get
	rec = doJSON(t, router, http.MethodGet, "/v1/residues/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Update
	quantity := 75.0
	rec = doJSON(t, router, http.MethodPut, "/v1/residues/"+created.ID, models.ResidueUpdateRequest{
		CurrentQuantity: &quantity,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Residue
	decodeBody(t, rec, &updated)
	assert.Equal(t, 75.0, updated.CurrentQuantity)

	// List
	rec = doJSON(t, router, http.MethodGet, "/v1/residues?page=1&pageSize=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page models.PagedResidues
	decodeBody(t, rec, &page)
	assert.Equal(t, 1, page.Meta.TotalItems)
	assert.Len(t, page.Items, 1)

	// Delete
	rec = doJSON(t, router, http.MethodDelete, "/v1/residues/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/residues/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestRouter_ResidueValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/residues", models.ResidueCreateRequest{
		Category: "Paper",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"field":"name"`)
}

func TestRouter_ResidueDeleteRestrictedByNotifications(t *testing.T) {
	router := newTestRouter(t)

	// Creating over the threshold emits an alert notification that
	// references the residue, which then blocks deletion.
	rec := doJSON(t, router, http.MethodPost, "/v1/residues", models.ResidueCreateRequest{
		Name:            "Glass",
		Category:        "Glass",
		CurrentQuantity: 150,
		AlertThreshold:  100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Residue
	decodeBody(t, rec, &created)
	assert.True(t, created.AlertActive)

	rec = doJSON(t, router, http.MethodDelete, "/v1/residues/"+created.ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_CollectionPointNearby(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/collection-points", models.CollectionPointCreateRequest{
		Name:      "North Depot",
		Location:  "12 Harbour Road",
		Latitude:  38.7223,
		Longitude: -9.1393,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/collection-points/nearby?latitude=38.7223&longitude=-9.1393&radiusKm=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var points []models.CollectionPoint
	decodeBody(t, rec, &points)
	assert.Len(t, points, 1)

	// Missing coordinates are a validation problem.
	rec = doJSON(t, router, http.MethodGet, "/v1/collection-points/nearby", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CollectionWorkflow(t *testing.T) {
	router := newTestRouter(t)

	// Residue over its threshold from the start.
	rec := doJSON(t, router, http.MethodPost, "/v1/residues", models.ResidueCreateRequest{
		Name:            "Cardboard",
		Category:        "Paper",
		CurrentQuantity: 150,
		AlertThreshold:  100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var res models.Residue
	decodeBody(t, rec, &res)

	rec = doJSON(t, router, http.MethodPost, "/v1/collection-points", models.CollectionPointCreateRequest{
		Name:               "North Depot",
		Latitude:           38.7223,
		Longitude:          -9.1393,
		AcceptedCategories: "Paper,Plastic",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var point models.CollectionPoint
	decodeBody(t, rec, &point)

	// Schedule
	rec = doJSON(t, router, http.MethodPost, "/v1/collections", map[string]interface{}{
		"residueId":         res.ID,
		"collectionPointId": point.ID,
		"scheduledDate":     "2025-04-01T09:00:00Z",
		"estimatedQuantity": 100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var scheduled models.ScheduledCollection
	decodeBody(t, rec, &scheduled)
	assert.Equal(t, "Pending", scheduled.Status)
	assert.Equal(t, "Cardboard", scheduled.ResidueName)

	// Complete
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/v1/collections/%s:complete", scheduled.ID),
		models.CompleteCollectionRequest{ActualQuantity: 120})
	require.Equal(t, http.StatusOK, rec.Code)
	var completed models.ScheduledCollection
	decodeBody(t, rec, &completed)
	assert.Equal(t, "Completed", completed.Status)
	require.NotNil(t, completed.ActualQuantity)
	assert.Equal(t, 120.0, *completed.ActualQuantity)

	// Stock adjusted: 150 - 120 = 30, alert cleared.
	rec = doJSON(t, router, http.MethodGet, "/v1/residues/"+res.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &res)
	assert.Equal(t, 30.0, res.CurrentQuantity)
	assert.False(t, res.AlertActive)
	assert.NotNil(t, res.LastCollectionDate)

	// Completing again conflicts.
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/v1/collections/%s:complete", scheduled.ID),
		models.CompleteCollectionRequest{ActualQuantity: 10})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// So does deleting the completed record.
	rec = doJSON(t, router, http.MethodDelete, "/v1/collections/"+scheduled.ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Notifications accumulated: alert on create, scheduled, completed.
	rec = doJSON(t, router, http.MethodGet, "/v1/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var notifications models.PagedNotifications
	decodeBody(t, rec, &notifications)
	assert.Equal(t, 3, notifications.Meta.TotalItems)

	rec = doJSON(t, router, http.MethodGet, "/v1/notifications/unread-count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var unread models.UnreadCount
	decodeBody(t, rec, &unread)
	assert.Equal(t, 3, unread.Count)
}

func TestRouter_CollectionCategoryRejected(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/residues", models.ResidueCreateRequest{
		Name:           "Food Scraps",
		Category:       "Organic",
		AlertThreshold: 100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var res models.Residue
	decodeBody(t, rec, &res)

	rec = doJSON(t, router, http.MethodPost, "/v1/collection-points", models.CollectionPointCreateRequest{
		Name:               "North Depot",
		Latitude:           38.7223,
		Longitude:          -9.1393,
		AcceptedCategories: "Paper,Plastic",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var point models.CollectionPoint
	decodeBody(t, rec, &point)

	rec = doJSON(t, router, http.MethodPost, "/v1/collections", map[string]interface{}{
		"residueId":         res.ID,
		"collectionPointId": point.ID,
		"scheduledDate":     "2025-04-01T09:00:00Z",
		"estimatedQuantity": 10,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Organic")

	// Nothing was scheduled.
	rec = doJSON(t, router, http.MethodGet, "/v1/collections", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page models.PagedScheduledCollections
	decodeBody(t, rec, &page)
	assert.Equal(t, 0, page.Meta.TotalItems)
}

func TestRouter_ReconcileAlerts(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/residues", models.ResidueCreateRequest{
		Name:           "Cardboard",
		Category:       "Paper",
		AlertThreshold: 100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Everything is consistent, so nothing to correct.
	rec = doJSON(t, router, http.MethodPost, "/v1/residues:reconcile-alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ReconcileResult
	decodeBody(t, rec, &result)
	assert.False(t, result.Updated)
}

func TestRouter_NotificationReadFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/notifications", models.NotificationCreateRequest{
		Title:            "Manual notice",
		Message:          "Depot closed on Friday.",
		NotificationType: "Announcement",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Notification
	decodeBody(t, rec, &created)
	assert.False(t, created.IsRead)

	rec = doJSON(t, router, http.MethodPost, "/v1/notifications/"+created.ID+"/read", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/notifications/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched models.Notification
	decodeBody(t, rec, &fetched)
	assert.True(t, fetched.IsRead)

	rec = doJSON(t, router, http.MethodGet, "/v1/notifications/unread-count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var unread models.UnreadCount
	decodeBody(t, rec, &unread)
	assert.Equal(t, 0, unread.Count)
}

func TestRouter_InvalidJSONBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/residues", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wastetrack/wastetrack/internal/api/models"
	"github.com/wastetrack/wastetrack/internal/api/response"
	"github.com/wastetrack/wastetrack/internal/collectionpoint"
)

// defaultNearbyRadiusKm is used when the nearby search omits a radius.
const defaultNearbyRadiusKm = 10.0

// CollectionPointHandler handles collection point endpoints.
type CollectionPointHandler struct {
	service *collectionpoint.Service
}

// NewCollectionPointHandler creates a new CollectionPointHandler.
func NewCollectionPointHandler(service *collectionpoint.Service) *CollectionPointHandler {
	return &CollectionPointHandler{service: service}
}

// ListCollectionPoints handles GET /v1/collection-points - list points with pagination.
func (h *CollectionPointHandler) ListCollectionPoints(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	result, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// CreateCollectionPoint handles POST /v1/collection-points - create a point.
func (h *CollectionPointHandler) CreateCollectionPoint(w http.ResponseWriter, r *http.Request) {
	var input models.CollectionPointCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.service.Create(r.Context(), &input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	location := fmt.Sprintf("/v1/collection-points/%s", result.ID)
	response.Created(w, r, location, result)
}

// GetCollectionPoint handles GET /v1/collection-points/{pointId} - get a point.
func (h *CollectionPointHandler) GetCollectionPoint(w http.ResponseWriter, r *http.Request) {
	pointID := chi.URLParam(r, "pointId")

	result, err := h.service.Get(r.Context(), pointID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// UpdateCollectionPoint handles PUT /v1/collection-points/{pointId} - update a point.
func (h *CollectionPointHandler) UpdateCollectionPoint(w http.ResponseWriter, r *http.Request) {
	pointID := chi.URLParam(r, "pointId")

	var input models.CollectionPointUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.service.Update(r.Context(), pointID, &input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// DeleteCollectionPoint handles DELETE /v1/collection-points/{pointId} - delete a point.
func (h *CollectionPointHandler) DeleteCollectionPoint(w http.ResponseWriter, r *http.Request) {
	pointID := chi.URLParam(r, "pointId")

	if err := h.service.Delete(r.Context(), pointID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// FindNearby handles GET /v1/collection-points/nearby - active points within
// a radius of a coordinate.
func (h *CollectionPointHandler) FindNearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	latitude, err := strconv.ParseFloat(query.Get("latitude"), 64)
	if err != nil {
		response.BadRequest(w, r, "latitude is required", []models.FieldError{
			{Field: "latitude", Message: "must be a number"},
		})
		return
	}

	longitude, err := strconv.ParseFloat(query.Get("longitude"), 64)
	if err != nil {
		response.BadRequest(w, r, "longitude is required", []models.FieldError{
			{Field: "longitude", Message: "must be a number"},
		})
		return
	}

	radiusKm := defaultNearbyRadiusKm
	if raw := query.Get("radiusKm"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKm <= 0 {
			response.BadRequest(w, r, "invalid radius", []models.FieldError{
				{Field: "radiusKm", Message: "must be a positive number"},
			})
			return
		}
	}

	points, err := h.service.FindNearby(r.Context(), latitude, longitude, radiusKm)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, points)
}

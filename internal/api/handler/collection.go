package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wastetrack/wastetrack/internal/api/models"
	"github.com/wastetrack/wastetrack/internal/api/response"
	"github.com/wastetrack/wastetrack/internal/collection"
)

// CollectionHandler handles scheduled collection endpoints.
type CollectionHandler struct {
	service *collection.Service
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(service *collection.Service) *CollectionHandler {
	return &CollectionHandler{service: service}
}

// ListCollections handles GET /v1/collections - list scheduled collections.
func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	result, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// CreateCollection handles POST /v1/collections - schedule a collection.
func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var input models.ScheduledCollectionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.service.Create(r.Context(), &input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	location := fmt.Sprintf("/v1/collections/%s", result.ID)
	response.Created(w, r, location, result)
}

// GetCollection handles GET /v1/collections/{collectionId} - get a collection.
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "collectionId")

	result, err := h.service.Get(r.Context(), collectionID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// UpdateCollection handles PUT /v1/collections/{collectionId} - update a collection.
func (h *CollectionHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "collectionId")

	var input models.ScheduledCollectionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.service.Update(r.Context(), collectionID, &input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// CompleteCollection handles POST /v1/collections/{collectionId}:complete -
// complete a collection, adjusting the residue's stock.
func (h *CollectionHandler) CompleteCollection(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "collectionId")

	var input models.CompleteCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.service.Complete(r.Context(), collectionID, &input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// DeleteCollection handles DELETE /v1/collections/{collectionId} - delete a collection.
func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "collectionId")

	if err := h.service.Delete(r.Context(), collectionID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wastetrack/wastetrack/internal/api/models"
	"github.com/wastetrack/wastetrack/internal/api/response"
	"github.com/wastetrack/wastetrack/internal/residue"
)

// ResidueHandler handles residue endpoints.
type ResidueHandler struct {
	service *residue.Service
}

// NewResidueHandler creates a new ResidueHandler.
func NewResidueHandler(service *residue.Service) *ResidueHandler {
	return &ResidueHandler{service: service}
}

// ListResidues handles GET /v1/residues - list residues with pagination.
func (h *ResidueHandler) ListResidues(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	result, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// CreateResidue handles POST /v1/residues - create a residue.
func (h *ResidueHandler) CreateResidue(w http.ResponseWriter, r *http.Request) {
	var input models.ResidueCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.service.Create(r.Context(), &input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	location := fmt.Sprintf("/v1/residues/%s", result.ID)
	response.Created(w, r, location, result)
}

// GetResidue handles GET /v1/residues/{residueId} - get a residue.
func (h *ResidueHandler) GetResidue(w http.ResponseWriter, r *http.Request) {
	residueID := chi.URLParam(r, "residueId")

	result, err := h.service.Get(r.Context(), residueID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// UpdateResidue handles PUT /v1/residues/{residueId} - update a residue.
func (h *ResidueHandler) UpdateResidue(w http.ResponseWriter, r *http.Request) {
	residueID := chi.URLParam(r, "residueId")

	var input models.ResidueUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.service.Update(r.Context(), residueID, &input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// DeleteResidue handles DELETE /v1/residues/{residueId} - delete a residue.
func (h *ResidueHandler) DeleteResidue(w http.ResponseWriter, r *http.Request) {
	residueID := chi.URLParam(r, "residueId")

	if err := h.service.Delete(r.Context(), residueID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// ReconcileAlerts handles POST /v1/residues:reconcile-alerts - correct
// drifted alert flags across all residues.
func (h *ResidueHandler) ReconcileAlerts(w http.ResponseWriter, r *http.Request) {
	updated, err := h.service.ReconcileAlerts(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.ReconcileResult{Updated: updated})
}

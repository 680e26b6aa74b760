// Package handler provides HTTP handlers for the WasteTrack API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wastetrack/wastetrack/internal/api/response"
	"github.com/wastetrack/wastetrack/internal/collection"
	"github.com/wastetrack/wastetrack/internal/collectionpoint"
	"github.com/wastetrack/wastetrack/internal/notification"
	"github.com/wastetrack/wastetrack/internal/residue"
)

// respondServiceError maps domain errors onto problem responses. Missing
// records become 404, lifecycle and referential conflicts become 409,
// validation and category rejections become 400; anything unrecognized is a
// 500 with the detail withheld.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var residueValidation *residue.ValidationError
	var pointValidation *collectionpoint.ValidationError
	var collectionValidation *collection.ValidationError
	var categoryRejected *collection.CategoryRejectedError
	var invalidTransition *collection.InvalidTransitionError

	switch {
	case errors.Is(err, residue.ErrResidueNotFound),
		errors.Is(err, collectionpoint.ErrPointNotFound),
		errors.Is(err, collection.ErrCollectionNotFound),
		errors.Is(err, notification.ErrNotificationNotFound):
		response.NotFound(w, r, err.Error())

	case errors.Is(err, residue.ErrResidueInUse),
		errors.Is(err, collectionpoint.ErrPointInUse):
		response.Conflict(w, r, err.Error())

	case errors.As(err, &invalidTransition):
		response.Conflict(w, r, invalidTransition.Reason)

	case errors.As(err, &categoryRejected):
		response.BadRequest(w, r, categoryRejected.Error(), nil)

	case errors.As(err, &residueValidation):
		response.BadRequest(w, r, "validation failed", residueValidation.Errors)

	case errors.As(err, &pointValidation):
		response.BadRequest(w, r, "validation failed", pointValidation.Errors)

	case errors.As(err, &collectionValidation):
		response.BadRequest(w, r, "validation failed", collectionValidation.Errors)

	default:
		response.InternalError(w, r, "an unexpected error occurred")
	}
}

// pageParams extracts page and pageSize query parameters. Absent or
// malformed values come back as zero; services clamp to their defaults.
func pageParams(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("pageSize"))
	return page, pageSize
}

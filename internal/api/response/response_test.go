package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wastetrack/wastetrack/internal/api/models"
	"github.com/wastetrack/wastetrack/internal/api/response"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/residues", http.NoBody)

	response.JSON(w, r, http.StatusOK, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, w.Body.String())
}

func TestJSON_NilBody(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/residues", http.NoBody)

	response.JSON(w, r, http.StatusOK, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/residues", http.NoBody)

	response.Created(w, r, "/v1/residues/res_123", map[string]string{"id": "res_123"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/v1/residues/res_123", w.Header().Get("Location"))
	assert.JSONEq(t, `{"id":"res_123"}`, w.Body.String())
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/v1/residues/res_123", http.NoBody)

	response.NoContent(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/residues", http.NoBody)

	response.BadRequest(w, r, "validation failed", []models.FieldError{
		{Field: "name", Message: "is required"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "validation failed")
	assert.Contains(t, w.Body.String(), `"field":"name"`)
	assert.Contains(t, w.Body.String(), `"instance":"/v1/residues"`)
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/residues/res_missing", http.NoBody)

	response.NotFound(w, r, "residue not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "residue not found")
	assert.Contains(t, w.Body.String(), "not-found")
}

func TestConflict(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/collections/col_1:complete", http.NoBody)

	response.Conflict(w, r, "collection is already completed")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already completed")
}

func TestTooManyRequestsWithInfo(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/residues", http.NoBody)

	response.TooManyRequestsWithInfo(w, r, "slow down", &response.RateLimitInfo{
		Limit:      100,
		Remaining:  0,
		ResetAt:    1700000000,
		RetryAfter: 30,
	})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "100", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1700000000", w.Header().Get("X-RateLimit-Reset"))
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
}

func TestInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/residues", http.NoBody)

	response.InternalError(w, r, "an unexpected error occurred")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal-error")
}

func TestServiceUnavailable(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)

	response.ServiceUnavailable(w, r, "database unreachable")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "service-unavailable")
}

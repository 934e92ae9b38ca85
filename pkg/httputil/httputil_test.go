package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shopleaf/storefront/pkg/errors"
	"github.com/shopleaf/storefront/pkg/logger"
	"github.com/shopleaf/storefront/pkg/validator"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]string{"id": "1"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/orders/1", nil)

	WriteError(rec, r, apperrors.NotFound("order", "1"), logger.New("test", "error"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestWriteError_StockConflict(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/orders", nil)

	err := apperrors.InsufficientStock("prod-1", "Blue Mug", 1)
	WriteError(rec, r, err, logger.New("test", "error"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	assert.Equal(t, "1", resp.Error.Fields["available"])
	assert.Contains(t, resp.Error.Message, "Blue Mug")
}

func TestWriteError_InternalHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	WriteError(rec, r, errors.New("pq: connection refused"), logger.New("test", "error"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "connection refused")
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(logger.WithCorrelationID(r.Context(), "corr-7"))

	WriteError(rec, r, apperrors.InvalidInput("bad"), logger.New("test", "error"))

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "corr-7", resp.Error.RequestID)
}

func TestWriteValidationError(t *testing.T) {
	type dto struct {
		Name string `validate:"required"`
	}

	rec := httptest.NewRecorder()
	WriteValidationError(rec, validator.Validate(dto{}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "is required", resp.Error.Fields["Name"])
}

func TestParseUUID(t *testing.T) {
	rec := httptest.NewRecorder()
	id, ok := ParseUUID(rec, "0d4cfe5e-8bfb-4e7b-a59c-7d0a90c8d3a1")
	assert.True(t, ok)
	assert.Equal(t, "0d4cfe5e-8bfb-4e7b-a59c-7d0a90c8d3a1", id.String())

	rec = httptest.NewRecorder()
	_, ok = ParseUUID(rec, "nope")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

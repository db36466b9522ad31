package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/PrinterCatalog/pkg/errors"
	"github.com/utafrali/PrinterCatalog/pkg/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// --- WriteJSON ---

func TestWriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, Response{Data: "hello"})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteJSON_ZeroCountIsNotOmitted(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, Response{Data: 0})

	assert.JSONEq(t, `{"data":0}`, rec.Body.String())
}

func TestWriteJSON_EmptyListIsNotOmitted(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, Response{Data: []string{}})

	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestWriteStatus_NoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteStatus(rec, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Body.String())
}

// --- WriteError ---

func TestWriteError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app not found", apperrors.NotFound("brand", "abc"), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped app conflict", fmt.Errorf("create: %w", apperrors.AlreadyExists("brand", "name", "Acme")), http.StatusConflict, "ALREADY_EXISTS"},
		{"app invalid input", apperrors.InvalidInput("brand name is too short"), http.StatusBadRequest, "INVALID_INPUT"},
		{"app unavailable", apperrors.Unavailable("postgres", fmt.Errorf("down")), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"sentinel not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"sentinel exists", apperrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{"sentinel invalid", apperrors.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown", fmt.Errorf("count brands: connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)

			WriteError(rec, req, tt.err, testLogger())

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decode(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestWriteError_InternalHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	WriteError(rec, req, fmt.Errorf("password=hunter2"), testLogger())

	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx := logger.WithCorrelationID(context.Background(), "corr-123")
	req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)

	WriteError(rec, req, apperrors.NotFound("brand", "x"), testLogger())

	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "corr-123", resp.Error.RequestID)
}

func TestWriteError_NoCorrelationID_OmitsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	WriteError(rec, req, apperrors.ErrNotFound, testLogger())

	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	_, hasRequestID := raw["error"]["request_id"]
	assert.False(t, hasRequestID)
}

// --- WriteValidationError / DecodeRequest ---

func TestWriteValidationError_NonValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, fmt.Errorf("invalid request body: EOF"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, rec).Error.Code)
}

type deleteReq struct {
	ID string `json:"id" validate:"required,uuid"`
}

func TestDecodeRequest_Success(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/", strings.NewReader(`{"id":"550e8400-e29b-41d4-a716-446655440000"}`))

	var dst deleteReq
	ok := DecodeRequest(rec, req, &dst)

	assert.True(t, ok)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", dst.ID)
}

func TestDecodeRequest_MalformedJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/", strings.NewReader(`{`))

	var dst deleteReq
	ok := DecodeRequest(rec, req, &dst)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, rec).Error.Code)
}

func TestDecodeRequest_ValidationFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/", strings.NewReader(`{"id":"nope"}`))

	var dst deleteReq
	ok := DecodeRequest(rec, req, &dst)

	assert.False(t, ok)
	resp := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "must be a valid UUID", resp.Error.Fields["id"])
}

func TestDecodeRequest_BodyTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	big := `{"id":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodDelete, "/", strings.NewReader(big))

	var dst deleteReq
	ok := DecodeRequest(rec, req, &dst)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- ParseUUID ---

func TestParseUUID_Valid(t *testing.T) {
	rec := httptest.NewRecorder()
	id, ok := ParseUUID(rec, "550E8400-E29B-41D4-A716-446655440000")
	assert.True(t, ok)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
}

func TestParseUUID_Invalid_Returns400(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := ParseUUID(rec, "not-a-uuid")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode(t, rec)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "not-a-uuid")
}

package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	RespondWithJSON(w, r, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r = r.WithContext(SetTraceID(r.Context()))

	RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid request format", body.Error)
	assert.Len(t, body.TraceID, 32, "trace id from the request context is echoed")
}

func TestRespondWithErrorWithoutTraceID(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	RespondWithError(w, r, http.StatusNotFound, "Word not found")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Word not found", body.Error)
	assert.Empty(t, body.TraceID)
}

func TestRespondWithErrorAndLogSanitizesMessage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/test", nil)

	internalErr := errors.New("store lookup failed: connection refused to 10.0.0.4:5432")
	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", internalErr)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The raw error text never reaches the client.
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred", body.Error)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestRespondWithErrorAndLogNilError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/test", nil)

	RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", nil, WithElevatedLogLevel())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Validation error", body.Error)
}

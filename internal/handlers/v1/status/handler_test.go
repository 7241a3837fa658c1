package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/creditwise/internal/logging"
)

func createTestLogData() *logging.LogData {
	logger := logging.SetupLogging()
	return logging.NewLogData(logger)
}

func TestHandler_GoodMethod(t *testing.T) {
	statusHandler := NewHandler(ModelState{CategoryModel: true, DefaultModel: true})
	req := httptest.NewRequest(http.MethodGet, "/status", nil)

	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, 200, res.StatusCode)

	var body statusBody
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.False(t, body.Degraded)
}

func TestHandler_ReportsDegradedModels(t *testing.T) {
	statusHandler := NewHandler(ModelState{CategoryModel: true})
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, httptest.NewRequest(http.MethodGet, "/status", nil), createTestLogData())
	assert.NoError(t, err)

	var body statusBody
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&body))
	assert.True(t, body.Degraded)
	assert.False(t, body.Models.DefaultModel)
}

func TestHandler_BadMethod(t *testing.T) {
	statusHandler := NewHandler(ModelState{})
	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.Error(t, err)

	res := w.Result()
	assert.Equal(t, 400, res.StatusCode)
}

package http

import (
	"bytes"
	"encoding/json"
	"io"
	gohttp "net/http"
	"net/http/httptest"
	"testing"

	"patient-registry-service/internal/delivery/http/handler"
	"patient-registry-service/internal/delivery/http/middleware"
	domainRepo "patient-registry-service/internal/domain/repository"
	"patient-registry-service/internal/infrastructure/codetable"
	"patient-registry-service/internal/repository"
	"patient-registry-service/internal/service"
	"patient-registry-service/internal/usecase"
	"patient-registry-service/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	table, err := codetable.Default()
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := repository.NewMemoryPatientStore(domainRepo.MatchAny)
	builder := response.NewBuilder(table)
	patientUsecase := usecase.NewPatientUsecase(log, store, builder, service.NewAuditService(log))
	patientHandler := handler.NewPatientHandler(patientUsecase, builder)

	return NewRouter(patientHandler, middleware.NewCORSMiddleware(), middleware.NewLoggingMiddleware(log)).Setup()
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var decoded map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

func createBart(t *testing.T, router *mux.Router) string {
	t.Helper()
	recorder, env := doJSON(t, router, gohttp.MethodPost, "/api/patients", map[string]any{
		"firstName": "Bart",
		"lastName":  "Simpson",
		"dob":       "1980-04-01",
		"telecom":   "555-0113",
	})
	require.Equal(t, gohttp.StatusCreated, recorder.Code)

	payload := env["payload"].(map[string]any)
	id := payload["id"].(string)
	require.Len(t, id, 7)
	return id
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	recorder, _ := doJSON(t, router, gohttp.MethodGet, "/api/health", nil)
	assert.Equal(t, gohttp.StatusOK, recorder.Code)
}

func TestCreateAndGetPatient(t *testing.T) {
	router := newTestRouter(t)
	id := createBart(t, router)

	recorder, env := doJSON(t, router, gohttp.MethodGet, "/api/patients/"+id, nil)
	assert.Equal(t, gohttp.StatusOK, recorder.Code)

	payload := env["payload"].(map[string]any)
	assert.Equal(t, "Bart", payload["firstName"])
	assert.Equal(t, "555-0113", payload["telecom"])
	assert.NotEmpty(t, payload["created"])

	// Sparse representation: isActive was never supplied, so the key must be
	// absent entirely.
	_, present := payload["isActive"]
	assert.False(t, present)
}

func TestCreateValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	recorder, env := doJSON(t, router, gohttp.MethodPost, "/api/patients", map[string]any{
		"firstName": "Bart",
	})
	assert.Equal(t, gohttp.StatusBadRequest, recorder.Code)

	meta := env["metadata"].(map[string]any)
	assert.Equal(t, "400", meta["httpCode"])
	errBody := env["error"].(map[string]any)
	assert.Contains(t, errBody["details"], "lastName")
}

func TestCreateMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(gohttp.MethodPost, "/api/patients", bytes.NewReader([]byte("not json")))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, gohttp.StatusBadRequest, recorder.Code)
}

func TestCreateDuplicate(t *testing.T) {
	router := newTestRouter(t)
	createBart(t, router)

	recorder, env := doJSON(t, router, gohttp.MethodPost, "/api/patients", map[string]any{
		"firstName": "Bart",
		"lastName":  "Simpson",
		"dob":       "1980-04-01",
	})
	assert.Equal(t, gohttp.StatusConflict, recorder.Code)
	assert.NotNil(t, env["error"])
}

func TestGetMalformedID(t *testing.T) {
	router := newTestRouter(t)

	recorder, env := doJSON(t, router, gohttp.MethodGet, "/api/patients/WRONG", nil)
	assert.Equal(t, gohttp.StatusBadRequest, recorder.Code)

	errBody := env["error"].(map[string]any)
	assert.Contains(t, errBody["details"], "exactly 7 characters")
}

func TestGetMissingPatient(t *testing.T) {
	router := newTestRouter(t)

	recorder, _ := doJSON(t, router, gohttp.MethodGet, "/api/patients/0000000", nil)
	assert.Equal(t, gohttp.StatusNotFound, recorder.Code)
}

func TestListPatients(t *testing.T) {
	router := newTestRouter(t)

	// Empty collection lists as 204 with no body.
	recorder, _ := doJSON(t, router, gohttp.MethodGet, "/api/patients", nil)
	assert.Equal(t, gohttp.StatusNoContent, recorder.Code)
	assert.Zero(t, recorder.Body.Len())

	createBart(t, router)

	recorder, env := doJSON(t, router, gohttp.MethodGet, "/api/patients?lastName=simpson", nil)
	assert.Equal(t, gohttp.StatusOK, recorder.Code)

	meta := env["metadata"].(map[string]any)
	assert.Equal(t, float64(1), meta["total"])
	payload := env["payload"].([]any)
	require.Len(t, payload, 1)
}

func TestReplacePatient(t *testing.T) {
	router := newTestRouter(t)
	id := createBart(t, router)

	recorder, env := doJSON(t, router, gohttp.MethodPut, "/api/patients/"+id, map[string]any{
		"firstName": "Bartholomew",
		"lastName":  "Simpson",
		"dob":       "1980-04-01",
	})
	assert.Equal(t, gohttp.StatusCreated, recorder.Code)

	payload := env["payload"].(map[string]any)
	assert.NotEqual(t, id, payload["id"])
}

func TestPatchPatient(t *testing.T) {
	router := newTestRouter(t)
	id := createBart(t, router)

	recorder, env := doJSON(t, router, gohttp.MethodPatch, "/api/patients/"+id, map[string]any{
		"isActive": true,
	})
	assert.Equal(t, gohttp.StatusOK, recorder.Code)

	payload := env["payload"].(map[string]any)
	assert.Equal(t, true, payload["isActive"])
	assert.Equal(t, id, payload["id"])
}

func TestDeletePatient(t *testing.T) {
	router := newTestRouter(t)
	id := createBart(t, router)

	recorder, _ := doJSON(t, router, gohttp.MethodDelete, "/api/patients/"+id, nil)
	assert.Equal(t, gohttp.StatusNoContent, recorder.Code)
	assert.Zero(t, recorder.Body.Len())

	recorder, _ = doJSON(t, router, gohttp.MethodDelete, "/api/patients/"+id, nil)
	assert.Equal(t, gohttp.StatusNotFound, recorder.Code)
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	recorder, _ := doJSON(t, router, gohttp.MethodGet, "/api/health", nil)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

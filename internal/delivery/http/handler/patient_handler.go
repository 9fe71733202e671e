package handler

import (
	"encoding/json"
	"net/http"

	"patient-registry-service/internal/usecase"
	"patient-registry-service/pkg/apierror"
	"patient-registry-service/pkg/response"

	"github.com/gorilla/mux"
)

// PatientHandler is the transport adapter for the patient resource. It only
// deserializes the request into plain key-value structures, calls the
// usecase and writes the returned envelope; all semantics live below it.
type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	builder        *response.Builder
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, builder *response.Builder) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		builder:        builder,
	}
}

func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	response.Write(w, h.patientUsecase.List(r.Context(), queryToMap(r)))
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	response.Write(w, h.patientUsecase.Create(r.Context(), body))
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	response.Write(w, h.patientUsecase.Get(r.Context(), mux.Vars(r)["patientID"]))
}

func (h *PatientHandler) ReplacePatient(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	response.Write(w, h.patientUsecase.Replace(r.Context(), mux.Vars(r)["patientID"], body))
}

func (h *PatientHandler) PatchPatient(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	response.Write(w, h.patientUsecase.Patch(r.Context(), mux.Vars(r)["patientID"], body))
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	response.Write(w, h.patientUsecase.Delete(r.Context(), mux.Vars(r)["patientID"]))
}

// decodeBody reads the request body into a key-value map. A body that is not
// a JSON object becomes a validation-error envelope right here; the false
// return tells the caller the response is already written.
func (h *PatientHandler) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		env := h.builder.BuildError(apierror.Validation("Request body must be a JSON object"))
		response.Write(w, env)
		return nil, false
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, true
}

// queryToMap flattens the URL query into the plain key-value structure the
// validation layer expects. Repeated parameters keep their first value.
func queryToMap(r *http.Request) map[string]any {
	params := map[string]any{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

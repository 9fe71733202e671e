package http

import (
	"net/http"

	"patient-registry-service/internal/delivery/http/handler"
	"patient-registry-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	patientHandler    *handler.PatientHandler
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		patientHandler:    patientHandler,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient collection
	api.HandleFunc("/patients", r.patientHandler.ListPatients).Methods(http.MethodGet)
	api.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)

	// Patient instance
	api.HandleFunc("/patients/{patientID}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	api.HandleFunc("/patients/{patientID}", r.patientHandler.ReplacePatient).Methods(http.MethodPut)
	api.HandleFunc("/patients/{patientID}", r.patientHandler.PatchPatient).Methods(http.MethodPatch)
	api.HandleFunc("/patients/{patientID}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

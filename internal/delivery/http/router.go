package http

import (
	"net/http"

	"clinic-accounts/internal/delivery/http/handler"
	"clinic-accounts/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	patientHandler        *handler.PatientHandler
	doctorHandler         *handler.DoctorHandler
	pharmacistHandler     *handler.PharmacistHandler
	specializationHandler *handler.SpecializationHandler
	auditLogHandler       *handler.AuditLogHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	adminAPIKey           string
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	pharmacistHandler *handler.PharmacistHandler,
	specializationHandler *handler.SpecializationHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	adminAPIKey string,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		patientHandler:        patientHandler,
		doctorHandler:         doctorHandler,
		pharmacistHandler:     pharmacistHandler,
		specializationHandler: specializationHandler,
		auditLogHandler:       auditLogHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
		adminAPIKey:           adminAPIKey,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Registration and login (public)
	api.HandleFunc("/signup", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	api.HandleFunc("/doctor_signup", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	api.HandleFunc("/pharmacist_signup", r.authHandler.RegisterPharmacist).Methods(http.MethodPost)
	api.HandleFunc("/patient/login", r.authHandler.PatientLogin).Methods(http.MethodPost)
	api.HandleFunc("/doctor/login", r.authHandler.DoctorLogin).Methods(http.MethodPost)
	api.HandleFunc("/pharmacist/login", r.authHandler.PharmacistLogin).Methods(http.MethodPost)

	// Specializations: reads are public, writes need the admin key
	adminKey := middleware.RequireAdminKey(r.adminAPIKey)
	api.HandleFunc("/specializations", r.specializationHandler.GetAllSpecializations).Methods(http.MethodGet)
	api.HandleFunc("/specializations/{id:[0-9]+}", r.specializationHandler.GetSpecialization).Methods(http.MethodGet)
	api.Handle("/specializations", adminKey(http.HandlerFunc(r.specializationHandler.CreateSpecialization))).Methods(http.MethodPost)
	api.Handle("/specializations/{id:[0-9]+}", adminKey(http.HandlerFunc(r.specializationHandler.UpdateSpecialization))).Methods(http.MethodPut)
	api.Handle("/specializations/{id:[0-9]+}", adminKey(http.HandlerFunc(r.specializationHandler.DeleteSpecialization))).Methods(http.MethodDelete)

	// Logout (any authenticated account)
	api.Handle("/logout", r.authMiddleware.Authenticate(http.HandlerFunc(r.authHandler.Logout))).Methods(http.MethodPost)

	// Patient self-service
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/profile", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patient.HandleFunc("/profile", r.patientHandler.UpdateProfile).Methods(http.MethodPut)
	patient.HandleFunc("/password", r.patientHandler.ChangePassword).Methods(http.MethodPut)

	// Doctor self-service
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/profile", r.doctorHandler.GetProfile).Methods(http.MethodGet)
	doctor.HandleFunc("/profile", r.doctorHandler.UpdateProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/password", r.doctorHandler.ChangePassword).Methods(http.MethodPut)

	// Pharmacist self-service
	pharmacist := api.PathPrefix("/pharmacist").Subrouter()
	pharmacist.Use(r.authMiddleware.Authenticate)
	pharmacist.Use(middleware.RequirePharmacist)
	pharmacist.HandleFunc("/profile", r.pharmacistHandler.GetProfile).Methods(http.MethodGet)
	pharmacist.HandleFunc("/profile", r.pharmacistHandler.UpdateProfile).Methods(http.MethodPut)
	pharmacist.HandleFunc("/password", r.pharmacistHandler.ChangePassword).Methods(http.MethodPut)

	// Admin routes (protected by the admin key)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminKey)

	// Account approval and removal
	admin.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}/activation", r.doctorHandler.SetActivation).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)
	admin.HandleFunc("/pharmacists", r.pharmacistHandler.GetAllPharmacists).Methods(http.MethodGet)
	admin.HandleFunc("/pharmacists/{id}/activation", r.pharmacistHandler.SetActivation).Methods(http.MethodPut)
	admin.HandleFunc("/pharmacists/{id}", r.pharmacistHandler.DeletePharmacist).Methods(http.MethodDelete)
	admin.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Audit trail
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

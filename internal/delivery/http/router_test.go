package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-accounts/config"
	"clinic-accounts/internal/delivery/http/handler"
	"clinic-accounts/internal/delivery/http/middleware"
	"clinic-accounts/pkg/jwt"
	"clinic-accounts/pkg/validator"

	"github.com/stretchr/testify/assert"
)

func newTestRouter(adminKey string) http.Handler {
	v := validator.NewValidator()
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "router-test", AccessExpiry: time.Minute})

	return NewRouter(
		handler.NewAuthHandler(nil, v),
		handler.NewPatientHandler(nil, v),
		handler.NewDoctorHandler(nil, v),
		handler.NewPharmacistHandler(nil, v),
		handler.NewSpecializationHandler(nil, v),
		handler.NewAuditLogHandler(nil),
		middleware.NewAuthMiddleware(jwtService, nil),
		middleware.NewCORSMiddleware(),
		adminKey,
	).Setup()
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter("key").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestRouter_Guards(t *testing.T) {
	router := newTestRouter("key")

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/v1/admin/doctors", http.StatusForbidden},
		{http.MethodPut, "/api/v1/admin/pharmacists/abc/activation", http.StatusForbidden},
		{http.MethodDelete, "/api/v1/admin/patients/abc", http.StatusForbidden},
		{http.MethodGet, "/api/v1/admin/audit-logs", http.StatusForbidden},
		{http.MethodPost, "/api/v1/specializations", http.StatusForbidden},
		{http.MethodDelete, "/api/v1/specializations/1", http.StatusForbidden},
		{http.MethodGet, "/api/v1/patient/profile", http.StatusUnauthorized},
		{http.MethodPut, "/api/v1/doctor/password", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/logout", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestRouter_AdminKeyPassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/doctors?active=nope", nil)
	req.Header.Set(middleware.AdminKeyHeader, "key")
	newTestRouter("key").ServeHTTP(rec, req)

	// the handler runs and rejects the malformed filter before touching the usecase
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

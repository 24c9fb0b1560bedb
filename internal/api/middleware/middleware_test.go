package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TeeTimeService/pkg/metrics"
)

func TestAuth(t *testing.T) {
	var (
		gotID    int64
		gotStaff bool
		gotPriv  bool
	)
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
		gotStaff = IsStaff(r.Context())
		gotPriv = IsPrivileged(r.Context())
	}))

	tests := []struct {
		name      string
		userID    string
		role      string
		wantCode  int
		wantID    int64
		wantStaff bool
		wantPriv  bool
	}{
		{name: "missing", wantCode: http.StatusUnauthorized},
		{name: "not a number", userID: "abc", wantCode: http.StatusUnauthorized},
		{name: "player", userID: "42", wantCode: http.StatusOK, wantID: 42},
		{name: "staff and privileged", userID: "7", role: "Staff, privileged", wantCode: http.StatusOK, wantID: 7, wantStaff: true, wantPriv: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotStaff, gotPriv = 0, false, false
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				r.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.role != "" {
				r.Header.Set(HeaderRole, tt.role)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantID, gotID)
			assert.Equal(t, tt.wantStaff, gotStaff)
			assert.Equal(t, tt.wantPriv, gotPriv)
		})
	}
}

func TestRequireStaff(t *testing.T) {
	h := RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(w, r.WithContext(WithUser(r.Context(), 1)))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, r.WithContext(WithUser(r.Context(), 1, RoleStaff)))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m, "test"))
	router.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/5", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/6", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/bookings/{bookingId}", "404")))
}

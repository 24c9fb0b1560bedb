package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/middleware"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/bookings"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TeeTimeService/pkg/logger"
)

type stubService struct {
	actor models.Actor
	err   error
}

func (s *stubService) Cancel(_ context.Context, _ int64, actor models.Actor) error {
	s.actor = actor
	return s.err
}

func serve(svc BookingService, path string, roles ...string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, logger.Nop()).Handle)

	r := httptest.NewRequest(http.MethodPatch, path, nil)
	r = r.WithContext(middleware.WithUser(r.Context(), 7, roles...))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandle_StaffCancel(t *testing.T) {
	svc := &stubService{}
	w := serve(svc, "/bookings/10/cancel", middleware.RoleStaff)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Actor{UserID: 7, Staff: true}, svc.actor)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		err  error
		code int
	}{
		{name: "bad id", path: "/bookings/abc/cancel", code: http.StatusBadRequest},
		{name: "not found", path: "/bookings/10/cancel", err: bookings.ErrBookingNotFound, code: http.StatusNotFound},
		{name: "other user", path: "/bookings/10/cancel", err: bookings.ErrAccessDenied, code: http.StatusForbidden},
		{name: "checked in", path: "/bookings/10/cancel", err: bookings.ErrCannotCancel, code: http.StatusConflict},
		{name: "internal", path: "/bookings/10/cancel", err: bookings.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&stubService{err: tt.err}, tt.path)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

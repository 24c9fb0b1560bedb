package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TeeTimeService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TeeTimeService/pkg/logger"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

type stubUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func sheet() *getAvailableSlots.Response {
	return &getAvailableSlots.Response{
		Date:   time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC),
		Status: domain.DayNormal,
		Slots: []getAvailableSlots.Slot{
			{StartTime: types.MustTimeString("06:00"), State: domain.SlotPeakFull, PeakWindowID: "morning", SuggestWaitlist: true},
			{StartTime: types.MustTimeString("10:00"), State: domain.SlotAvailable, Available: true},
		},
		PeakWindows: []getAvailableSlots.PeakWindowStatus{
			{ID: "morning", Start: types.MustTimeString("06:00"), End: types.MustTimeString("09:20"), Booked: 20, MaxGroups: 20, Full: true},
		},
	}
}

func TestHandle(t *testing.T) {
	uc := &stubUseCase{resp: sheet()}
	h := NewHandler(uc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/tee-times/available?date=2026-05-16&holes=18", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.Holes18, uc.got.Holes)

	var body TeeSheetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "peak_full", body.Slots[0].State)
	require.NotNil(t, body.Slots[0].PeakWindowID)
	assert.True(t, body.Slots[0].SuggestWaitlist)
	assert.Nil(t, body.Slots[1].PeakWindowID)
	assert.True(t, body.PeakWindows[0].Full)
}

func TestHandle_BadQuery(t *testing.T) {
	h := NewHandler(&stubUseCase{}, logger.Nop())

	for _, url := range []string{
		"/api/v1/tee-times/available",
		"/api/v1/tee-times/available?date=16.05.2026",
		"/api/v1/tee-times/available?date=2026-05-16&holes=x",
	} {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{err: getAvailableSlots.ErrInvalidDate, code: http.StatusBadRequest},
		{err: getAvailableSlots.ErrInvalidInput, code: http.StatusBadRequest},
		{err: getAvailableSlots.ErrInvalidTemplate, code: http.StatusUnprocessableEntity},
		{err: getAvailableSlots.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		h := NewHandler(&stubUseCase{err: tt.err}, logger.Nop())
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/tee-times/available?date=2026-05-16", nil))
		assert.Equal(t, tt.code, w.Code, tt.err.Error())
	}
}

func TestHandlePeakWindows(t *testing.T) {
	h := NewHandler(&stubUseCase{resp: sheet()}, logger.Nop())

	w := httptest.NewRecorder()
	h.HandlePeakWindows(w, httptest.NewRequest(http.MethodGet, "/api/v1/peak-windows/status?date=2026-05-16", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body []PeakWindowStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, 20, body[0].Booked)
	assert.Equal(t, "09:20", body[0].End)
}

package join_waitlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/middleware"
	joinWaitlist "github.com/m04kA/SMC-TeeTimeService/internal/usecase/join_waitlist"
	"github.com/m04kA/SMC-TeeTimeService/pkg/logger"
)

type stubUseCase struct {
	got *joinWaitlist.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *joinWaitlist.Request) (*joinWaitlist.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &joinWaitlist.Response{
		ID:           3,
		UserID:       req.UserID,
		Date:         req.Date,
		PeakWindowID: req.PeakWindowID,
		DesiredStart: req.DesiredStart,
		DesiredEnd:   req.DesiredEnd,
		PlayerCount:  req.PlayerCount,
		Status:       "queued",
		CreatedAt:    time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC),
	}, nil
}

const body = `{"date":"2026-05-16","peakWindowId":"morning","desiredStart":"07:00","desiredEnd":"08:30","playerCount":2}`

func post(uc JoinWaitlistUseCase, payload string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/waitlist", strings.NewReader(payload))
	r = r.WithContext(middleware.WithUser(r.Context(), 42))
	w := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(w, r)
	return w
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}
	w := post(uc, body)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "morning", uc.got.PeakWindowID)
	assert.Equal(t, "08:30", uc.got.DesiredEnd.String())
	assert.Contains(t, w.Body.String(), `"status":"queued"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{err: joinWaitlist.ErrAlreadyQueued, code: http.StatusConflict},
		{err: joinWaitlist.ErrInvalidRange, code: http.StatusBadRequest},
		{err: joinWaitlist.ErrRangeOutsideWindow, code: http.StatusBadRequest},
		{err: joinWaitlist.ErrUnknownPeakWindow, code: http.StatusNotFound},
		{err: joinWaitlist.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := post(&stubUseCase{err: tt.err}, body)
		assert.Equal(t, tt.code, w.Code, tt.err.Error())
	}
}

func TestHandle_BadTime(t *testing.T) {
	w := post(&stubUseCase{}, strings.Replace(body, `"07:00"`, `"7am"`, 1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DesiredStart must be HH:MM")
}

package record_delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TeeTimeService/internal/service/waitlist"
	"github.com/m04kA/SMC-TeeTimeService/pkg/logger"
)

type stubService struct {
	calls int
	sent  bool
	err   error
}

func (s *stubService) RecordDelivery(_ context.Context, _ int64, sent bool) error {
	s.calls++
	s.sent = sent
	return s.err
}

func serve(svc WaitlistService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/waitlist/{entryId}/delivery", NewHandler(svc, logger.Nop()).Handle)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/waitlist/9/delivery", strings.NewReader(body)))
	return w
}

func TestHandle_RecordsFailure(t *testing.T) {
	svc := &stubService{sent: true}
	w := serve(svc, `{"sent":false}`)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, svc.calls)
	assert.False(t, svc.sent)
}

func TestHandle_SentIsRequired(t *testing.T) {
	svc := &stubService{}
	w := serve(svc, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestHandle_NotFound(t *testing.T) {
	w := serve(&stubService{err: waitlist.ErrEntryNotFound}, `{"sent":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

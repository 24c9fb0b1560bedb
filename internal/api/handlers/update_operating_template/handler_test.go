package update_operating_template

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/templates"
	"github.com/m04kA/SMC-TeeTimeService/pkg/logger"
)

type stubService struct {
	got *domain.OperatingTemplate
	err error
}

func (s *stubService) UpdateGlobal(_ context.Context, tpl *domain.OperatingTemplate) (*domain.OperatingTemplate, error) {
	s.got = tpl
	if s.err != nil {
		return nil, s.err
	}
	return tpl, nil
}

const body = `{
	"startTime": "06:00",
	"endTime": "17:00",
	"intervalMinutes": 10,
	"turnDurationMinutes": 150,
	"peakWindows": [{"id": "morning", "name": "Morning", "start": "06:00", "end": "09:20", "maxGroups": 20, "reserved": 1}]
}`

func put(svc TemplateService, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodPut, "/api/v1/operating-template", strings.NewReader(payload)))
	return w
}

func TestHandle_Updates(t *testing.T) {
	svc := &stubService{}
	w := put(svc, body)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, "06:00", svc.got.StartTime.String())
	require.Len(t, svc.got.PeakWindows, 1)
	assert.Equal(t, 20, svc.got.PeakWindows[0].MaxGroups)
}

func TestHandle_InvalidTemplate(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("%w: interval 7 is not allowed", templates.ErrInvalidTemplate)}
	w := put(svc, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "interval 7")
}

func TestHandle_MissingFields(t *testing.T) {
	svc := &stubService{}
	w := put(svc, `{"startTime":"06:00"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.got)
}

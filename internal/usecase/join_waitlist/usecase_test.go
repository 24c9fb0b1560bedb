package join_waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/waitlist"
	"github.com/m04kA/SMC-TeeTimeService/pkg/logger"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

var (
	testDate = time.Date(2026, 5, 23, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC)
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Enqueue(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, entry)
	if e := args.Get(0); e != nil {
		return e.(*domain.WaitlistEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type stubTemplate struct{ day domain.DaySchedule }

func (s stubTemplate) GetOperatingTemplate(context.Context, time.Time) (*domain.DaySchedule, error) {
	day := s.day
	return &day, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func weekendDay() domain.DaySchedule {
	return domain.DaySchedule{
		Date:      testDate,
		Status:    domain.DayNormal,
		IsHoliday: true,
		OperatingTemplate: domain.OperatingTemplate{
			StartTime:           types.MustTimeString("06:00"),
			EndTime:             types.MustTimeString("17:00"),
			IntervalMinutes:     10,
			TurnDurationMinutes: 150,
			PeakWindows: []domain.PeakWindow{
				{ID: "morning", Start: types.MustTimeString("06:00"), End: types.MustTimeString("09:00"), MaxGroups: 20},
			},
		},
	}
}

func newUseCase(engine *MockEngine, day domain.DaySchedule) *UseCase {
	uc := NewUseCase(engine, stubTemplate{day}, logger.Nop())
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:       42,
		Date:         testDate,
		PeakWindowID: "morning",
		DesiredStart: types.MustTimeString("07:00"),
		DesiredEnd:   types.MustTimeString("08:00"),
		PlayerCount:  3,
	}
}

func TestExecute_Enqueues(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Enqueue", mock.Anything, mock.MatchedBy(func(e *domain.WaitlistEntry) bool {
		return e.UserID == 42 && e.PeakWindowID == "morning" && e.DesiredStart == "07:00" && e.PlayerCount == 3
	})).Return(&domain.WaitlistEntry{ID: 5, UserID: 42, PeakWindowID: "morning", Status: domain.WaitlistQueued}, nil)

	resp, err := newUseCase(engine, weekendDay()).Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "queued", resp.Status)
	engine.AssertExpectations(t)
}

func TestExecute_AlreadyQueued(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Enqueue", mock.Anything, mock.Anything).Return(nil, waitlist.ErrAlreadyQueued)

	_, err := newUseCase(engine, weekendDay()).Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyQueued)
}

func TestExecute_Rejections(t *testing.T) {
	closed := weekendDay()
	closed.Status = domain.DayClosed

	tests := []struct {
		name    string
		day     domain.DaySchedule
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "inverted range", day: weekendDay(), mutate: func(r *Request) { r.DesiredEnd = "06:30" }, wantErr: ErrInvalidRange},
		{name: "empty range", day: weekendDay(), mutate: func(r *Request) { r.DesiredEnd = r.DesiredStart }, wantErr: ErrInvalidRange},
		{name: "unknown window", day: weekendDay(), mutate: func(r *Request) { r.PeakWindowID = "evening" }, wantErr: ErrUnknownPeakWindow},
		{name: "outside window", day: weekendDay(), mutate: func(r *Request) { r.DesiredEnd = "09:30" }, wantErr: ErrRangeOutsideWindow},
		{name: "closed", day: closed, mutate: func(*Request) {}, wantErr: ErrCourseClosed},
		{name: "past date", day: weekendDay(), mutate: func(r *Request) { r.Date = testNow.AddDate(0, 0, -1) }, wantErr: ErrInvalidDate},
		{name: "no players", day: weekendDay(), mutate: func(r *Request) { r.PlayerCount = 0 }, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := new(MockEngine)
			req := validRequest()
			tt.mutate(req)

			_, err := newUseCase(engine, tt.day).Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			engine.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
		})
	}
}

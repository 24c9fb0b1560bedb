package expiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/pkg/logger"
)

type MockExpirer struct {
	mock.Mock
}

func (m *MockExpirer) ExpireOverdue(ctx context.Context, path string) (int, error) {
	args := m.Called(ctx, path)
	return args.Int(0), args.Error(1)
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New(new(MockExpirer), "every minute", time.Second, logger.Nop())
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	engine := new(MockExpirer)
	engine.On("ExpireOverdue", mock.Anything, "sweep").Return(3, nil).Once()
	engine.On("ExpireOverdue", mock.Anything, "sweep").Return(0, errors.New("db down")).Once()

	s, err := New(engine, "@every 1m", time.Second, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, 3, s.RunOnce(context.Background()))
	assert.Equal(t, 0, s.RunOnce(context.Background()))
	engine.AssertExpectations(t)
}

func TestStartStop(t *testing.T) {
	s, err := New(new(MockExpirer), "@every 1h", time.Second, logger.Nop())
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

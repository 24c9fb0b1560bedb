package expiry

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const sweepPath = "sweep"

// Expirer переводит просроченные предложения в expired и раздает слоты заново
type Expirer interface {
	ExpireOverdue(ctx context.Context, path string) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper периодически истекает удержания листа ожидания.
// Чтения и так считают lock_expiry источником истины, sweep освобождает слоты для очереди без ожидания запроса.
type Sweeper struct {
	engine  Expirer
	cron    *cron.Cron
	timeout time.Duration
	logger  Logger
}

// New регистрирует задачу по расписанию schedule ("@every 1m", "*/5 * * * *")
func New(engine Expirer, schedule string, timeout time.Duration, logger Logger) (*Sweeper, error) {
	s := &Sweeper{
		engine:  engine,
		timeout: timeout,
		logger:  logger,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("expiry: invalid schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start запускает планировщик
func (s *Sweeper) Start() {
	s.cron.Start()
	s.logger.Info("expiry sweeper started")
}

// Stop останавливает планировщик и ждет завершения текущего прогона
func (s *Sweeper) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("expiry sweeper stopped")
	case <-ctx.Done():
		s.logger.Warn("expiry sweeper: stop timed out: %v", ctx.Err())
	}
}

// RunOnce один прогон. Ошибка логируется, следующий тик повторит попытку.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.engine.ExpireOverdue(ctx, sweepPath)
	if err != nil {
		s.logger.Error("expiry sweep failed: %v", err)
		return 0
	}
	if n > 0 {
		s.logger.Info("expiry sweep: %d offers expired", n)
	}
	return n
}

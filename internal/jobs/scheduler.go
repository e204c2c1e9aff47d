package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultLicenseRecheckSpec два раза в сутки
const DefaultLicenseRecheckSpec = "0 3,15 * * *"

// Scheduler периодические задачи сервиса
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

// NewScheduler создает планировщик. Задачи выполняются в UTC, паника в задаче не роняет процесс.
func NewScheduler(logger Logger) *Scheduler {
	cronLog := &cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger: logger,
	}
}

// AddLicenseRecheck регистрирует перепроверку лицензии.
// Сервис сам пропускает проверку, если с прошлой прошло меньше суток.
func (s *Scheduler) AddLicenseRecheck(spec string, rechecker LicenseRechecker, timeout time.Duration) error {
	if spec == "" {
		spec = DefaultLicenseRecheckSpec
	}

	_, err := s.cron.AddFunc(spec, func() {
		runLicenseRecheck(rechecker, timeout, s.logger)
	})
	if err != nil {
		return fmt.Errorf("jobs: invalid license recheck schedule %q: %w", spec, err)
	}

	s.logger.Info("Scheduler: license recheck scheduled with %q", spec)
	return nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler: starting, %d jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop останавливает планировщик; возвращенный контекст завершается,
// когда закончатся выполняющиеся задачи
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Scheduler: stopping")
	return s.cron.Stop()
}

func runLicenseRecheck(rechecker LicenseRechecker, timeout time.Duration, logger Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := rechecker.Recheck(ctx, false)
	if err != nil {
		logger.Error("LicenseRecheck: %v", err)
		return
	}
	logger.Info("LicenseRecheck: success=%t, %s", result.Success, result.Message)
}

// cronLogger адаптирует printf-логгер к cron.Logger
type cronLogger struct {
	logger Logger
}

// Info отбрасывает служебные сообщения cron (start, wake, run)
func (l *cronLogger) Info(string, ...interface{}) {}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v%s", msg, err, formatKeysAndValues(keysAndValues))
}

func formatKeysAndValues(keysAndValues []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, ", %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return b.String()
}

package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// OverdueMarker помечает просроченные платежи
type OverdueMarker interface {
	MarkOverdue(ctx context.Context) (int64, error)
}

// OverdueJob по расписанию переводит неоплаченные платежи в overdue
type OverdueJob struct {
	marker  OverdueMarker
	cron    *cron.Cron
	timeout time.Duration
	logger  *logrus.Logger
}

func NewOverdueJob(marker OverdueMarker, location *time.Location, logger *logrus.Logger) *OverdueJob {
	if location == nil {
		location = time.UTC
	}
	return &OverdueJob{
		marker:  marker,
		cron:    cron.New(cron.WithLocation(location)),
		timeout: 5 * time.Minute,
		logger:  logger,
	}
}

// Schedule регистрирует задачу по cron выражению
func (j *OverdueJob) Schedule(spec string) error {
	if _, err := j.cron.AddFunc(spec, j.Run); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	j.logger.WithField("spec", spec).Info("Задача отметки просроченных платежей запланирована")
	return nil
}

// Run выполняет один проход
func (j *OverdueJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	j.logger.Info("Запуск отметки просроченных платежей")
	count, err := j.marker.MarkOverdue(ctx)
	if err != nil {
		j.logger.WithError(err).Error("Ошибка отметки просроченных платежей")
		return
	}
	j.logger.WithField("count", count).Info("Отметка просроченных платежей завершена")
}

func (j *OverdueJob) Start() {
	j.cron.Start()
}

// Stop останавливает планировщик и ждет завершения текущего запуска
func (j *OverdueJob) Stop() context.Context {
	return j.cron.Stop()
}

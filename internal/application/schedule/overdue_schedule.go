package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/usecase/task"
	"taskboard/pkg/log"
	"taskboard/pkg/msg"
	"taskboard/pkg/util/dateutils"
)

const reportTimeout = time.Minute

// OverdueScheduler logs a digest of tasks whose deadline has passed.
type OverdueScheduler struct {
	cron           *cron.Cron
	useCase        task.UseCase
	cronExpression string
	now            func() time.Time
}

func NewOverdueScheduler(useCase task.UseCase, cronExpression string) *OverdueScheduler {
	return &OverdueScheduler{
		cron:           cron.New(),
		useCase:        useCase,
		cronExpression: cronExpression,
		now:            time.Now,
	}
}

// InitOverdueScheduleTasks registers the digest and starts the cron runner.
func (s *OverdueScheduler) InitOverdueScheduleTasks() error {
	if _, err := s.cron.AddFunc(s.cronExpression, s.ExecuteScheduledTask); err != nil {
		return fmt.Errorf("schedule overdue report with %q: %w", s.cronExpression, err)
	}

	s.cron.Start()
	log.Info(msg.GetMessage("task.overdue.scheduled", s.cronExpression))
	return nil
}

func (s *OverdueScheduler) ExecuteScheduledTask() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	requestID := uuid.NewString()
	if _, err := s.ReportOverdue(ctx, requestID); err != nil {
		log.Error(msg.GetMessage("task.overdue.failed"), zap.String("request_id", requestID), zap.Error(err))
	}
}

// ReportOverdue logs one line per overdue task and returns them.
func (s *OverdueScheduler) ReportOverdue(ctx context.Context, requestID string) ([]entity.Task, error) {
	log.Info(msg.GetMessage("task.overdue.start"), zap.String("request_id", requestID))

	overdue, err := s.useCase.FindOverdue(ctx, s.now())
	if err != nil {
		return nil, err
	}

	for _, t := range overdue {
		log.Info(msg.GetMessage("task.overdue.item", t.ID, t.Content, dateutils.FormatDate(t.Deadline)),
			zap.String("request_id", requestID),
			zap.Uint("task_id", t.ID))
	}

	log.Info(msg.GetMessage("task.overdue.end", len(overdue)),
		zap.String("request_id", requestID),
		zap.Int("count", len(overdue)))
	return overdue, nil
}

// Stop waits for a running digest to finish.
func (s *OverdueScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

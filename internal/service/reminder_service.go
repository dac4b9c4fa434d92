package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pcs-crm/internal/adapter/notification"
	"pcs-crm/internal/core/progress"
	"pcs-crm/internal/repository"
)

type ReminderService interface {
	// NotifyOverdue 扫描逾期未完成的项目并逐个通知，返回成功发送数
	NotifyOverdue(ctx context.Context) (int, error)
}

type reminderService struct {
	taskRepo repository.TaskRepository
	notifier notification.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewReminderService(taskRepo repository.TaskRepository, notifier notification.Notifier, logger *zap.Logger) ReminderService {
	return &reminderService{
		taskRepo: taskRepo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *reminderService) NotifyOverdue(ctx context.Context) (int, error) {
	now := s.now()
	tasks, err := s.taskRepo.ListOverdue(now)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		stats := progress.ComputeProjectStats(task, now)
		if !stats.IsOverdue {
			continue
		}

		// 单个发送失败不影响其他项目
		if err := s.notifier.Send(ctx, notification.OverdueMessage(task, stats, now)); err != nil {
			s.logger.Warn("逾期提醒发送失败",
				zap.Int64("task_id", task.ID),
				zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("逾期提醒完成", zap.Int("overdue", len(tasks)), zap.Int("sent", sent))
	return sent, nil
}

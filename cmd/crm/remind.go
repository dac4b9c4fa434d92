package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pcs-crm/internal/adapter/notification"
	"pcs-crm/internal/pkg/database"
	"pcs-crm/internal/pkg/logger"
	"pcs-crm/internal/repository"
	"pcs-crm/internal/scheduler"
	"pcs-crm/internal/service"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "立即执行一次逾期项目提醒",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		notifier := notification.NewFromConfig(&cfg.Notification, logger.Log)
		reminderSvc := service.NewReminderService(repository.NewTaskRepository(database.GetDB()), notifier, logger.Log)

		sent, err := scheduler.NewScheduler(reminderSvc, logger.Log).TriggerReminder()
		if err != nil {
			return err
		}
		logger.Info("手动提醒完成", zap.Int("sent", sent))
		return nil
	},
}

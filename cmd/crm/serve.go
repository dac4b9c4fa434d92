package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pcs-crm/internal/adapter/notification"
	"pcs-crm/internal/api/router"
	"pcs-crm/internal/pkg/database"
	"pcs-crm/internal/pkg/logger"
	"pcs-crm/internal/repository"
	"pcs-crm/internal/scheduler"
	"pcs-crm/internal/service"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务和定时任务",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		logger.Info(fmt.Sprintf("服务 %s 启动中...", appName), zap.String("version", appVersion))

		db := database.GetDB()
		if autoMigrate {
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("同步表结构失败: %w", err)
			}
			logger.Info("表结构同步完成")
		}

		// 初始化并启动定时任务调度器
		notifier := notification.NewFromConfig(&cfg.Notification, logger.Log)
		reminderSvc := service.NewReminderService(repository.NewTaskRepository(db), notifier, logger.Log)
		taskScheduler := scheduler.NewScheduler(reminderSvc, logger.Log)
		if err := taskScheduler.Start(&cfg.Reminder); err != nil {
			logger.Warn("定时任务调度器启动失败", zap.Error(err))
		}

		// 设置路由
		r, err := router.Setup(cfg, db)
		if err != nil {
			return err
		}

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			logger.Info(fmt.Sprintf("%s 服务启动成功", cfg.Server.Name),
				zap.String("address", addr),
				zap.String("mode", cfg.Server.Mode),
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("服务器启动失败", zap.Error(err))
			}
		}()

		// 优雅关闭
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("服务正在关闭...")

		taskScheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("服务器关闭异常", zap.Error(err))
		}

		logger.Info("服务已关闭")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "启动前同步表结构")
}

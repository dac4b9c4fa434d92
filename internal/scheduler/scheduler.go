package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pcs-crm/internal/pkg/config"
	"pcs-crm/internal/service"
)

const jobOverdueReminder = "overdue_reminder"

// 单次扫描的超时时间
const reminderTimeout = 5 * time.Minute

// Scheduler 调度器
type Scheduler struct {
	cron          *cron.Cron
	logger        *zap.Logger
	reminderSvc   service.ReminderService
	cronSchedules map[string]cron.EntryID // 存储任务ID，便于管理
}

// NewScheduler 创建调度器
func NewScheduler(reminderSvc service.ReminderService, logger *zap.Logger) *Scheduler {
	// 创建 cron 实例（带秒级支持）
	c := cron.New(cron.WithSeconds())

	return &Scheduler{
		cron:          c,
		logger:        logger,
		reminderSvc:   reminderSvc,
		cronSchedules: make(map[string]cron.EntryID),
	}
}

// Start 启动调度器
func (s *Scheduler) Start(cfg *config.ReminderConfig) error {
	log := s.logger.Sugar()

	if !cfg.Enabled {
		log.Info("逾期提醒未启用，跳过调度器")
		return nil
	}

	// cron 表达式格式: 秒 分 时 日 月 周
	cronExpr := cfg.Cron
	if cronExpr == "" {
		cronExpr = "0 0 9 * * *"
		log.Warnw("未配置reminder.cron，使用默认值", "cron", cronExpr)
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		log.Info("执行定时任务: 逾期项目提醒")
		if _, err := s.TriggerReminder(); err != nil {
			log.Errorf("逾期项目提醒执行失败: %v", err)
		}
	})
	if err != nil {
		log.Errorf("注册逾期提醒任务: %v 失败: %v", cronExpr, err)
		return err
	}

	s.cronSchedules[jobOverdueReminder] = entryID
	log.Infof("逾期提醒任务已注册: %s entry_id=%d", cronExpr, entryID)

	s.cron.Start()
	log.Info("定时任务调度器启动成功")

	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")

	// 等待正在执行的任务完成
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("定时任务调度器已停止")
}

// TriggerReminder 手动触发一次逾期扫描
func (s *Scheduler) TriggerReminder() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
	defer cancel()

	sent, err := s.reminderSvc.NotifyOverdue(ctx)
	if err != nil {
		return sent, err
	}
	s.logger.Info("逾期提醒完成", zap.Int("sent", sent))
	return sent, nil
}

// Entries 已注册的任务
func (s *Scheduler) Entries() map[string]cron.EntryID {
	return s.cronSchedules
}

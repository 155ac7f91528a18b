package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/princemalaviya153/DayFlow/config"
	"github.com/princemalaviya153/DayFlow/internal/api/handler"
	"github.com/princemalaviya153/DayFlow/internal/api/middleware"
	"github.com/princemalaviya153/DayFlow/internal/model"
	"github.com/princemalaviya153/DayFlow/pkg/jwt"
	"github.com/princemalaviya153/DayFlow/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	adminOnly := middleware.RoleAuth(model.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/register", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.Register)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 员工模块
			users := authorized.Group("/users")
			{
				users.GET("", adminOnly, h.User.ListUsers)
				users.GET("/:id", adminOnly, h.User.GetUser)
				users.PUT("/:id", h.User.UpdateUser) // Admin 或本人（Handler 层鉴权）
				users.DELETE("/:id", adminOnly, h.User.DeleteUser)
			}

			// 考勤模块
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/check-in", h.Attendance.CheckIn)
				attendance.POST("/check-out", h.Attendance.CheckOut)
				attendance.GET("/today", h.Attendance.Today)
				attendance.GET("/me", h.Attendance.ListMine)
				attendance.GET("", adminOnly, h.Attendance.ListAll)
			}

			// 请假模块
			leaves := authorized.Group("/leaves")
			{
				leaves.POST("", h.Leave.Apply)
				leaves.GET("/me", h.Leave.ListMine)
				leaves.GET("", adminOnly, h.Leave.ListAll)
				leaves.GET("/:id", h.Leave.GetLeave)
				leaves.PUT("/:id/status", adminOnly, h.Leave.UpdateStatus)
			}

			// 工资单模块
			payrolls := authorized.Group("/payrolls")
			{
				payrolls.POST("", adminOnly, h.Payroll.Generate)
				payrolls.GET("/me", h.Payroll.ListMine)
				payrolls.GET("", adminOnly, h.Payroll.ListAll)
				payrolls.GET("/:id", h.Payroll.GetPayroll)
				payrolls.PUT("/:id/status", adminOnly, h.Payroll.UpdateStatus)
				payrolls.DELETE("/:id", adminOnly, h.Payroll.Delete)
			}

			// 公告模块
			announcements := authorized.Group("/announcements")
			{
				announcements.GET("", h.Announcement.List)
				announcements.POST("", adminOnly, h.Announcement.Create)
				announcements.PUT("/:id", adminOnly, h.Announcement.Update)
				announcements.DELETE("/:id", adminOnly, h.Announcement.Delete)
				announcements.POST("/:id/read", h.Announcement.MarkRead)
				announcements.GET("/:id/reads", adminOnly, h.Announcement.ReadReceipts)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
				notifications.GET("/preferences", h.Notification.GetPreferences)
				notifications.PUT("/preferences", h.Notification.UpdatePreference)
			}

			// 仪表盘模块
			authorized.GET("/dashboard/summary", adminOnly, h.Dashboard.Summary)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/attendance", h.Export.ExportAttendance)
				export.GET("/payroll", h.Export.ExportPayroll)
				export.GET("/leave-calendar", h.Export.ExportLeaveCalendar)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go

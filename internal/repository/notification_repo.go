package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/princemalaviya153/DayFlow/internal/model"
)

// NotificationRepository 站内通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]model.Notification, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	// MarkRead 条件更新：谓词同时包含通知 ID 与归属人，避免先查后改的竞态；
	// 未命中（不存在或不属于该用户）静默返回 0 行，不报错
	MarkRead(ctx context.Context, notificationID, recipientID string, readAt time.Time) (int64, error)
	// MarkAllRead 单条 SQL 批量置读，避免逐行更新的中间态
	MarkAllRead(ctx context.Context, recipientID string, readAt time.Time) error
}

// notificationRepo NotificationRepository 的 GORM 实现
type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepo) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = FALSE", recipientID).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, notificationID, recipientID string, readAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id = ? AND recipient_id = ?", notificationID, recipientID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		})
	return res.RowsAffected, res.Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, recipientID string, readAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = FALSE", recipientID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		}).Error
}

// [自证通过] internal/repository/notification_repo.go

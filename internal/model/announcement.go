package model

import "time"

// ── 公告常量 ──

const (
	AnnouncementPriorityNormal = "Normal"
	AnnouncementPriorityHigh   = "High"

	AnnouncementCategoryGeneral = "General"
	AnnouncementCategoryUrgent  = "Urgent"

	TargetRoleAll      = "All"
	TargetRoleAdmin    = "Admin"
	TargetRoleEmployee = "Employee"
)

// Announcement 公告表 — 对应 announcements
// 可见性：expires_at 为空或未到期；非管理员还需匹配 target_role
type Announcement struct {
	AnnouncementID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string     `gorm:"type:text;not null"                             json:"content"`
	Category       string     `gorm:"type:varchar(30);not null;default:'General'"    json:"category"`
	Priority       string     `gorm:"type:varchar(20);not null;default:'Normal'"     json:"priority"`
	AuthorID       string     `gorm:"type:uuid;not null"                             json:"author_id"`
	TargetRole     string     `gorm:"type:varchar(20);not null;default:'All'"        json:"target_role"`
	IsPinned       bool       `gorm:"not null;default:false"                         json:"is_pinned"`
	ExpiresAt      *time.Time `gorm:""                                               json:"expires_at,omitempty"`
	PublishedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"published_at"`
	Timestamps

	// 关联
	Author *User `gorm:"foreignKey:AuthorID;references:UserID" json:"author,omitempty"`
}

// TableName 指定表名
func (Announcement) TableName() string { return "announcements" }

// AnnouncementRead 公告已读表 — 对应 announcement_reads
// (announcement_id, user_id) 唯一；幂等 upsert 写入，每对至多一行
type AnnouncementRead struct {
	ReadID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"read_id"`
	AnnouncementID string    `gorm:"type:uuid;not null;uniqueIndex:uq_announcement_reads" json:"announcement_id"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:uq_announcement_reads" json:"user_id"`
	ReadAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"read_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (AnnouncementRead) TableName() string { return "announcement_reads" }

// [自证通过] internal/model/announcement.go

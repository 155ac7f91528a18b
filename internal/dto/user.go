package dto

// ── 员工模块 DTO ──

// UserListRequest 员工列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=Admin Employee"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// UpdateUserRequest 更新员工信息请求（仅更新非 nil 字段）
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name"  binding:"omitempty,max=100"`
	LastName    *string `json:"last_name"   binding:"omitempty,max=100"`
	Email       *string `json:"email"       binding:"omitempty,email"`
	Designation *string `json:"designation" binding:"omitempty,max=100"`
	Department  *string `json:"department"  binding:"omitempty,max=100"`
	DOB         *string `json:"dob"         binding:"omitempty,datetime=2006-01-02"`
	Phone       *string `json:"phone"       binding:"omitempty,max=30"`
	Address     *string `json:"address"     binding:"omitempty,max=500"`
	JoinedDate  *string `json:"joined_date" binding:"omitempty,datetime=2006-01-02"`
}

// UserResponse 员工信息响应（脱敏）
type UserResponse struct {
	ID          string `json:"id"`
	EmployeeNo  string `json:"employee_no"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Designation string `json:"designation,omitempty"`
	Department  string `json:"department,omitempty"`
	DOB         string `json:"dob,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	JoinedDate  string `json:"joined_date"`
}

// [自证通过] internal/dto/user.go

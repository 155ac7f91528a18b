package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/princemalaviya153/DayFlow/config"
	"github.com/princemalaviya153/DayFlow/internal/dto"
	"github.com/princemalaviya153/DayFlow/internal/model"
)

// ── 测试辅助 ──

func setupTestAnnouncementService() (AnnouncementService, *testRepos, *mockMailer) {
	repos := newTestRepos()
	mail := &mockMailer{}
	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://localhost:5173"},
	}
	logger := zap.NewNop()
	notificationSvc := NewNotificationService(cfg, repos.toRepository(), mail, logger)
	svc := NewAnnouncementService(repos.toRepository(), notificationSvc, logger)
	return svc, repos, mail
}

func seedStaff(repos *testRepos) (admin, emp1, emp2 *model.User) {
	admin = seedUser(repos, "admin-1", "admin@dayflow.local")
	admin.Role = model.RoleAdmin
	emp1 = seedUser(repos, "emp-1", "emp1@dayflow.local")
	emp2 = seedUser(repos, "emp-2", "emp2@dayflow.local")
	return admin, emp1, emp2
}

// ════════════════════════════════════════════════════════════
// Create + 扇出测试
// ════════════════════════════════════════════════════════════

func TestAnnouncementCreate_FanOutExcludesAuthor(t *testing.T) {
	svc, repos, _ := setupTestAnnouncementService()
	admin, emp1, emp2 := seedStaff(repos)

	resp, err := svc.Create(context.Background(), &dto.CreateAnnouncementRequest{
		Title:   "Office Renovation",
		Content: "The office will be renovated next month.",
	}, admin.UserID)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if resp.TargetRole != model.TargetRoleAll {
		t.Errorf("默认 target_role 应为 All，实际 %s", resp.TargetRole)
	}

	// 作者不给自己发通知
	if got := len(repos.notification.byRecipient(admin.UserID)); got != 0 {
		t.Errorf("作者不应收到通知，实际 %d 条", got)
	}
	for _, emp := range []*model.User{emp1, emp2} {
		notifs := repos.notification.byRecipient(emp.UserID)
		if len(notifs) != 1 {
			t.Fatalf("%s 应收到 1 条通知，实际 %d", emp.UserID, len(notifs))
		}
		if notifs[0].Title != "New Announcement: Office Renovation" {
			t.Errorf("标题错误: %s", notifs[0].Title)
		}
		if notifs[0].Message != "A new announcement has been posted on the noticeboard." {
			t.Errorf("普通公告消息错误: %s", notifs[0].Message)
		}
	}
}

func TestAnnouncementCreate_UrgentMessage(t *testing.T) {
	svc, repos, _ := setupTestAnnouncementService()
	admin, emp1, _ := seedStaff(repos)

	_, err := svc.Create(context.Background(), &dto.CreateAnnouncementRequest{
		Title:    "Server Outage",
		Content:  "All systems down.",
		Category: model.AnnouncementCategoryUrgent,
	}, admin.UserID)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	notifs := repos.notification.byRecipient(emp1.UserID)
	if len(notifs) != 1 {
		t.Fatalf("期望 1 条通知，实际 %d", len(notifs))
	}
	if notifs[0].Message != "⚠️ Urgent Update posted on the noticeboard." {
		t.Errorf("紧急公告消息错误: %s", notifs[0].Message)
	}
}

func TestAnnouncementCreate_TargetRoleFiltersAudience(t *testing.T) {
	svc, repos, _ := setupTestAnnouncementService()
	admin, emp1, emp2 := seedStaff(repos)
	admin2 := seedUser(repos, "admin-2", "admin2@dayflow.local")
	admin2.Role = model.RoleAdmin

	_, err := svc.Create(context.Background(), &dto.CreateAnnouncementRequest{
		Title:      "Admin Only",
		Content:    "Quarterly review schedule.",
		TargetRole: model.TargetRoleAdmin,
	}, admin.UserID)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if got := len(repos.notification.byRecipient(admin2.UserID)); got != 1 {
		t.Errorf("其他管理员应收到通知，实际 %d", got)
	}
	if got := len(repos.notification.byRecipient(emp1.UserID)); got != 0 {
		t.Errorf("员工不应收到 Admin 定向公告，实际 %d", got)
	}
	if got := len(repos.notification.byRecipient(emp2.UserID)); got != 0 {
		t.Errorf("员工不应收到 Admin 定向公告，实际 %d", got)
	}
}

func TestAnnouncementCreate_PerRecipientFailureIsolation(t *testing.T) {
	svc, repos, _ := setupTestAnnouncementService()
	admin, emp1, emp2 := seedStaff(repos)
	emp3 := seedUser(repos, "emp-3", "emp3@dayflow.local")

	// emp1 的站内写入注入失败：扇出循环必须继续，公告创建不受影响
	repos.notification.failFor[emp1.UserID] = true

	resp, err := svc.Create(context.Background(), &dto.CreateAnnouncementRequest{
		Title:   "Partial Failure",
		Content: "content",
	}, admin.UserID)
	if err != nil {
		t.Fatalf("单人派发失败不应影响公告创建: %v", err)
	}
	if resp.ID == "" {
		t.Error("公告应创建成功")
	}

	if got := len(repos.notification.byRecipient(emp2.UserID)); got != 1 {
		t.Errorf("emp2 应收到通知，实际 %d", got)
	}
	if got := len(repos.notification.byRecipient(emp3.UserID)); got != 1 {
		t.Errorf("emp3 应收到通知，实际 %d", got)
	}
}

// ════════════════════════════════════════════════════════════
// MarkRead 幂等测试
// ════════════════════════════════════════════════════════════

func TestAnnouncementMarkRead_Idempotent(t *testing.T) {
	svc, repos, _ := setupTestAnnouncementService()
	admin, emp1, _ := seedStaff(repos)

	resp, err := svc.Create(context.Background(), &dto.CreateAnnouncementRequest{
		Title:   "Read Me",
		Content: "content",
	}, admin.UserID)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	// 重复上报三次：只保留一行，均不报错
	for i := 0; i < 3; i++ {
		if err := svc.MarkRead(context.Background(), resp.ID, emp1.UserID); err != nil {
			t.Fatalf("第 %d 次 MarkRead 失败: %v", i+1, err)
		}
	}

	receipts, err := svc.ReadReceipts(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("ReadReceipts 失败: %v", err)
	}
	if len(receipts) != 1 {
		t.Errorf("重复上报应只保留一行，实际 %d", len(receipts))
	}
}

func TestAnnouncementMarkRead_NotFound(t *testing.T) {
	svc, _, _ := setupTestAnnouncementService()

	err := svc.MarkRead(context.Background(), "missing", "u1")
	if err != ErrAnnouncementNotFound {
		t.Errorf("期望 ErrAnnouncementNotFound，实际 %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// List 测试
// ════════════════════════════════════════════════════════════

func TestAnnouncementList_ReadStateAndCount(t *testing.T) {
	svc, repos, _ := setupTestAnnouncementService()
	admin, emp1, emp2 := seedStaff(repos)

	resp, err := svc.Create(context.Background(), &dto.CreateAnnouncementRequest{
		Title:   "Team Lunch",
		Content: "Friday noon.",
	}, admin.UserID)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if err := svc.MarkRead(context.Background(), resp.ID, emp1.UserID); err != nil {
		t.Fatalf("MarkRead 失败: %v", err)
	}
	if err := svc.MarkRead(context.Background(), resp.ID, emp2.UserID); err != nil {
		t.Fatalf("MarkRead 失败: %v", err)
	}

	list, err := svc.List(context.Background(), nil, emp1.UserID, model.RoleEmployee)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("期望 1 条公告，实际 %d", len(list))
	}
	if !list[0].IsReadByMe {
		t.Error("emp1 已读，is_read_by_me 应为 true")
	}
	if list[0].ReadCount != 2 {
		t.Errorf("期望已读数 2，实际 %d", list[0].ReadCount)
	}
}

func TestAnnouncementList_ExpiredHidden(t *testing.T) {
	svc, repos, _ := setupTestAnnouncementService()
	admin, emp1, _ := seedStaff(repos)

	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	if _, err := svc.Create(context.Background(), &dto.CreateAnnouncementRequest{
		Title:     "Expired",
		Content:   "old",
		ExpiresAt: past,
	}, admin.UserID); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	list, err := svc.List(context.Background(), nil, emp1.UserID, model.RoleEmployee)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("过期公告不应出现在列表，实际 %d 条", len(list))
	}
}

// [自证通过] internal/service/announcement_service_test.go

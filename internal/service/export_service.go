package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrUnsupportedExportFormat = errors.New("不支持的导出格式")
	ErrExportGenerateFail      = errors.New("生成导出文件失败")
)

// 导出格式
const (
	ExportFormatJSON = "json"
	ExportFormatXLSX = "xlsx"
	ExportFormatICS  = "ics"
)

const shiftPlanSheet = "Shift Plan"

// ExportFile 导出结果，由 Handler 层设置响应头后写回
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService 排班计划导出业务接口
//
//   - json：{exported_at, total_shifts, total_employees, format, data}
//   - xlsx：单 Sheet，每行一个班次
//   - ics：每个班次一个 VEVENT，参与人为员工邮箱
type ExportService interface {
	ExportShiftPlan(ctx context.Context, req *dto.ExportRequest) (*ExportFile, error)
}

type exportService struct {
	repo   *repository.Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, now: time.Now, logger: logger}
}

func (s *exportService) ExportShiftPlan(ctx context.Context, req *dto.ExportRequest) (*ExportFile, error) {
	format := strings.ToLower(req.Format)
	if format == "" {
		format = ExportFormatJSON
	}
	switch format {
	case ExportFormatJSON, ExportFormatXLSX, ExportFormatICS:
	default:
		return nil, ErrUnsupportedExportFormat
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	// 1. 查询排班（含员工、区域）
	items, _, err := s.repo.ShiftAssignment.List(ctx, repository.ShiftAssignmentFilter{
		From:       from,
		To:         to,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		s.logger.Error("查询导出排班失败", zap.Error(err))
		return nil, err
	}

	now := s.now().UTC()
	stamp := now.Format("20060102-150405")

	// 2. 按格式渲染
	switch format {
	case ExportFormatXLSX:
		data, err := s.renderXLSX(items)
		if err != nil {
			s.logger.Error("生成 Excel 失败", zap.Error(err))
			return nil, ErrExportGenerateFail
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("shift-plan-%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil

	case ExportFormatICS:
		return &ExportFile{
			Filename:    fmt.Sprintf("shift-plan-%s.ics", stamp),
			ContentType: "text/calendar; charset=utf-8",
			Data:        []byte(renderICS(items, now)),
		}, nil

	default:
		total, err := s.repo.Employee.Count(ctx)
		if err != nil {
			s.logger.Error("统计员工失败", zap.Error(err))
			return nil, err
		}
		data, err := json.Marshal(dto.ShiftPlanExport{
			ExportedAt:     dto.FormatTime(now),
			TotalShifts:    len(items),
			TotalEmployees: int(total),
			Format:         "JSON",
			Data:           toShiftAssignmentResponses(items),
		})
		if err != nil {
			return nil, ErrExportGenerateFail
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("shift-plan-%s.json", stamp),
			ContentType: "application/json; charset=utf-8",
			Data:        data,
		}, nil
	}
}

// ── Excel ──

func (s *exportService) renderXLSX(items []model.ShiftAssignment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", shiftPlanSheet); err != nil {
		return nil, err
	}

	headers := []interface{}{"Date", "Shift", "Start", "End", "Employee", "Email", "Area", "Status"}
	if err := f.SetSheetRow(shiftPlanSheet, "A1", &headers); err != nil {
		return nil, err
	}
	if err := styleShiftPlanHeader(f, shiftPlanSheet, len(headers)); err != nil {
		return nil, err
	}

	for i := range items {
		a := &items[i]
		var name, email, area string
		if a.Employee != nil {
			name = a.Employee.FullName()
			email = a.Employee.Email
		}
		if a.ProductionArea != nil {
			area = a.ProductionArea.Name
		}
		row := []interface{}{
			a.ShiftDate.Format(dto.DateLayout),
			a.ShiftType,
			a.StartTime.UTC().Format("2006-01-02 15:04"),
			a.EndTime.UTC().Format("2006-01-02 15:04"),
			name,
			email,
			area,
			a.Status,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(shiftPlanSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// styleShiftPlanHeader 表头加粗着色并设置列宽
func styleShiftPlanHeader(f *excelize.File, sheet string, columns int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("创建表头样式失败: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("设置表头样式失败: %w", err)
	}
	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "D", 18},
		{"E", "G", 24},
		{"H", "H", 12},
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("设置列宽失败: %w", err)
		}
	}
	return nil
}

// ── iCalendar ──

func renderICS(items []model.ShiftAssignment, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//ShiftGenius//Shift Plan//EN")

	for i := range items {
		a := &items[i]
		area := a.ProductionAreaID
		if a.ProductionArea != nil {
			area = a.ProductionArea.Name
		}

		ev := cal.AddEvent(a.ID + "@shiftgenius")
		ev.SetDtStampTime(now)
		ev.SetStartAt(a.StartTime.UTC())
		ev.SetEndAt(a.EndTime.UTC())
		ev.SetSummary(fmt.Sprintf("%s shift - %s", a.ShiftType, area))
		ev.SetLocation(area)
		ev.SetDescription(fmt.Sprintf("Status: %s", a.Status))
		if a.Employee != nil {
			ev.AddAttendee("mailto:"+a.Employee.Email, ics.WithCN(a.Employee.FullName()))
		}
	}
	return cal.Serialize()
}

package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
)

// SeedSampleData 员工表为空时写入演示数据，返回是否实际写入
func SeedSampleData(ctx context.Context, repo *repository.Repository, logger *zap.Logger) (bool, error) {
	count, err := repo.Employee.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("统计员工失败: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	// 1. 员工
	employees := []model.Employee{
		{FirstName: "John", LastName: "Smith", Email: "john.smith@company.com", Skills: model.StringList{"welding", "assembly"}, WorkingTimeModel: model.WorkingTimeFullTime, IsActive: true},
		{FirstName: "Sarah", LastName: "Johnson", Email: "sarah.johnson@company.com", Skills: model.StringList{"quality_control", "testing"}, WorkingTimeModel: model.WorkingTimeFullTime, IsActive: true},
		{FirstName: "Mike", LastName: "Brown", Email: "mike.brown@company.com", Skills: model.StringList{"maintenance", "repair"}, WorkingTimeModel: model.WorkingTimePartTime, IsActive: true},
	}
	for i := range employees {
		if err := repo.Employee.Create(ctx, &employees[i]); err != nil {
			return false, fmt.Errorf("写入示例员工失败: %w", err)
		}
	}

	// 2. 生产区域
	areas := []model.ProductionArea{
		{Name: "Assembly Line A", Description: "Primary assembly line", Capacity: 12, CurrentStaff: 8, Efficiency: 87.50, Status: model.AreaStatusOperational},
		{Name: "Quality Control", Description: "Quality inspection area", Capacity: 6, CurrentStaff: 4, Efficiency: 92.30, Status: model.AreaStatusOperational},
		{Name: "Packaging", Description: "Final packaging department", Capacity: 8, CurrentStaff: 5, Efficiency: 78.90, Status: model.AreaStatusUnderstaffed},
	}
	for i := range areas {
		if err := repo.ProductionArea.Create(ctx, &areas[i]); err != nil {
			return false, fmt.Errorf("写入示例区域失败: %w", err)
		}
	}

	// 3. 工序（每个区域一道）
	duration := func(m int) *int { return &m }
	steps := []model.ProcessStep{
		{Name: "Component Assembly", ProductionAreaID: areas[0].ID, RequiredSkills: model.StringList{"assembly"}, EstimatedDuration: duration(45)},
		{Name: "Final Inspection", ProductionAreaID: areas[1].ID, RequiredSkills: model.StringList{"quality_control"}, EstimatedDuration: duration(20)},
		{Name: "Boxing and Labeling", ProductionAreaID: areas[2].ID, RequiredSkills: model.StringList{"packaging"}, EstimatedDuration: duration(15)},
	}
	for i := range steps {
		if err := repo.ProcessStep.Create(ctx, &steps[i]); err != nil {
			return false, fmt.Errorf("写入示例工序失败: %w", err)
		}
	}

	// 4. 告警（缺员告警关联 Packaging，巡检时据此去重）
	packagingID := areas[2].ID
	alerts := []model.ProductionAlert{
		{Type: model.AlertWarning, Title: AlertTitleLowStaffing, Message: "Packaging department is understaffed", ProductionAreaID: &packagingID, Source: model.AlertSourceSeed},
		{Type: model.AlertCritical, Title: "Equipment Malfunction", Message: "Machine #3 requires immediate attention", Source: model.AlertSourceSeed},
		{Type: model.AlertInfo, Title: "Shift Change", Message: "Night shift starts in 1 hour", Source: model.AlertSourceSeed},
	}
	for i := range alerts {
		if err := repo.Alert.Create(ctx, &alerts[i]); err != nil {
			return false, fmt.Errorf("写入示例告警失败: %w", err)
		}
	}

	logger.Info("示例数据已写入",
		zap.Int("employees", len(employees)),
		zap.Int("areas", len(areas)),
		zap.Int("process_steps", len(steps)),
		zap.Int("alerts", len(alerts)),
	)
	return true, nil
}

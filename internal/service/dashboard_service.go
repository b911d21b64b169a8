package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
)

// DashboardService 看板统计业务接口
type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	stats  *statsCache
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, stats *statsCache, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, stats: stats, logger: logger}
}

func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var cached dto.DashboardStatsResponse
	if s.stats.get(ctx, &cached) {
		return &cached, nil
	}

	active := true
	employees, err := s.repo.Employee.List(ctx, repository.EmployeeFilter{IsActive: &active})
	if err != nil {
		s.logger.Error("统计员工失败", zap.Error(err))
		return nil, err
	}

	areas, err := s.repo.ProductionArea.List(ctx, "")
	if err != nil {
		s.logger.Error("统计生产区域失败", zap.Error(err))
		return nil, err
	}

	orders, err := s.repo.ProductionOrder.List(ctx, repository.ProductionOrderFilter{Status: model.OrderStatusInProgress})
	if err != nil {
		s.logger.Error("统计订单失败", zap.Error(err))
		return nil, err
	}

	unresolved := false
	critical, err := s.repo.Alert.List(ctx, repository.AlertFilter{IsResolved: &unresolved, Type: model.AlertCritical})
	if err != nil {
		s.logger.Error("统计告警失败", zap.Error(err))
		return nil, err
	}

	stats := &dto.DashboardStatsResponse{
		ActiveEmployees: len(employees),
		ProductionAreas: len(areas),
		ActiveOrders:    len(orders),
		CriticalAlerts:  len(critical),
		AvgEfficiency:   averageEfficiency(areas),
	}
	for _, a := range areas {
		stats.TotalCapacity += a.Capacity
		stats.CurrentStaff += a.CurrentStaff
	}

	s.stats.set(ctx, stats)
	return stats, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
)

// ── 告警模块业务错误 ──

var (
	ErrAlertNotFound    = errors.New("告警不存在")
	ErrInvalidAlertType = errors.New("告警级别无效")
)

// 巡检生成的告警标题，同标题同区域的未解决告警只保留一条
const (
	AlertTitleLowStaffing  = "Low Staffing Alert"
	AlertTitleMaintenance  = "Area Under Maintenance"
	AlertTitleOrderOverdue = "Order Overdue"
)

// AlertService 告警业务接口
type AlertService interface {
	Create(ctx context.Context, req *dto.CreateAlertRequest) (*dto.AlertResponse, error)
	List(ctx context.Context, req *dto.AlertListRequest) ([]dto.AlertResponse, error)
	// Resolve 幂等，已解决的告警原样返回
	Resolve(ctx context.Context, id string) (*dto.AlertResponse, error)
	// Evaluate 根据区域与订单状态派生告警
	Evaluate(ctx context.Context) (*dto.EvaluateAlertsResponse, error)
}

type alertService struct {
	repo              *repository.Repository
	stats             *statsCache
	understaffedRatio float64
	now               func() time.Time
	logger            *zap.Logger
}

// NewAlertService 创建 AlertService 实例
func NewAlertService(repo *repository.Repository, stats *statsCache, understaffedRatio float64, logger *zap.Logger) AlertService {
	if understaffedRatio <= 0 || understaffedRatio > 1 {
		understaffedRatio = 0.75
	}
	return &alertService{
		repo:              repo,
		stats:             stats,
		understaffedRatio: understaffedRatio,
		now:               time.Now,
		logger:            logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *alertService) Create(ctx context.Context, req *dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	if !validAlertType(req.Type) {
		return nil, ErrInvalidAlertType
	}

	var areaID *string
	if req.ProductionAreaID != nil && *req.ProductionAreaID != "" {
		if _, err := s.repo.ProductionArea.GetByID(ctx, *req.ProductionAreaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAreaNotFound
			}
			s.logger.Error("查询生产区域失败", zap.Error(err))
			return nil, err
		}
		areaID = req.ProductionAreaID
	}

	alert := &model.ProductionAlert{
		Type:             req.Type,
		Title:            strings.TrimSpace(req.Title),
		Message:          strings.TrimSpace(req.Message),
		ProductionAreaID: areaID,
		Source:           model.AlertSourceManual,
	}
	if err := s.repo.Alert.Create(ctx, alert); err != nil {
		s.logger.Error("创建告警失败", zap.Error(err))
		return nil, err
	}
	s.stats.invalidate(ctx)

	resp := toAlertResponse(alert)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *alertService) List(ctx context.Context, req *dto.AlertListRequest) ([]dto.AlertResponse, error) {
	alerts, err := s.repo.Alert.List(ctx, repository.AlertFilter{
		IsResolved: req.Resolved,
		Type:       req.Type,
		AreaID:     req.ProductionAreaID,
	})
	if err != nil {
		s.logger.Error("查询告警列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		result = append(result, toAlertResponse(&alerts[i]))
	}
	return result, nil
}

// ────────────────────── Resolve ──────────────────────

func (s *alertService) Resolve(ctx context.Context, id string) (*dto.AlertResponse, error) {
	alert, err := s.repo.Alert.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		s.logger.Error("查询告警失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !alert.IsResolved {
		now := s.now().UTC()
		alert.IsResolved = true
		alert.ResolvedAt = &now
		if err := s.repo.Alert.Update(ctx, alert); err != nil {
			s.logger.Error("解决告警失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
		s.stats.invalidate(ctx)
	}

	resp := toAlertResponse(alert)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// Evaluate — 告警巡检
// ════════════════════════════════════════════════════════════
//
// 规则：
//   - 在岗人数 < 容量 × understaffedRatio → warning
//   - 区域处于 maintenance → info
//   - 订单已过截止日期且仍为 pending / in_progress → critical

func (s *alertService) Evaluate(ctx context.Context) (*dto.EvaluateAlertsResponse, error) {
	areas, err := s.repo.ProductionArea.List(ctx, "")
	if err != nil {
		s.logger.Error("巡检查询区域失败", zap.Error(err))
		return nil, err
	}

	var candidates []model.ProductionAlert
	for i := range areas {
		area := &areas[i]
		areaID := area.ID

		threshold := float64(area.Capacity) * s.understaffedRatio
		if area.Status != model.AreaStatusMaintenance && float64(area.CurrentStaff) < threshold {
			pct := 0
			if area.Capacity > 0 {
				pct = int(math.Round(float64(area.CurrentStaff) / float64(area.Capacity) * 100))
			}
			candidates = append(candidates, model.ProductionAlert{
				Type:             model.AlertWarning,
				Title:            AlertTitleLowStaffing,
				Message:          fmt.Sprintf("%s is staffed at %d%% (%d/%d)", area.Name, pct, area.CurrentStaff, area.Capacity),
				ProductionAreaID: &areaID,
			})
		}
		if area.Status == model.AreaStatusMaintenance {
			candidates = append(candidates, model.ProductionAlert{
				Type:             model.AlertInfo,
				Title:            AlertTitleMaintenance,
				Message:          fmt.Sprintf("%s is under maintenance", area.Name),
				ProductionAreaID: &areaID,
			})
		}
	}

	orders, err := s.repo.ProductionOrder.List(ctx, repository.ProductionOrderFilter{})
	if err != nil {
		s.logger.Error("巡检查询订单失败", zap.Error(err))
		return nil, err
	}
	now := s.now()
	for i := range orders {
		o := &orders[i]
		if !isOverdue(o, now) {
			continue
		}
		// 订单告警不关联区域，以订单号区分标题
		candidates = append(candidates, model.ProductionAlert{
			Type:    model.AlertCritical,
			Title:   fmt.Sprintf("%s: %s", AlertTitleOrderOverdue, o.OrderNumber),
			Message: fmt.Sprintf("Order %s (%s) was due %s", o.OrderNumber, o.ProductName, o.DueDate.UTC().Format(dto.DateLayout)),
		})
	}

	created := make([]dto.AlertResponse, 0)
	for i := range candidates {
		c := &candidates[i]
		_, err := s.repo.Alert.FindOpen(ctx, c.Title, c.ProductionAreaID)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("告警去重查询失败", zap.String("title", c.Title), zap.Error(err))
			return nil, err
		}

		c.Source = model.AlertSourceMonitor
		if err := s.repo.Alert.Create(ctx, c); err != nil {
			s.logger.Error("创建巡检告警失败", zap.String("title", c.Title), zap.Error(err))
			return nil, err
		}
		created = append(created, toAlertResponse(c))
	}

	if len(created) > 0 {
		s.stats.invalidate(ctx)
		s.logger.Info("巡检生成告警", zap.Int("created", len(created)))
	}

	return &dto.EvaluateAlertsResponse{Created: len(created), Alerts: created}, nil
}

// ── 辅助函数 ──

func validAlertType(v string) bool {
	switch v {
	case model.AlertCritical, model.AlertWarning, model.AlertInfo:
		return true
	}
	return false
}

func toAlertResponse(a *model.ProductionAlert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:               a.ID,
		Type:             a.Type,
		Title:            a.Title,
		Message:          a.Message,
		ProductionAreaID: a.ProductionAreaID,
		IsResolved:       a.IsResolved,
		Source:           a.Source,
		ResolvedAt:       dto.FormatTimePtr(a.ResolvedAt),
		CreatedAt:        dto.FormatTime(a.CreatedAt),
	}
}

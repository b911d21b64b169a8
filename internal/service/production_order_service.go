package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
	pkgerrors "github.com/gauravatalea/ShiftGenius-AI-New/pkg/errors"
)

// ── 生产订单模块业务错误 ──

var (
	ErrOrderNotFound        = errors.New("生产订单不存在")
	ErrOrderNumberExists    = errors.New("订单号已存在")
	ErrInvalidOrderStatus   = errors.New("订单状态无效")
	ErrInvalidOrderPriority = errors.New("订单优先级无效")
)

// ProductionOrderService 生产订单业务接口
type ProductionOrderService interface {
	Create(ctx context.Context, req *dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProductionOrderResponse, error)
	List(ctx context.Context, req *dto.ProductionOrderListRequest) ([]dto.ProductionOrderResponse, error)
	// Update 携带 version 时做乐观锁校验
	Update(ctx context.Context, id string, req *dto.UpdateProductionOrderRequest) (*dto.ProductionOrderResponse, error)
}

type productionOrderService struct {
	repo   *repository.Repository
	stats  *statsCache
	now    func() time.Time
	logger *zap.Logger
}

// NewProductionOrderService 创建 ProductionOrderService 实例
func NewProductionOrderService(repo *repository.Repository, stats *statsCache, logger *zap.Logger) ProductionOrderService {
	return &productionOrderService{repo: repo, stats: stats, now: time.Now, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *productionOrderService) Create(ctx context.Context, req *dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	number := strings.TrimSpace(req.OrderNumber)

	_, err := s.repo.ProductionOrder.GetByOrderNumber(ctx, number)
	if err == nil {
		return nil, ErrOrderNumberExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("检查订单号失败", zap.Error(err))
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !validOrderPriority(priority) {
		return nil, ErrInvalidOrderPriority
	}
	status := req.Status
	if status == "" {
		status = model.OrderStatusPending
	}
	if !validOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	order := &model.ProductionOrder{
		OrderNumber: number,
		ProductName: strings.TrimSpace(req.ProductName),
		Quantity:    req.Quantity,
		Priority:    priority,
		Status:      status,
		DueDate:     utcPtr(req.DueDate),
	}
	if err := s.repo.ProductionOrder.Create(ctx, order); err != nil {
		s.logger.Error("创建生产订单失败", zap.String("order_number", number), zap.Error(err))
		return nil, err
	}
	s.stats.invalidate(ctx)

	return s.toOrderResponse(order), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *productionOrderService) GetByID(ctx context.Context, id string) (*dto.ProductionOrderResponse, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toOrderResponse(order), nil
}

// ────────────────────── List ──────────────────────

func (s *productionOrderService) List(ctx context.Context, req *dto.ProductionOrderListRequest) ([]dto.ProductionOrderResponse, error) {
	orders, err := s.repo.ProductionOrder.List(ctx, repository.ProductionOrderFilter{
		Status:   req.Status,
		Priority: req.Priority,
	})
	if err != nil {
		s.logger.Error("查询生产订单列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProductionOrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, *s.toOrderResponse(&orders[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *productionOrderService) Update(ctx context.Context, id string, req *dto.UpdateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != order.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}

	if req.ProductName != nil {
		order.ProductName = strings.TrimSpace(*req.ProductName)
	}
	if req.Quantity != nil {
		order.Quantity = *req.Quantity
	}
	if req.Priority != nil {
		if !validOrderPriority(*req.Priority) {
			return nil, ErrInvalidOrderPriority
		}
		order.Priority = *req.Priority
	}
	if req.Status != nil {
		if !validOrderStatus(*req.Status) {
			return nil, ErrInvalidOrderStatus
		}
		order.Status = *req.Status
	}
	if req.DueDate != nil {
		order.DueDate = utcPtr(req.DueDate)
	}

	if err := s.repo.ProductionOrder.Update(ctx, order); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, err
		}
		s.logger.Error("更新生产订单失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	s.stats.invalidate(ctx)

	return s.toOrderResponse(order), nil
}

// ── 内部方法 ──

func (s *productionOrderService) getOrder(ctx context.Context, id string) (*model.ProductionOrder, error) {
	order, err := s.repo.ProductionOrder.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("查询生产订单失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (s *productionOrderService) toOrderResponse(o *model.ProductionOrder) *dto.ProductionOrderResponse {
	return &dto.ProductionOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		Priority:    o.Priority,
		Status:      o.Status,
		DueDate:     dto.FormatTimePtr(o.DueDate),
		Overdue:     isOverdue(o, s.now()),
		Version:     o.Version,
		CreatedAt:   dto.FormatTime(o.CreatedAt),
	}
}

// isOverdue 已过截止日期且仍未完成
func isOverdue(o *model.ProductionOrder, now time.Time) bool {
	return o.DueDate != nil && o.IsOpen() && o.DueDate.Before(now)
}

func validOrderStatus(v string) bool {
	switch v {
	case model.OrderStatusPending, model.OrderStatusInProgress, model.OrderStatusCompleted, model.OrderStatusCancelled:
		return true
	}
	return false
}

func validOrderPriority(v string) bool {
	switch v {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityCritical:
		return true
	}
	return false
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	pkgerrors "github.com/gauravatalea/ShiftGenius-AI-New/pkg/errors"
)

// ProductionOrderFilter 订单列表过滤条件
type ProductionOrderFilter struct {
	Status   string
	Priority string
}

// ProductionOrderRepository 生产订单数据访问接口
type ProductionOrderRepository interface {
	Create(ctx context.Context, order *model.ProductionOrder) error
	GetByID(ctx context.Context, id string) (*model.ProductionOrder, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.ProductionOrder, error)
	List(ctx context.Context, filter ProductionOrderFilter) ([]model.ProductionOrder, error)
	Update(ctx context.Context, order *model.ProductionOrder) error
}

type productionOrderRepo struct {
	db *gorm.DB
}

// NewProductionOrderRepo 创建 ProductionOrderRepository 实例
func NewProductionOrderRepo(db *gorm.DB) ProductionOrderRepository {
	return &productionOrderRepo{db: db}
}

func (r *productionOrderRepo) Create(ctx context.Context, order *model.ProductionOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *productionOrderRepo) GetByID(ctx context.Context, id string) (*model.ProductionOrder, error) {
	var order model.ProductionOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *productionOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.ProductionOrder, error) {
	var order model.ProductionOrder
	err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *productionOrderRepo) List(ctx context.Context, filter ProductionOrderFilter) ([]model.ProductionOrder, error) {
	var orders []model.ProductionOrder
	db := r.db.WithContext(ctx)
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		db = db.Where("priority = ?", filter.Priority)
	}
	// 无交期的订单排在最后
	err := db.Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, created_at ASC").
		Find(&orders).Error
	return orders, err
}

// Update 乐观锁更新
func (r *productionOrderRepo) Update(ctx context.Context, order *model.ProductionOrder) error {
	oldVersion := order.Version
	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, oldVersion).
		Updates(map[string]interface{}{
			"product_name": order.ProductName,
			"quantity":     order.Quantity,
			"priority":     order.Priority,
			"status":       order.Status,
			"due_date":     order.DueDate,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	order.Version = oldVersion + 1
	return nil
}

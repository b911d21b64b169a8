package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
)

// AlertFilter 告警列表过滤条件
type AlertFilter struct {
	IsResolved *bool
	Type       string
	AreaID     string
}

// AlertRepository 告警数据访问接口
type AlertRepository interface {
	Create(ctx context.Context, alert *model.ProductionAlert) error
	GetByID(ctx context.Context, id string) (*model.ProductionAlert, error)
	List(ctx context.Context, filter AlertFilter) ([]model.ProductionAlert, error)
	// FindOpen 查找同标题、同区域的未解决告警，用于去重
	FindOpen(ctx context.Context, title string, areaID *string) (*model.ProductionAlert, error)
	Update(ctx context.Context, alert *model.ProductionAlert) error
}

type alertRepo struct {
	db *gorm.DB
}

// NewAlertRepo 创建 AlertRepository 实例
func NewAlertRepo(db *gorm.DB) AlertRepository {
	return &alertRepo{db: db}
}

func (r *alertRepo) Create(ctx context.Context, alert *model.ProductionAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepo) GetByID(ctx context.Context, id string) (*model.ProductionAlert, error) {
	var alert model.ProductionAlert
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&alert).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepo) List(ctx context.Context, filter AlertFilter) ([]model.ProductionAlert, error) {
	var alerts []model.ProductionAlert
	db := r.db.WithContext(ctx)
	if filter.IsResolved != nil {
		db = db.Where("is_resolved = ?", *filter.IsResolved)
	}
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.AreaID != "" {
		db = db.Where("production_area_id = ?", filter.AreaID)
	}
	err := db.Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

func (r *alertRepo) FindOpen(ctx context.Context, title string, areaID *string) (*model.ProductionAlert, error) {
	var alert model.ProductionAlert
	db := r.db.WithContext(ctx).Where("is_resolved = ? AND title = ?", false, title)
	if areaID != nil {
		db = db.Where("production_area_id = ?", *areaID)
	} else {
		db = db.Where("production_area_id IS NULL")
	}
	if err := db.First(&alert).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepo) Update(ctx context.Context, alert *model.ProductionAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

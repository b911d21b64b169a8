package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
)

// ProductionAreaRepository 生产区域数据访问接口
type ProductionAreaRepository interface {
	Create(ctx context.Context, area *model.ProductionArea) error
	GetByID(ctx context.Context, id string) (*model.ProductionArea, error)
	List(ctx context.Context, status string) ([]model.ProductionArea, error)
	Update(ctx context.Context, area *model.ProductionArea) error
}

type productionAreaRepo struct {
	db *gorm.DB
}

// NewProductionAreaRepo 创建 ProductionAreaRepository 实例
func NewProductionAreaRepo(db *gorm.DB) ProductionAreaRepository {
	return &productionAreaRepo{db: db}
}

func (r *productionAreaRepo) Create(ctx context.Context, area *model.ProductionArea) error {
	return r.db.WithContext(ctx).Omit("ProcessSteps").Create(area).Error
}

func (r *productionAreaRepo) GetByID(ctx context.Context, id string) (*model.ProductionArea, error) {
	var area model.ProductionArea
	err := r.db.WithContext(ctx).
		Preload("ProcessSteps", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("id = ?", id).
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *productionAreaRepo) List(ctx context.Context, status string) ([]model.ProductionArea, error) {
	var areas []model.ProductionArea
	db := r.db.WithContext(ctx).Preload("ProcessSteps")
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("name ASC").Find(&areas).Error
	return areas, err
}

func (r *productionAreaRepo) Update(ctx context.Context, area *model.ProductionArea) error {
	return r.db.WithContext(ctx).Omit("ProcessSteps").Save(area).Error
}

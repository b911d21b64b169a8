package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
)

// ProcessStepRepository 工序数据访问接口
type ProcessStepRepository interface {
	Create(ctx context.Context, step *model.ProcessStep) error
	List(ctx context.Context, areaID string) ([]model.ProcessStep, error)
}

type processStepRepo struct {
	db *gorm.DB
}

// NewProcessStepRepo 创建 ProcessStepRepository 实例
func NewProcessStepRepo(db *gorm.DB) ProcessStepRepository {
	return &processStepRepo{db: db}
}

func (r *processStepRepo) Create(ctx context.Context, step *model.ProcessStep) error {
	return r.db.WithContext(ctx).Create(step).Error
}

func (r *processStepRepo) List(ctx context.Context, areaID string) ([]model.ProcessStep, error) {
	var steps []model.ProcessStep
	db := r.db.WithContext(ctx)
	if areaID != "" {
		db = db.Where("production_area_id = ?", areaID)
	}
	err := db.Order("name ASC").Find(&steps).Error
	return steps, err
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	pkgerrors "github.com/gauravatalea/ShiftGenius-AI-New/pkg/errors"
)

// ShiftAssignmentFilter 排班列表过滤条件
// From/To 按 start_time 过滤，区间为 [From, To)
type ShiftAssignmentFilter struct {
	From       *time.Time
	To         *time.Time
	EmployeeID string
	AreaID     string
	Status     string
	Offset     int
	Limit      int
}

// ShiftAssignmentRepository 排班数据访问接口
type ShiftAssignmentRepository interface {
	Create(ctx context.Context, a *model.ShiftAssignment) error
	BatchCreate(ctx context.Context, items []model.ShiftAssignment) error
	GetByID(ctx context.Context, id string) (*model.ShiftAssignment, error)
	List(ctx context.Context, filter ShiftAssignmentFilter) ([]model.ShiftAssignment, int64, error)
	// ListOverlapping 查询与 [start, end) 有交集的排班；employeeID/areaID 为空时不过滤
	ListOverlapping(ctx context.Context, employeeID, areaID string, start, end time.Time) ([]model.ShiftAssignment, error)
	UpdateStatus(ctx context.Context, a *model.ShiftAssignment) error
	Delete(ctx context.Context, id string) error
	DeleteScheduledInRange(ctx context.Context, from, to time.Time) (int64, error)
	// ReplaceScheduled 在同一事务内删除区间内的 scheduled 排班并写入新结果，任一步失败则整体回滚
	ReplaceScheduled(ctx context.Context, from, to time.Time, items []model.ShiftAssignment) (int64, error)
}

type shiftAssignmentRepo struct {
	db *gorm.DB
}

// NewShiftAssignmentRepo 创建 ShiftAssignmentRepository 实例
func NewShiftAssignmentRepo(db *gorm.DB) ShiftAssignmentRepository {
	return &shiftAssignmentRepo{db: db}
}

func (r *shiftAssignmentRepo) Create(ctx context.Context, a *model.ShiftAssignment) error {
	return r.db.WithContext(ctx).Omit("Employee", "ProductionArea").Create(a).Error
}

func (r *shiftAssignmentRepo) BatchCreate(ctx context.Context, items []model.ShiftAssignment) error {
	return batchCreateAssignments(r.db.WithContext(ctx), items)
}

func batchCreateAssignments(db *gorm.DB, items []model.ShiftAssignment) error {
	if len(items) == 0 {
		return nil
	}
	return db.Omit("Employee", "ProductionArea").CreateInBatches(&items, 200).Error
}

func (r *shiftAssignmentRepo) GetByID(ctx context.Context, id string) (*model.ShiftAssignment, error) {
	var a model.ShiftAssignment
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("ProductionArea").
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *shiftAssignmentRepo) List(ctx context.Context, filter ShiftAssignmentFilter) ([]model.ShiftAssignment, int64, error) {
	var items []model.ShiftAssignment
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ShiftAssignment{})
	if filter.From != nil {
		db = db.Where("start_time >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		db = db.Where("start_time < ?", filter.To.UTC())
	}
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.AreaID != "" {
		db = db.Where("production_area_id = ?", filter.AreaID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := db.Preload("Employee").Preload("ProductionArea").
		Order("start_time ASC, employee_id ASC")
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}
	err := q.Find(&items).Error
	return items, total, err
}

func (r *shiftAssignmentRepo) ListOverlapping(ctx context.Context, employeeID, areaID string, start, end time.Time) ([]model.ShiftAssignment, error) {
	var items []model.ShiftAssignment
	db := r.db.WithContext(ctx).
		Where("start_time < ? AND end_time > ?", end.UTC(), start.UTC())
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}
	if areaID != "" {
		db = db.Where("production_area_id = ?", areaID)
	}
	err := db.Order("start_time ASC").Find(&items).Error
	return items, err
}

// UpdateStatus 乐观锁更新状态
func (r *shiftAssignmentRepo) UpdateStatus(ctx context.Context, a *model.ShiftAssignment) error {
	oldVersion := a.Version
	result := r.db.WithContext(ctx).
		Model(&model.ShiftAssignment{}).
		Where("id = ? AND version = ?", a.ID, oldVersion).
		Updates(map[string]interface{}{
			"status":     a.Status,
			"version":    oldVersion + 1,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	a.Version = oldVersion + 1
	return nil
}

func (r *shiftAssignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ShiftAssignment{}).Error
}

// DeleteScheduledInRange 删除区间内仍为 scheduled 的生成结果，已确认的人工排班保留
func (r *shiftAssignmentRepo) DeleteScheduledInRange(ctx context.Context, from, to time.Time) (int64, error) {
	return deleteScheduledInRange(r.db.WithContext(ctx), from, to)
}

func deleteScheduledInRange(db *gorm.DB, from, to time.Time) (int64, error) {
	result := db.
		Where("status = ? AND start_time >= ? AND start_time < ?", model.AssignmentScheduled, from.UTC(), to.UTC()).
		Delete(&model.ShiftAssignment{})
	return result.RowsAffected, result.Error
}

func (r *shiftAssignmentRepo) ReplaceScheduled(ctx context.Context, from, to time.Time, items []model.ShiftAssignment) (int64, error) {
	var replaced int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := deleteScheduledInRange(tx, from, to)
		if err != nil {
			return err
		}
		if err := batchCreateAssignments(tx, items); err != nil {
			return err
		}
		replaced = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return replaced, nil
}

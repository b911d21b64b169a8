package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
)

// EmployeeFilter 员工列表过滤条件
type EmployeeFilter struct {
	IsActive *bool
	Skill    string
	Search   string
}

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	Create(ctx context.Context, emp *model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error)
	Update(ctx context.Context, emp *model.Employee) error
	Count(ctx context.Context) (int64, error)
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error) {
	var employees []model.Employee
	db := r.db.WithContext(ctx)

	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		db = db.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	if err := db.Order("last_name ASC, first_name ASC").Find(&employees).Error; err != nil {
		return nil, err
	}

	// 技能存储为 JSON，按应用层过滤以兼容 SQLite 与 PostgreSQL
	if filter.Skill == "" {
		return employees, nil
	}
	skill := strings.ToLower(filter.Skill)
	result := employees[:0]
	for _, e := range employees {
		if e.Skills.Contains(skill) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *employeeRepo) Update(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

func (r *employeeRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).Count(&n).Error
	return n, err
}

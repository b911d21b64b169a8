package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
)

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound        = errors.New("员工不存在")
	ErrEmployeeEmailExists     = errors.New("邮箱已被使用")
	ErrEmployeeNameRequired    = errors.New("姓名不能为空")
	ErrInvalidWorkingTimeModel = errors.New("工时模型无效")
)

// EmployeeService 员工业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	// Utilization 统计每名员工本周工时占合同工时的比例
	Utilization(ctx context.Context) ([]dto.EmployeeUtilizationResponse, error)
}

type employeeService struct {
	repo   *repository.Repository
	stats  *statsCache
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, stats *statsCache, loc *time.Location, logger *zap.Logger) EmployeeService {
	if loc == nil {
		loc = time.UTC
	}
	return &employeeService{repo: repo, stats: stats, loc: loc, now: time.Now, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrEmployeeNameRequired
	}

	wtm := req.WorkingTimeModel
	if wtm == "" {
		wtm = model.WorkingTimeFullTime
	}
	if !validWorkingTimeModel(wtm) {
		return nil, ErrInvalidWorkingTimeModel
	}

	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	emp := &model.Employee{
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		Skills:           normalizeSkills(req.Skills),
		WorkingTimeModel: wtm,
		IsActive:         true,
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		s.logger.Error("创建员工失败", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	s.stats.invalidate(ctx)

	s.logger.Info("员工已创建", zap.String("id", emp.ID), zap.String("name", emp.FullName()))
	return toEmployeeResponse(emp), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	emp, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(emp), nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error) {
	employees, err := s.repo.Employee.List(ctx, repository.EmployeeFilter{
		IsActive: req.Active,
		Skill:    strings.TrimSpace(req.Skill),
		Search:   strings.TrimSpace(req.Search),
	})
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, *toEmployeeResponse(&employees[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	emp, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		v := strings.TrimSpace(*req.FirstName)
		if v == "" {
			return nil, ErrEmployeeNameRequired
		}
		emp.FirstName = v
	}
	if req.LastName != nil {
		v := strings.TrimSpace(*req.LastName)
		if v == "" {
			return nil, ErrEmployeeNameRequired
		}
		emp.LastName = v
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != emp.Email {
			if err := s.ensureEmailFree(ctx, email, emp.ID); err != nil {
				return nil, err
			}
			emp.Email = email
		}
	}
	if req.Skills != nil {
		emp.Skills = normalizeSkills(*req.Skills)
	}
	if req.WorkingTimeModel != nil {
		if !validWorkingTimeModel(*req.WorkingTimeModel) {
			return nil, ErrInvalidWorkingTimeModel
		}
		emp.WorkingTimeModel = *req.WorkingTimeModel
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		s.logger.Error("更新员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	s.stats.invalidate(ctx)

	return toEmployeeResponse(emp), nil
}

// ────────────────────── Utilization ──────────────────────

func (s *employeeService) Utilization(ctx context.Context) ([]dto.EmployeeUtilizationResponse, error) {
	employees, err := s.repo.Employee.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, err
	}

	assignments, _, err := s.repo.ShiftAssignment.List(ctx, repository.ShiftAssignmentFilter{})
	if err != nil {
		s.logger.Error("查询排班失败", zap.Error(err))
		return nil, err
	}

	areas, err := s.repo.ProductionArea.List(ctx, "")
	if err != nil {
		s.logger.Error("查询生产区域失败", zap.Error(err))
		return nil, err
	}
	efficiencyByArea := make(map[string]float64, len(areas))
	for _, a := range areas {
		efficiencyByArea[a.ID] = a.Efficiency
	}

	// 本周窗口：今天 00:00 起 7 天
	now := s.now().In(s.loc)
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	weekEnd := weekStart.AddDate(0, 0, 7)

	type usage struct {
		weekHours  float64
		totalHours float64
		areas      map[string]struct{}
	}
	usageByEmployee := make(map[string]*usage, len(employees))
	for i := range assignments {
		a := &assignments[i]
		u, ok := usageByEmployee[a.EmployeeID]
		if !ok {
			u = &usage{areas: make(map[string]struct{})}
			usageByEmployee[a.EmployeeID] = u
		}
		h := a.Hours()
		u.totalHours += h
		if !a.StartTime.Before(weekStart) && a.StartTime.Before(weekEnd) {
			u.weekHours += h
		}
		u.areas[a.ProductionAreaID] = struct{}{}
	}

	result := make([]dto.EmployeeUtilizationResponse, 0, len(employees))
	for i := range employees {
		emp := &employees[i]
		item := dto.EmployeeUtilizationResponse{ID: emp.ID, Name: emp.FullName()}

		if u, ok := usageByEmployee[emp.ID]; ok {
			contract := model.ContractHours(emp.WorkingTimeModel)
			pct := int(math.Round(u.weekHours / contract * 100))
			if pct > 100 {
				pct = 100
			}
			item.Utilization = pct
			item.WeeklyHours = round2(u.weekHours)
			item.HoursWorked = round2(u.totalHours)

			var sum float64
			var n int
			for areaID := range u.areas {
				if eff, ok := efficiencyByArea[areaID]; ok {
					sum += eff
					n++
				}
			}
			if n > 0 {
				item.Efficiency = round2(sum / float64(n))
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// ── 内部方法 ──

func (s *employeeService) getEmployee(ctx context.Context, id string) (*model.Employee, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return emp, nil
}

// ensureEmailFree 校验邮箱未被其他员工占用
func (s *employeeService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.Employee.GetByEmail(ctx, email)
	if err == nil && existing.ID != selfID {
		return ErrEmployeeEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("检查邮箱唯一性失败", zap.Error(err))
		return err
	}
	return nil
}

func validWorkingTimeModel(v string) bool {
	switch v {
	case model.WorkingTimeFullTime, model.WorkingTimePartTime, model.WorkingTimeFlex:
		return true
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeSkills 去空白、转小写、去重，保持首次出现顺序
func normalizeSkills(skills []string) model.StringList {
	out := make(model.StringList, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, sk := range skills {
		sk = strings.ToLower(strings.TrimSpace(sk))
		if sk == "" || seen[sk] {
			continue
		}
		seen[sk] = true
		out = append(out, sk)
	}
	return out
}

// unionSkills 合并多个技能列表并排序
func unionSkills(lists ...model.StringList) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, l := range lists {
		for _, sk := range l {
			if !seen[sk] {
				seen[sk] = true
				out = append(out, sk)
			}
		}
	}
	sort.Strings(out)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toEmployeeResponse(e *model.Employee) *dto.EmployeeResponse {
	skills := []string(e.Skills)
	if skills == nil {
		skills = []string{}
	}
	return &dto.EmployeeResponse{
		ID:               e.ID,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Name:             e.FullName(),
		Email:            e.Email,
		Skills:           skills,
		WorkingTimeModel: e.WorkingTimeModel,
		IsActive:         e.IsActive,
		CreatedAt:        dto.FormatTime(e.CreatedAt),
	}
}

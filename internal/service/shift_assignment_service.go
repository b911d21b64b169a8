package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
	pkgerrors "github.com/gauravatalea/ShiftGenius-AI-New/pkg/errors"
)

// ── 排班模块业务错误 ──

var (
	ErrAssignmentNotFound = errors.New("排班不存在")
	ErrShiftConflict      = errors.New("员工在该时段已有排班")
	ErrAreaAtCapacity     = errors.New("该区域在此时段已满员")
	ErrEmployeeInactive   = errors.New("员工已停用，不能排班")
	ErrInvalidShiftWindow = errors.New("班次结束时间必须晚于开始时间")
	ErrInvalidShiftStatus = errors.New("排班状态无效")
	ErrInvalidDateRange   = errors.New("日期范围无效")
)

// placementMu 串行化进程内所有排班写入（手动放置与自动生成）
var placementMu sync.Mutex

// lockPlacement 获取跨实例排班锁，返回释放函数
// locker 为 nil 或 Redis 故障时仅依赖 placementMu
func lockPlacement(ctx context.Context, locker Locker, ttl time.Duration, logger *zap.Logger) (func(), error) {
	if locker == nil {
		return func() {}, nil
	}
	token, ok, err := locker.AcquireLock(ctx, scheduleLockKey, ttl)
	switch {
	case err != nil:
		logger.Warn("获取排班锁失败，降级为进程内互斥", zap.Error(err))
		return func() {}, nil
	case !ok:
		return nil, ErrScheduleInProgress
	}
	return func() {
		if err := locker.ReleaseLock(context.Background(), scheduleLockKey, token); err != nil {
			logger.Warn("释放排班锁失败", zap.Error(err))
		}
	}, nil
}

// ShiftAssignmentService 排班业务接口
type ShiftAssignmentService interface {
	// Create 手动放置排班，带冲突与容量检测
	Create(ctx context.Context, req *dto.CreateShiftAssignmentRequest) (*dto.ShiftAssignmentResponse, error)
	List(ctx context.Context, req *dto.ShiftAssignmentListRequest) ([]dto.ShiftAssignmentResponse, int64, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateShiftStatusRequest) (*dto.ShiftAssignmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type shiftAssignmentService struct {
	repo    *repository.Repository
	locker  Locker
	stats   *statsCache
	lockTTL time.Duration
	logger  *zap.Logger
}

// NewShiftAssignmentService 创建 ShiftAssignmentService 实例，locker 可为 nil
func NewShiftAssignmentService(repo *repository.Repository, locker Locker, stats *statsCache, lockTTL time.Duration, logger *zap.Logger) ShiftAssignmentService {
	if lockTTL <= 0 {
		lockTTL = time.Minute
	}
	return &shiftAssignmentService{repo: repo, locker: locker, stats: stats, lockTTL: lockTTL, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *shiftAssignmentService) Create(ctx context.Context, req *dto.CreateShiftAssignmentRequest) (*dto.ShiftAssignmentResponse, error) {
	start := req.StartTime.UTC()
	end := req.EndTime.UTC()
	if !end.After(start) {
		return nil, ErrInvalidShiftWindow
	}

	status := req.Status
	if status == "" {
		status = model.AssignmentAssigned
	}
	if !validShiftStatus(status) {
		return nil, ErrInvalidShiftStatus
	}

	emp, err := s.repo.Employee.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", req.EmployeeID), zap.Error(err))
		return nil, err
	}
	if !emp.IsActive {
		return nil, ErrEmployeeInactive
	}

	area, err := s.repo.ProductionArea.GetByID(ctx, req.ProductionAreaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		s.logger.Error("查询生产区域失败", zap.String("id", req.ProductionAreaID), zap.Error(err))
		return nil, err
	}

	// 与自动排班共用同一把锁，避免跨实例超员
	placementMu.Lock()
	defer placementMu.Unlock()

	release, err := lockPlacement(ctx, s.locker, s.lockTTL, s.logger)
	if err != nil {
		return nil, err
	}
	defer release()

	// 1. 员工时段冲突
	clashes, err := s.repo.ShiftAssignment.ListOverlapping(ctx, emp.ID, "", start, end)
	if err != nil {
		s.logger.Error("检查排班冲突失败", zap.Error(err))
		return nil, err
	}
	if len(clashes) > 0 {
		return nil, ErrShiftConflict
	}

	// 2. 区域容量
	inArea, err := s.repo.ShiftAssignment.ListOverlapping(ctx, "", area.ID, start, end)
	if err != nil {
		s.logger.Error("检查区域容量失败", zap.Error(err))
		return nil, err
	}
	if len(inArea) >= area.Capacity {
		return nil, ErrAreaAtCapacity
	}

	a := &model.ShiftAssignment{
		EmployeeID:       emp.ID,
		ProductionAreaID: area.ID,
		ShiftDate:        dateOf(start, time.UTC),
		ShiftType:        req.ShiftType,
		StartTime:        start,
		EndTime:          end,
		Status:           status,
	}
	if err := s.repo.ShiftAssignment.Create(ctx, a); err != nil {
		s.logger.Error("创建排班失败", zap.Error(err))
		return nil, err
	}
	s.stats.invalidate(ctx)

	a.Employee = emp
	a.ProductionArea = area
	resp := toShiftAssignmentResponse(a)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *shiftAssignmentService) List(ctx context.Context, req *dto.ShiftAssignmentListRequest) ([]dto.ShiftAssignmentResponse, int64, error) {
	filter := repository.ShiftAssignmentFilter{
		EmployeeID: req.EmployeeID,
		AreaID:     req.ProductionAreaID,
		Status:     req.Status,
		Offset:     req.GetOffset(),
		Limit:      req.PageSize,
	}
	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, 0, err
	}
	filter.From, filter.To = from, to

	items, total, err := s.repo.ShiftAssignment.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询排班列表失败", zap.Error(err))
		return nil, 0, err
	}
	return toShiftAssignmentResponses(items), total, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *shiftAssignmentService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateShiftStatusRequest) (*dto.ShiftAssignmentResponse, error) {
	if !validShiftStatus(req.Status) {
		return nil, ErrInvalidShiftStatus
	}

	a, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != a.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}

	a.Status = req.Status
	if err := s.repo.ShiftAssignment.UpdateStatus(ctx, a); err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("更新排班状态失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	resp := toShiftAssignmentResponse(a)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *shiftAssignmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.getAssignment(ctx, id); err != nil {
		return err
	}
	if err := s.repo.ShiftAssignment.Delete(ctx, id); err != nil {
		s.logger.Error("删除排班失败", zap.String("id", id), zap.Error(err))
		return err
	}
	s.stats.invalidate(ctx)
	return nil
}

// ── 内部方法 ──

func (s *shiftAssignmentService) getAssignment(ctx context.Context, id string) (*model.ShiftAssignment, error) {
	a, err := s.repo.ShiftAssignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询排班失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func validShiftStatus(v string) bool {
	switch v {
	case model.AssignmentScheduled, model.AssignmentAssigned, model.AssignmentActive,
		model.AssignmentCompleted, model.AssignmentAbsent:
		return true
	}
	return false
}

// parseDateRange 解析 YYYY-MM-DD，to 含当天
func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.ParseInLocation(dto.DateLayout, fromStr, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: from=%s", ErrInvalidDateRange, fromStr)
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.ParseInLocation(dto.DateLayout, toStr, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: to=%s", ErrInvalidDateRange, toStr)
		}
		t = t.AddDate(0, 0, 1)
		to = &t
	}
	if from != nil && to != nil && !to.After(*from) {
		return nil, nil, ErrInvalidDateRange
	}
	return from, to, nil
}

// dateOf 取 t 在 loc 中的日期零点
func dateOf(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

func toShiftAssignmentResponse(a *model.ShiftAssignment) dto.ShiftAssignmentResponse {
	resp := dto.ShiftAssignmentResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		ProductionAreaID: a.ProductionAreaID,
		ShiftDate:        a.ShiftDate.Format(dto.DateLayout),
		ShiftType:        a.ShiftType,
		StartTime:        dto.FormatTime(a.StartTime),
		EndTime:          dto.FormatTime(a.EndTime),
		Status:           a.Status,
		Version:          a.Version,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName()
	}
	if a.ProductionArea != nil {
		resp.ProductionAreaName = a.ProductionArea.Name
	}
	return resp
}

func toShiftAssignmentResponses(items []model.ShiftAssignment) []dto.ShiftAssignmentResponse {
	result := make([]dto.ShiftAssignmentResponse, 0, len(items))
	for i := range items {
		result = append(result, toShiftAssignmentResponse(&items[i]))
	}
	return result
}

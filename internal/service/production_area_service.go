package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
)

// ── 生产区域模块业务错误 ──

var (
	ErrAreaNotFound      = errors.New("生产区域不存在")
	ErrAreaNameRequired  = errors.New("区域名称不能为空")
	ErrInvalidAreaStatus = errors.New("区域状态无效")
	ErrStepNameRequired  = errors.New("工序名称不能为空")
)

// ProductionAreaService 生产区域与工序业务接口
type ProductionAreaService interface {
	Create(ctx context.Context, req *dto.CreateProductionAreaRequest) (*dto.ProductionAreaResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProductionAreaResponse, error)
	List(ctx context.Context, req *dto.ProductionAreaListRequest) ([]dto.ProductionAreaResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateProductionAreaRequest) (*dto.ProductionAreaResponse, error)

	CreateProcessStep(ctx context.Context, req *dto.CreateProcessStepRequest) (*dto.ProcessStepResponse, error)
	ListProcessSteps(ctx context.Context, req *dto.ProcessStepListRequest) ([]dto.ProcessStepResponse, error)
	// ListProcessStepsByArea 区域不存在时返回 ErrAreaNotFound
	ListProcessStepsByArea(ctx context.Context, areaID string) ([]dto.ProcessStepResponse, error)
}

type productionAreaService struct {
	repo   *repository.Repository
	stats  *statsCache
	logger *zap.Logger
}

// NewProductionAreaService 创建 ProductionAreaService 实例
func NewProductionAreaService(repo *repository.Repository, stats *statsCache, logger *zap.Logger) ProductionAreaService {
	return &productionAreaService{repo: repo, stats: stats, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *productionAreaService) Create(ctx context.Context, req *dto.CreateProductionAreaRequest) (*dto.ProductionAreaResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrAreaNameRequired
	}

	status := req.Status
	if status == "" {
		status = model.AreaStatusOperational
	}
	if !validAreaStatus(status) {
		return nil, ErrInvalidAreaStatus
	}

	area := &model.ProductionArea{
		Name:        name,
		Description: req.Description,
		Capacity:    req.Capacity,
		Status:      status,
	}
	if req.CurrentStaff != nil {
		area.CurrentStaff = *req.CurrentStaff
	}
	if req.Efficiency != nil {
		area.Efficiency = *req.Efficiency
	}
	if req.OperationalHours != nil {
		area.OperationalHours = &model.OperationalHours{
			Start: req.OperationalHours.Start,
			End:   req.OperationalHours.End,
		}
	}

	if err := s.repo.ProductionArea.Create(ctx, area); err != nil {
		s.logger.Error("创建生产区域失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	s.stats.invalidate(ctx)

	return toProductionAreaResponse(area), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *productionAreaService) GetByID(ctx context.Context, id string) (*dto.ProductionAreaResponse, error) {
	area, err := s.getArea(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductionAreaResponse(area), nil
}

// ────────────────────── List ──────────────────────

func (s *productionAreaService) List(ctx context.Context, req *dto.ProductionAreaListRequest) ([]dto.ProductionAreaResponse, error) {
	areas, err := s.repo.ProductionArea.List(ctx, req.Status)
	if err != nil {
		s.logger.Error("查询生产区域列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProductionAreaResponse, 0, len(areas))
	for i := range areas {
		result = append(result, *toProductionAreaResponse(&areas[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *productionAreaService) Update(ctx context.Context, id string, req *dto.UpdateProductionAreaRequest) (*dto.ProductionAreaResponse, error) {
	area, err := s.getArea(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrAreaNameRequired
		}
		area.Name = name
	}
	if req.Description != nil {
		area.Description = *req.Description
	}
	if req.Capacity != nil {
		area.Capacity = *req.Capacity
	}
	if req.CurrentStaff != nil {
		area.CurrentStaff = *req.CurrentStaff
	}
	if req.Efficiency != nil {
		area.Efficiency = *req.Efficiency
	}
	if req.Status != nil {
		if !validAreaStatus(*req.Status) {
			return nil, ErrInvalidAreaStatus
		}
		area.Status = *req.Status
	}
	if req.OperationalHours != nil {
		area.OperationalHours = &model.OperationalHours{
			Start: req.OperationalHours.Start,
			End:   req.OperationalHours.End,
		}
	}

	if err := s.repo.ProductionArea.Update(ctx, area); err != nil {
		s.logger.Error("更新生产区域失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	s.stats.invalidate(ctx)

	return toProductionAreaResponse(area), nil
}

// ────────────────────── Process steps ──────────────────────

func (s *productionAreaService) CreateProcessStep(ctx context.Context, req *dto.CreateProcessStepRequest) (*dto.ProcessStepResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrStepNameRequired
	}
	if _, err := s.getArea(ctx, req.ProductionAreaID); err != nil {
		return nil, err
	}

	step := &model.ProcessStep{
		Name:              name,
		ProductionAreaID:  req.ProductionAreaID,
		RequiredSkills:    normalizeSkills(req.RequiredSkills),
		EstimatedDuration: req.EstimatedDuration,
		Description:       req.Description,
	}
	if err := s.repo.ProcessStep.Create(ctx, step); err != nil {
		s.logger.Error("创建工序失败", zap.String("area_id", req.ProductionAreaID), zap.Error(err))
		return nil, err
	}

	resp := toProcessStepResponse(step)
	return &resp, nil
}

func (s *productionAreaService) ListProcessSteps(ctx context.Context, req *dto.ProcessStepListRequest) ([]dto.ProcessStepResponse, error) {
	steps, err := s.repo.ProcessStep.List(ctx, req.ProductionAreaID)
	if err != nil {
		s.logger.Error("查询工序列表失败", zap.Error(err))
		return nil, err
	}
	return toProcessStepResponses(steps), nil
}

func (s *productionAreaService) ListProcessStepsByArea(ctx context.Context, areaID string) ([]dto.ProcessStepResponse, error) {
	if _, err := s.getArea(ctx, areaID); err != nil {
		return nil, err
	}
	return s.ListProcessSteps(ctx, &dto.ProcessStepListRequest{ProductionAreaID: areaID})
}

// ── 内部方法 ──

func (s *productionAreaService) getArea(ctx context.Context, id string) (*model.ProductionArea, error) {
	area, err := s.repo.ProductionArea.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		s.logger.Error("查询生产区域失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return area, nil
}

func validAreaStatus(v string) bool {
	switch v {
	case model.AreaStatusOperational, model.AreaStatusUnderstaffed, model.AreaStatusMaintenance:
		return true
	}
	return false
}

// areaRequiredSkills 区域所需技能 = 各工序所需技能的并集
func areaRequiredSkills(area *model.ProductionArea) []string {
	lists := make([]model.StringList, 0, len(area.ProcessSteps))
	for _, st := range area.ProcessSteps {
		lists = append(lists, st.RequiredSkills)
	}
	return unionSkills(lists...)
}

func toProductionAreaResponse(a *model.ProductionArea) *dto.ProductionAreaResponse {
	resp := &dto.ProductionAreaResponse{
		ID:             a.ID,
		Name:           a.Name,
		Description:    a.Description,
		Capacity:       a.Capacity,
		CurrentStaff:   a.CurrentStaff,
		Efficiency:     a.Efficiency,
		Status:         a.Status,
		RequiredSkills: areaRequiredSkills(a),
		ProcessSteps:   toProcessStepResponses(a.ProcessSteps),
	}
	if a.OperationalHours != nil {
		resp.OperationalHours = &dto.OperationalHours{
			Start: a.OperationalHours.Start,
			End:   a.OperationalHours.End,
		}
	}
	return resp
}

func toProcessStepResponse(st *model.ProcessStep) dto.ProcessStepResponse {
	skills := []string(st.RequiredSkills)
	if skills == nil {
		skills = []string{}
	}
	return dto.ProcessStepResponse{
		ID:                st.ID,
		Name:              st.Name,
		ProductionAreaID:  st.ProductionAreaID,
		RequiredSkills:    skills,
		EstimatedDuration: st.EstimatedDuration,
		Description:       st.Description,
	}
}

func toProcessStepResponses(steps []model.ProcessStep) []dto.ProcessStepResponse {
	result := make([]dto.ProcessStepResponse, 0, len(steps))
	for i := range steps {
		result = append(result, toProcessStepResponse(&steps[i]))
	}
	return result
}

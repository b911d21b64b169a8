package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/service"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/response"
)

// ProductionAreaHandler 生产区域与工序 HTTP 处理器
type ProductionAreaHandler struct {
	areaSvc service.ProductionAreaService
}

// NewProductionAreaHandler 创建 ProductionAreaHandler
func NewProductionAreaHandler(areaSvc service.ProductionAreaService) *ProductionAreaHandler {
	return &ProductionAreaHandler{areaSvc: areaSvc}
}

// ────────────────────── 生产区域 ──────────────────────

// ListAreas 获取生产区域列表
// GET /api/v1/production-areas?status=active
func (h *ProductionAreaHandler) ListAreas(c *gin.Context) {
	var req dto.ProductionAreaListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	areas, err := h.areaSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAreaError(c, err)
		return
	}

	response.OKList(c, areas)
}

// GetArea 获取生产区域详情（含工序）
// GET /api/v1/production-areas/:id
func (h *ProductionAreaHandler) GetArea(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "区域ID不能为空")
		return
	}

	area, err := h.areaSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAreaError(c, err)
		return
	}

	response.OK(c, area)
}

// CreateArea 创建生产区域
// POST /api/v1/production-areas
func (h *ProductionAreaHandler) CreateArea(c *gin.Context) {
	var req dto.CreateProductionAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	area, err := h.areaSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAreaError(c, err)
		return
	}

	response.Created(c, area)
}

// UpdateArea 部分更新生产区域
// PATCH /api/v1/production-areas/:id
func (h *ProductionAreaHandler) UpdateArea(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "区域ID不能为空")
		return
	}

	var req dto.UpdateProductionAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	area, err := h.areaSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAreaError(c, err)
		return
	}

	response.OK(c, area)
}

// ListAreaProcessSteps 获取区域下的工序
// GET /api/v1/production-areas/:id/process-steps
func (h *ProductionAreaHandler) ListAreaProcessSteps(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "区域ID不能为空")
		return
	}

	steps, err := h.areaSvc.ListProcessStepsByArea(c.Request.Context(), id)
	if err != nil {
		h.handleAreaError(c, err)
		return
	}

	response.OKList(c, steps)
}

// ────────────────────── 工序 ──────────────────────

// ListProcessSteps 获取工序列表
// GET /api/v1/process-steps?production_area_id=xxx
func (h *ProductionAreaHandler) ListProcessSteps(c *gin.Context) {
	var req dto.ProcessStepListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	steps, err := h.areaSvc.ListProcessSteps(c.Request.Context(), &req)
	if err != nil {
		h.handleAreaError(c, err)
		return
	}

	response.OKList(c, steps)
}

// CreateProcessStep 创建工序
// POST /api/v1/process-steps
func (h *ProductionAreaHandler) CreateProcessStep(c *gin.Context) {
	var req dto.CreateProcessStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	step, err := h.areaSvc.CreateProcessStep(c.Request.Context(), &req)
	if err != nil {
		h.handleAreaError(c, err)
		return
	}

	response.Created(c, step)
}

// handleAreaError 统一处理区域模块业务错误
func (h *ProductionAreaHandler) handleAreaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAreaNotFound):
		response.NotFound(c, 13001, "生产区域不存在")
	case errors.Is(err, service.ErrAreaNameRequired):
		response.BadRequest(c, 13002, "区域名称不能为空")
	case errors.Is(err, service.ErrInvalidAreaStatus):
		response.BadRequest(c, 13003, "区域状态无效")
	case errors.Is(err, service.ErrStepNameRequired):
		response.BadRequest(c, 13004, "工序名称不能为空")
	default:
		response.InternalError(c)
	}
}

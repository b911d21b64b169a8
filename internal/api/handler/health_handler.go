package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
)

// HealthChecks 健康检查依赖
type HealthChecks struct {
	Database func(ctx context.Context) error
	Redis    func(ctx context.Context) error // nil 表示未启用 Redis
}

// HealthHandler 健康检查
type HealthHandler struct {
	checks HealthChecks
	now    func() time.Time
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(checks HealthChecks) *HealthHandler {
	return &HealthHandler{checks: checks, now: time.Now}
}

// Check 健康检查
// GET /health, /api/health, /api/v1/health
//
// 数据库不可用时返回 503；Redis 故障只降级不影响整体状态。
// 直接输出 JSON 对象，便于负载均衡器探活。
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status:    "healthy",
		Message:   "ShiftGenius API is running",
		Timestamp: dto.FormatTime(h.now()),
		Database:  "ok",
		Redis:     "disabled",
	}
	status := http.StatusOK

	if h.checks.Database != nil {
		if err := h.checks.Database(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Message = "database unavailable"
			resp.Database = "error"
			status = http.StatusServiceUnavailable
		}
	}
	if h.checks.Redis != nil {
		resp.Redis = "ok"
		if err := h.checks.Redis(ctx); err != nil {
			resp.Redis = "error"
		}
	}

	c.JSON(status, resp)
}

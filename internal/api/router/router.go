package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gauravatalea/ShiftGenius-AI-New/config"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/api/handler"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/api/middleware"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/service"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/jwt"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时限流中间件直接放行
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", h.Health.Check)

	// 写操作在启用认证时需要主管 Token
	write := []gin.HandlerFunc{}
	if cfg.Auth.Enabled {
		write = append(write, middleware.JWTAuth(jwtMgr), middleware.RoleAuth(service.RoleSupervisor))
	}
	protect := func(hf gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), hf)
	}

	// ── API v1，同时以 /api 为无版本别名 ──
	limiter := middleware.RateLimit(rdb, cfg.Server.RateLimit, cfg.Server.RateWindow, logger)
	for _, prefix := range []string{"/api/v1", "/api"} {
		api := r.Group(prefix)
		api.Use(limiter)
		registerAPI(api, h, protect)
	}

	return r
}

// registerAPI 挂载业务路由
func registerAPI(api *gin.RouterGroup, h *handler.Handler, protect func(gin.HandlerFunc) []gin.HandlerFunc) {
	api.GET("/health", h.Health.Check)

	// 认证模块
	api.POST("/auth/token", h.Auth.IssueToken)

	// 看板
	api.GET("/dashboard/stats", h.Dashboard.GetStats)

	// 员工模块
	employees := api.Group("/employees")
	{
		employees.GET("", h.Employee.ListEmployees)
		employees.GET("/utilization", h.Employee.GetUtilization)
		employees.GET("/:id", h.Employee.GetEmployee)
		employees.POST("", protect(h.Employee.CreateEmployee)...)
		employees.PATCH("/:id", protect(h.Employee.UpdateEmployee)...)
	}

	// 生产区域模块
	areas := api.Group("/production-areas")
	{
		areas.GET("", h.ProductionArea.ListAreas)
		areas.GET("/:id", h.ProductionArea.GetArea)
		areas.GET("/:id/process-steps", h.ProductionArea.ListAreaProcessSteps)
		areas.POST("", protect(h.ProductionArea.CreateArea)...)
		areas.PATCH("/:id", protect(h.ProductionArea.UpdateArea)...)
	}

	// 工序模块
	steps := api.Group("/process-steps")
	{
		steps.GET("", h.ProductionArea.ListProcessSteps)
		steps.POST("", protect(h.ProductionArea.CreateProcessStep)...)
	}

	// 生产订单模块
	orders := api.Group("/production-orders")
	{
		orders.GET("", h.ProductionOrder.ListOrders)
		orders.GET("/:id", h.ProductionOrder.GetOrder)
		orders.POST("", protect(h.ProductionOrder.CreateOrder)...)
		orders.PATCH("/:id", protect(h.ProductionOrder.UpdateOrder)...)
	}

	// 排班模块
	assignments := api.Group("/shift-assignments")
	{
		assignments.GET("", h.ShiftAssignment.ListAssignments)
		assignments.POST("", protect(h.ShiftAssignment.CreateAssignment)...)
		assignments.PATCH("/:id/status", protect(h.ShiftAssignment.UpdateStatus)...)
		assignments.DELETE("/:id", protect(h.ShiftAssignment.DeleteAssignment)...)
	}

	// 告警模块
	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.Alert.ListAlerts)
		alerts.POST("", protect(h.Alert.CreateAlert)...)
		alerts.POST("/evaluate", protect(h.Alert.EvaluateAlerts)...)
		alerts.PATCH("/:id/resolve", protect(h.Alert.ResolveAlert)...)
	}

	// 排班生成
	api.POST("/schedules/generate", protect(h.Schedule.GenerateSchedule)...)
	api.POST("/generate-schedule", protect(h.Schedule.GenerateSchedule)...)

	// 导出模块
	api.GET("/export/shift-plan", h.Export.ExportShiftPlan)
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/service"
	pkgerrors "github.com/gauravatalea/ShiftGenius-AI-New/pkg/errors"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/response"
)

// ProductionOrderHandler 生产订单 HTTP 处理器
type ProductionOrderHandler struct {
	orderSvc service.ProductionOrderService
}

// NewProductionOrderHandler 创建 ProductionOrderHandler
func NewProductionOrderHandler(orderSvc service.ProductionOrderService) *ProductionOrderHandler {
	return &ProductionOrderHandler{orderSvc: orderSvc}
}

// ListOrders 获取订单列表
// GET /api/v1/production-orders?status=in_progress&priority=high
func (h *ProductionOrderHandler) ListOrders(c *gin.Context) {
	var req dto.ProductionOrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	orders, err := h.orderSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	response.OKList(c, orders)
}

// GetOrder 获取订单详情
// GET /api/v1/production-orders/:id
func (h *ProductionOrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "订单ID不能为空")
		return
	}

	order, err := h.orderSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	response.OK(c, order)
}

// CreateOrder 创建订单
// POST /api/v1/production-orders
func (h *ProductionOrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateProductionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	order, err := h.orderSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	response.Created(c, order)
}

// UpdateOrder 部分更新订单，携带 version 时校验乐观锁
// PATCH /api/v1/production-orders/:id
func (h *ProductionOrderHandler) UpdateOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "订单ID不能为空")
		return
	}

	var req dto.UpdateProductionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	order, err := h.orderSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	response.OK(c, order)
}

func (h *ProductionOrderHandler) handleOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, 14001, "生产订单不存在")
	case errors.Is(err, service.ErrOrderNumberExists):
		response.Conflict(c, 14002, "订单号已存在")
	case errors.Is(err, service.ErrInvalidOrderStatus):
		response.BadRequest(c, 14003, "订单状态无效")
	case errors.Is(err, service.ErrInvalidOrderPriority):
		response.BadRequest(c, 14004, "订单优先级无效")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 14005, "订单已被修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

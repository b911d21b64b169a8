package dto

import "time"

// ── 生产订单 DTO ──

// CreateProductionOrderRequest 创建订单请求
type CreateProductionOrderRequest struct {
	OrderNumber string     `json:"order_number" binding:"required,max=50"`
	ProductName string     `json:"product_name" binding:"required,max=200"`
	Quantity    int        `json:"quantity"     binding:"required,min=1"`
	Priority    string     `json:"priority"     binding:"omitempty,oneof=low medium high critical"`
	Status      string     `json:"status"       binding:"omitempty,oneof=pending in_progress completed cancelled"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateProductionOrderRequest 局部更新订单请求
type UpdateProductionOrderRequest struct {
	ProductName *string    `json:"product_name" binding:"omitempty,min=1,max=200"`
	Quantity    *int       `json:"quantity"     binding:"omitempty,min=1"`
	Priority    *string    `json:"priority"     binding:"omitempty,oneof=low medium high critical"`
	Status      *string    `json:"status"       binding:"omitempty,oneof=pending in_progress completed cancelled"`
	DueDate     *time.Time `json:"due_date"`
	Version     *int       `json:"version"      binding:"omitempty,min=1"`
}

// ProductionOrderListRequest 订单列表查询参数
type ProductionOrderListRequest struct {
	Status   string `form:"status"   binding:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high critical"`
}

// ProductionOrderResponse 订单响应
type ProductionOrderResponse struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"order_number"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date,omitempty"`
	Overdue     bool    `json:"overdue"`
	Version     int     `json:"version"`
	CreatedAt   string  `json:"created_at"`
}

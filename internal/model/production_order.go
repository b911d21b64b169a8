package model

import (
	"time"

	"gorm.io/gorm"
)

// 订单优先级
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// 订单状态
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ProductionOrder 生产订单表 — 对应 production_orders
type ProductionOrder struct {
	ID          string     `gorm:"type:uuid;primaryKey"              json:"id"`
	OrderNumber string     `gorm:"type:varchar(50);not null;unique"  json:"order_number"`
	ProductName string     `gorm:"type:varchar(200);not null"        json:"product_name"`
	Quantity    int        `gorm:"not null"                          json:"quantity"`
	Priority    string     `gorm:"type:varchar(20);not null"         json:"priority"` // low | medium | high | critical
	Status      string     `gorm:"type:varchar(20);not null"         json:"status"`   // pending | in_progress | completed | cancelled
	DueDate     *time.Time `json:"due_date,omitempty"`
	Version     int        `gorm:"not null;default:1"                json:"version"`
	BaseModel
}

// TableName 指定表名
func (ProductionOrder) TableName() string { return "production_orders" }

// BeforeCreate 生成主键
func (o *ProductionOrder) BeforeCreate(_ *gorm.DB) error {
	newID(&o.ID)
	if o.Version == 0 {
		o.Version = 1
	}
	return nil
}

// IsOpen 订单仍在执行中
func (o *ProductionOrder) IsOpen() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusInProgress
}

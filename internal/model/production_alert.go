package model

import (
	"time"

	"gorm.io/gorm"
)

// 告警级别
const (
	AlertCritical = "critical"
	AlertWarning  = "warning"
	AlertInfo     = "info"
)

// 告警来源
const (
	AlertSourceManual  = "manual"
	AlertSourceSeed    = "seed"
	AlertSourceMonitor = "monitor"
)

// ProductionAlert 生产告警表 — 对应 production_alerts
type ProductionAlert struct {
	ID               string     `gorm:"type:uuid;primaryKey"        json:"id"`
	Type             string     `gorm:"type:varchar(20);not null"   json:"type"` // critical | warning | info
	Title            string     `gorm:"type:varchar(200);not null"  json:"title"`
	Message          string     `gorm:"type:varchar(1000);not null" json:"message"`
	ProductionAreaID *string    `gorm:"type:uuid"                   json:"production_area_id,omitempty"`
	IsResolved       bool       `gorm:"not null"                    json:"is_resolved"`
	Source           string     `gorm:"type:varchar(20);not null"   json:"source"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (ProductionAlert) TableName() string { return "production_alerts" }

// BeforeCreate 生成主键
func (a *ProductionAlert) BeforeCreate(_ *gorm.DB) error {
	newID(&a.ID)
	return nil
}

package model

import "gorm.io/gorm"

// 区域状态
const (
	AreaStatusOperational  = "operational"
	AreaStatusUnderstaffed = "understaffed"
	AreaStatusMaintenance  = "maintenance"
)

// ProductionArea 生产区域表 — 对应 production_areas
type ProductionArea struct {
	ID               string            `gorm:"type:uuid;primaryKey"       json:"id"`
	Name             string            `gorm:"type:varchar(100);not null" json:"name"`
	Description      string            `gorm:"type:varchar(500)"          json:"description,omitempty"`
	Capacity         int               `gorm:"not null"                   json:"capacity"`
	CurrentStaff     int               `gorm:"not null"                   json:"current_staff"`
	Efficiency       float64           `gorm:"type:numeric(5,2);not null" json:"efficiency"`
	Status           string            `gorm:"type:varchar(20);not null"  json:"status"` // operational | understaffed | maintenance
	OperationalHours *OperationalHours `gorm:"type:jsonb"                 json:"operational_hours,omitempty"`
	BaseModel

	// 关联
	ProcessSteps []ProcessStep `gorm:"foreignKey:ProductionAreaID" json:"process_steps,omitempty"`
}

// TableName 指定表名
func (ProductionArea) TableName() string { return "production_areas" }

// BeforeCreate 生成主键
func (a *ProductionArea) BeforeCreate(_ *gorm.DB) error {
	newID(&a.ID)
	return nil
}

// ProcessStep 工序表 — 对应 process_steps
type ProcessStep struct {
	ID                string     `gorm:"type:uuid;primaryKey"       json:"id"`
	Name              string     `gorm:"type:varchar(100);not null" json:"name"`
	ProductionAreaID  string     `gorm:"type:uuid;not null;index"   json:"production_area_id"`
	RequiredSkills    StringList `gorm:"type:jsonb;not null"        json:"required_skills"`
	EstimatedDuration *int       `json:"estimated_duration,omitempty"` // 分钟
	Description       string     `gorm:"type:varchar(500)"          json:"description,omitempty"`
	BaseModel
}

// TableName 指定表名
func (ProcessStep) TableName() string { return "process_steps" }

// BeforeCreate 生成主键
func (p *ProcessStep) BeforeCreate(_ *gorm.DB) error {
	newID(&p.ID)
	return nil
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// 班次类型
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
	ShiftNight     = "night"
	ShiftDay       = "day"
	ShiftWeekend   = "weekend"
)

// 排班状态
const (
	AssignmentScheduled = "scheduled"
	AssignmentAssigned  = "assigned"
	AssignmentActive    = "active"
	AssignmentCompleted = "completed"
	AssignmentAbsent    = "absent"
)

// ShiftAssignment 排班表 — 对应 shift_assignments
type ShiftAssignment struct {
	ID               string    `gorm:"type:uuid;primaryKey"          json:"id"`
	EmployeeID       string    `gorm:"type:uuid;not null;index"      json:"employee_id"`
	ProductionAreaID string    `gorm:"type:uuid;not null;index"      json:"production_area_id"`
	ShiftDate        time.Time `gorm:"not null"                      json:"shift_date"`
	ShiftType        string    `gorm:"type:varchar(20);not null"     json:"shift_type"` // morning | afternoon | night | day | weekend
	StartTime        time.Time `gorm:"not null;index"                json:"start_time"`
	EndTime          time.Time `gorm:"not null"                      json:"end_time"`
	Status           string    `gorm:"type:varchar(20);not null"     json:"status"` // scheduled | assigned | active | completed | absent
	Version          int       `gorm:"not null;default:1"            json:"version"`
	BaseModel

	// 关联
	Employee       *Employee       `gorm:"foreignKey:EmployeeID"       json:"employee,omitempty"`
	ProductionArea *ProductionArea `gorm:"foreignKey:ProductionAreaID" json:"production_area,omitempty"`
}

// TableName 指定表名
func (ShiftAssignment) TableName() string { return "shift_assignments" }

// BeforeCreate 生成主键
func (s *ShiftAssignment) BeforeCreate(_ *gorm.DB) error {
	newID(&s.ID)
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}

// Hours 班次时长（小时）
func (s *ShiftAssignment) Hours() float64 {
	return s.EndTime.Sub(s.StartTime).Hours()
}

// Overlaps 与 [start, end) 是否有交集
func (s *ShiftAssignment) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

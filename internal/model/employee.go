package model

import "gorm.io/gorm"

// 工时模型
const (
	WorkingTimeFullTime = "full_time"
	WorkingTimePartTime = "part_time"
	WorkingTimeFlex     = "flex"
)

// Employee 员工表 — 对应 employees
type Employee struct {
	ID               string     `gorm:"type:uuid;primaryKey"              json:"id"`
	FirstName        string     `gorm:"type:varchar(100);not null"        json:"first_name"`
	LastName         string     `gorm:"type:varchar(100);not null"        json:"last_name"`
	Email            string     `gorm:"type:varchar(200);not null;unique" json:"email"`
	Skills           StringList `gorm:"type:jsonb;not null"               json:"skills"`
	WorkingTimeModel string     `gorm:"type:varchar(20);not null"         json:"working_time_model"` // full_time | part_time | flex
	IsActive         bool       `gorm:"not null"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// BeforeCreate 生成主键
func (e *Employee) BeforeCreate(_ *gorm.DB) error {
	newID(&e.ID)
	return nil
}

// FullName 姓名
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// ContractHours 每周合同工时
func ContractHours(workingTimeModel string) float64 {
	switch workingTimeModel {
	case WorkingTimePartTime:
		return 20
	case WorkingTimeFlex:
		return 30
	default:
		return 40
	}
}

// WeeklyShiftLimit 7 天窗口内最多可排班次
func WeeklyShiftLimit(workingTimeModel string) int {
	switch workingTimeModel {
	case WorkingTimePartTime:
		return 3
	case WorkingTimeFlex:
		return 4
	default:
		return 5
	}
}

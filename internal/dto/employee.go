package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	FirstName        string   `json:"first_name"         binding:"required,max=100"`
	LastName         string   `json:"last_name"          binding:"required,max=100"`
	Email            string   `json:"email"              binding:"required,email,max=200"`
	Skills           []string `json:"skills"             binding:"omitempty,dive,min=1,max=50"`
	WorkingTimeModel string   `json:"working_time_model" binding:"omitempty,oneof=full_time part_time flex"`
	IsActive         *bool    `json:"is_active"`
}

// UpdateEmployeeRequest 局部更新员工请求，仅覆盖提供的字段
type UpdateEmployeeRequest struct {
	FirstName        *string   `json:"first_name"         binding:"omitempty,min=1,max=100"`
	LastName         *string   `json:"last_name"          binding:"omitempty,min=1,max=100"`
	Email            *string   `json:"email"              binding:"omitempty,email,max=200"`
	Skills           *[]string `json:"skills"`
	WorkingTimeModel *string   `json:"working_time_model" binding:"omitempty,oneof=full_time part_time flex"`
	IsActive         *bool     `json:"is_active"`
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	Active *bool  `form:"active"`
	Skill  string `form:"skill"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

// EmployeeResponse 员工信息响应
type EmployeeResponse struct {
	ID               string   `json:"id"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Skills           []string `json:"skills"`
	WorkingTimeModel string   `json:"working_time_model"`
	IsActive         bool     `json:"is_active"`
	CreatedAt        string   `json:"created_at"`
}

// EmployeeUtilizationResponse 员工利用率
type EmployeeUtilizationResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Utilization int     `json:"utilization"`  // 本周工时 / 合同工时，百分比，上限 100
	WeeklyHours float64 `json:"weekly_hours"` // 本周已排工时
	HoursWorked float64 `json:"hours_worked"` // 全部排班工时
	Efficiency  float64 `json:"efficiency"`   // 所在区域效率均值
}

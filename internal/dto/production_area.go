package dto

// ── 生产区域 / 工序 DTO ──

// OperationalHours 运营时段
type OperationalHours struct {
	Start string `json:"start" binding:"required,datetime=15:04"`
	End   string `json:"end"   binding:"required,datetime=15:04"`
}

// CreateProductionAreaRequest 创建区域请求
type CreateProductionAreaRequest struct {
	Name             string            `json:"name"              binding:"required,max=100"`
	Description      string            `json:"description"       binding:"omitempty,max=500"`
	Capacity         int               `json:"capacity"          binding:"required,min=1"`
	CurrentStaff     *int              `json:"current_staff"     binding:"omitempty,min=0"`
	Efficiency       *float64          `json:"efficiency"        binding:"omitempty,min=0,max=100"`
	Status           string            `json:"status"            binding:"omitempty,oneof=operational understaffed maintenance"`
	OperationalHours *OperationalHours `json:"operational_hours"`
}

// UpdateProductionAreaRequest 局部更新区域请求
type UpdateProductionAreaRequest struct {
	Name             *string           `json:"name"              binding:"omitempty,min=1,max=100"`
	Description      *string           `json:"description"       binding:"omitempty,max=500"`
	Capacity         *int              `json:"capacity"          binding:"omitempty,min=1"`
	CurrentStaff     *int              `json:"current_staff"     binding:"omitempty,min=0"`
	Efficiency       *float64          `json:"efficiency"        binding:"omitempty,min=0,max=100"`
	Status           *string           `json:"status"            binding:"omitempty,oneof=operational understaffed maintenance"`
	OperationalHours *OperationalHours `json:"operational_hours"`
}

// ProductionAreaListRequest 区域列表查询参数
type ProductionAreaListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=operational understaffed maintenance"`
}

// ProductionAreaResponse 区域信息响应
type ProductionAreaResponse struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Description      string                `json:"description,omitempty"`
	Capacity         int                   `json:"capacity"`
	CurrentStaff     int                   `json:"current_staff"`
	Efficiency       float64               `json:"efficiency"`
	Status           string                `json:"status"`
	OperationalHours *OperationalHours     `json:"operational_hours,omitempty"`
	RequiredSkills   []string              `json:"required_skills"`
	ProcessSteps     []ProcessStepResponse `json:"process_steps"`
}

// CreateProcessStepRequest 创建工序请求
type CreateProcessStepRequest struct {
	Name              string   `json:"name"               binding:"required,max=100"`
	ProductionAreaID  string   `json:"production_area_id" binding:"required"`
	RequiredSkills    []string `json:"required_skills"    binding:"omitempty,dive,min=1,max=50"`
	EstimatedDuration *int     `json:"estimated_duration" binding:"omitempty,min=1"`
	Description       string   `json:"description"        binding:"omitempty,max=500"`
}

// ProcessStepListRequest 工序列表查询参数
type ProcessStepListRequest struct {
	ProductionAreaID string `form:"production_area_id"`
}

// ProcessStepResponse 工序响应
type ProcessStepResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	ProductionAreaID  string   `json:"production_area_id"`
	RequiredSkills    []string `json:"required_skills"`
	EstimatedDuration *int     `json:"estimated_duration,omitempty"`
	Description       string   `json:"description,omitempty"`
}

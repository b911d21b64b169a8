package dto

import "time"

// ── 排班 DTO ──

// CreateShiftAssignmentRequest 手动排班请求（拖拽放置）
type CreateShiftAssignmentRequest struct {
	EmployeeID       string    `json:"employee_id"        binding:"required"`
	ProductionAreaID string    `json:"production_area_id" binding:"required"`
	ShiftType        string    `json:"shift_type"         binding:"required,oneof=morning afternoon night day weekend"`
	StartTime        time.Time `json:"start_time"         binding:"required"`
	EndTime          time.Time `json:"end_time"           binding:"required"`
	Status           string    `json:"status"             binding:"omitempty,oneof=scheduled assigned active completed absent"`
}

// UpdateShiftStatusRequest 更新排班状态
type UpdateShiftStatusRequest struct {
	Status  string `json:"status"  binding:"required,oneof=scheduled assigned active completed absent"`
	Version *int   `json:"version" binding:"omitempty,min=1"`
}

// ShiftAssignmentListRequest 排班列表查询参数
// from/to 为 YYYY-MM-DD，to 为闭区间（含当天）
type ShiftAssignmentListRequest struct {
	From             string `form:"from"               binding:"omitempty,datetime=2006-01-02"`
	To               string `form:"to"                 binding:"omitempty,datetime=2006-01-02"`
	EmployeeID       string `form:"employee_id"`
	ProductionAreaID string `form:"production_area_id"`
	Status           string `form:"status"             binding:"omitempty,oneof=scheduled assigned active completed absent"`
	PaginationRequest
}

// ShiftAssignmentResponse 排班响应
type ShiftAssignmentResponse struct {
	ID                 string `json:"id"`
	EmployeeID         string `json:"employee_id"`
	EmployeeName       string `json:"employee_name,omitempty"`
	ProductionAreaID   string `json:"production_area_id"`
	ProductionAreaName string `json:"production_area_name,omitempty"`
	ShiftDate          string `json:"shift_date"`
	ShiftType          string `json:"shift_type"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	Status             string `json:"status"`
	Version            int    `json:"version"`
}

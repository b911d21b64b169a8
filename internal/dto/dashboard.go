package dto

// DashboardStatsResponse 看板统计
type DashboardStatsResponse struct {
	ActiveEmployees int     `json:"active_employees"`
	ProductionAreas int     `json:"production_areas"`
	ActiveOrders    int     `json:"active_orders"`
	CriticalAlerts  int     `json:"critical_alerts"`
	AvgEfficiency   float64 `json:"avg_efficiency"`
	TotalCapacity   int     `json:"total_capacity"`
	CurrentStaff    int     `json:"current_staff"`
}

// ShiftPlanExport 排班计划 JSON 导出
type ShiftPlanExport struct {
	ExportedAt     string                    `json:"exported_at"`
	TotalShifts    int                       `json:"total_shifts"`
	TotalEmployees int                       `json:"total_employees"`
	Format         string                    `json:"format"`
	Data           []ShiftAssignmentResponse `json:"data"`
}

// ExportRequest 导出查询参数
type ExportRequest struct {
	Format     string `form:"format"      binding:"omitempty,oneof=json xlsx ics"`
	EmployeeID string `form:"employee_id"`
	From       string `form:"from"        binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to"          binding:"omitempty,datetime=2006-01-02"`
}

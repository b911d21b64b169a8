package dto

// ── 告警 DTO ──

// CreateAlertRequest 创建告警请求
type CreateAlertRequest struct {
	Type             string  `json:"type"               binding:"required,oneof=critical warning info"`
	Title            string  `json:"title"              binding:"required,max=200"`
	Message          string  `json:"message"            binding:"required,max=1000"`
	ProductionAreaID *string `json:"production_area_id"`
}

// AlertListRequest 告警列表查询参数
type AlertListRequest struct {
	Resolved         *bool  `form:"resolved"`
	Type             string `form:"type" binding:"omitempty,oneof=critical warning info"`
	ProductionAreaID string `form:"production_area_id"`
}

// AlertResponse 告警响应
type AlertResponse struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	Title            string  `json:"title"`
	Message          string  `json:"message"`
	ProductionAreaID *string `json:"production_area_id,omitempty"`
	IsResolved       bool    `json:"is_resolved"`
	Source           string  `json:"source"`
	ResolvedAt       *string `json:"resolved_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// EvaluateAlertsResponse 巡检结果
type EvaluateAlertsResponse struct {
	Created int             `json:"created"`
	Alerts  []AlertResponse `json:"alerts"`
}

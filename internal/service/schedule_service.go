package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/gauravatalea/ShiftGenius-AI-New/config"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
	pkgerrors "github.com/gauravatalea/ShiftGenius-AI-New/pkg/errors"
)

// ── 排班生成业务错误 ──

var (
	ErrScheduleInProgress = fmt.Errorf("排班生成正在进行中: %w", pkgerrors.ErrLockHeld)
	ErrInvalidStartDate   = errors.New("开始日期格式应为 YYYY-MM-DD")
	ErrInvalidShiftType   = errors.New("班次类型仅支持 morning / afternoon / night")
)

const (
	scheduleLockKey      = "schedule:generate:lock"
	defaultScheduleDays  = 7
	defaultPerShift      = 2
	maxConflictMessages  = 50
	maxPreviewAssignment = 10
	weekSpan             = 7 * 24 * time.Hour
)

// shiftWindow 班次在当天的起止偏移
type shiftWindow struct {
	shiftType string
	start     time.Duration
	end       time.Duration
}

// 按时间先后排列：夜班 00-08，早班 08-16，午班 16-24
var shiftWindows = []shiftWindow{
	{model.ShiftNight, 0, 8 * time.Hour},
	{model.ShiftMorning, 8 * time.Hour, 16 * time.Hour},
	{model.ShiftAfternoon, 16 * time.Hour, 24 * time.Hour},
}

// ScheduleService 自动排班业务接口
type ScheduleService interface {
	// Generate 按技能、休息时间、周上限与区域容量贪心生成排班
	Generate(ctx context.Context, req *dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
}

type scheduleService struct {
	repo    *repository.Repository
	locker  Locker
	stats   *statsCache
	minRest time.Duration
	lockTTL time.Duration
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例，locker 可为 nil
func NewScheduleService(repo *repository.Repository, locker Locker, stats *statsCache, cfg *config.ScheduleConfig, logger *zap.Logger) ScheduleService {
	minRest := time.Duration(cfg.MinRestHours) * time.Hour
	if minRest < 0 {
		minRest = 0
	}
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = time.Minute
	}
	return &scheduleService{
		repo:    repo,
		locker:  locker,
		stats:   stats,
		minRest: minRest,
		lockTTL: lockTTL,
		loc:     cfg.Location(),
		now:     time.Now,
		logger:  logger,
	}
}

// interval 员工或区域的已占用时段
type interval struct {
	start time.Time
	end   time.Time
}

// ════════════════════════════════════════════════════════════
// Generate — 贪心排班
// ════════════════════════════════════════════════════════════

func (s *scheduleService) Generate(ctx context.Context, req *dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	// 0. 参数归一化
	startDay, err := s.resolveStartDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	days := req.Days
	if days <= 0 {
		days = defaultScheduleDays
	}
	perShift := req.EmployeesPerShift
	if perShift <= 0 {
		perShift = defaultPerShift
	}
	respectSkills := true
	if req.RespectSkills != nil {
		respectSkills = *req.RespectSkills
	}
	windows, err := selectShiftWindows(req.ShiftTypes)
	if err != nil {
		return nil, err
	}
	windowStart := startDay
	windowEnd := startDay.AddDate(0, 0, days)

	// 1. 加锁：进程内互斥 + Redis 跨实例锁
	placementMu.Lock()
	defer placementMu.Unlock()

	release, err := lockPlacement(ctx, s.locker, s.lockTTL, s.logger)
	if err != nil {
		return nil, err
	}
	defer release()

	if len(req.Goals) > 0 {
		s.logger.Info("排班目标", zap.Strings("goals", req.Goals))
	}

	// ── 阶段1: 数据准备 ──

	active := true
	employees, err := s.repo.Employee.List(ctx, repository.EmployeeFilter{IsActive: &active})
	if err != nil {
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	sort.SliceStable(employees, func(i, j int) bool {
		return employees[i].FullName() < employees[j].FullName()
	})

	areas, err := s.repo.ProductionArea.List(ctx, "")
	if err != nil {
		s.logger.Error("查询生产区域失败", zap.Error(err))
		return nil, err
	}

	// 前后各多取一周，用于休息间隔与周上限判断
	existing, err := s.repo.ShiftAssignment.ListOverlapping(ctx, "", "", windowStart.Add(-weekSpan), windowEnd.Add(weekSpan))
	if err != nil {
		s.logger.Error("查询已有排班失败", zap.Error(err))
		return nil, err
	}

	// 待替换的生成结果不参与占用统计，删除与写入在阶段3同一事务内完成
	byEmployee := make(map[string][]interval)
	byArea := make(map[string][]interval)
	for _, a := range existing {
		if req.ReplaceExisting && replaceable(&a, windowStart, windowEnd) {
			continue
		}
		iv := interval{start: a.StartTime.UTC(), end: a.EndTime.UTC()}
		byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], iv)
		byArea[a.ProductionAreaID] = append(byArea[a.ProductionAreaID], iv)
	}

	// ── 阶段2: 逐日、逐班次、逐区域贪心分配 ──

	var (
		generated []model.ShiftAssignment
		conflicts []string
		required  int
		satisfied int
	)
	areaByID := make(map[string]*model.ProductionArea, len(areas))
	empByID := make(map[string]*model.Employee, len(employees))
	for i := range areas {
		areaByID[areas[i].ID] = &areas[i]
	}
	for i := range employees {
		empByID[employees[i].ID] = &employees[i]
	}

	for d := 0; d < days; d++ {
		day := startDay.AddDate(0, 0, d)
		for _, w := range windows {
			slotStart := day.Add(w.start).UTC()
			slotEnd := day.Add(w.end).UTC()

			for i := range areas {
				area := &areas[i]
				if area.Status == model.AreaStatusMaintenance {
					continue
				}

				// 需求 = min(每班人数, 容量 - 已排人数)
				need := perShift
				if free := area.Capacity - countOverlapping(byArea[area.ID], slotStart, slotEnd); free < need {
					need = free
				}
				if need <= 0 {
					continue
				}
				required += need

				skills := areaRequiredSkills(area)
				candidates := make([]*model.Employee, 0, len(employees))
				for j := range employees {
					emp := &employees[j]
					if respectSkills && !hasAnySkill(emp.Skills, skills) {
						continue
					}
					if !s.available(byEmployee[emp.ID], slotStart, slotEnd) {
						continue
					}
					if weeklyCount(byEmployee[emp.ID], windowStart, slotStart) >= model.WeeklyShiftLimit(emp.WorkingTimeModel) {
						continue
					}
					candidates = append(candidates, emp)
				}

				// 已排班次少者优先，同数按姓名
				sort.SliceStable(candidates, func(a, b int) bool {
					ca := countOverlapping(byEmployee[candidates[a].ID], windowStart, windowEnd)
					cb := countOverlapping(byEmployee[candidates[b].ID], windowStart, windowEnd)
					if ca != cb {
						return ca < cb
					}
					return candidates[a].FullName() < candidates[b].FullName()
				})

				filled := 0
				for _, emp := range candidates {
					if filled == need {
						break
					}
					iv := interval{start: slotStart, end: slotEnd}
					byEmployee[emp.ID] = append(byEmployee[emp.ID], iv)
					byArea[area.ID] = append(byArea[area.ID], iv)
					generated = append(generated, model.ShiftAssignment{
						EmployeeID:       emp.ID,
						ProductionAreaID: area.ID,
						ShiftDate:        time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
						ShiftType:        w.shiftType,
						StartTime:        slotStart,
						EndTime:          slotEnd,
						Status:           model.AssignmentScheduled,
					})
					filled++
				}
				satisfied += filled

				if missing := need - filled; missing > 0 && len(conflicts) < maxConflictMessages {
					conflicts = append(conflicts, fmt.Sprintf("%s %s %s: 缺少 %d 人",
						day.Format(dto.DateLayout), w.shiftType, area.Name, missing))
				}
			}
		}
	}

	// ── 阶段3: 输出 ──

	var replaced int64
	if req.ReplaceExisting {
		replaced, err = s.repo.ShiftAssignment.ReplaceScheduled(ctx, windowStart, windowEnd, generated)
		if err != nil {
			s.logger.Error("替换已生成排班失败", zap.Error(err))
			return nil, err
		}
	} else if len(generated) > 0 {
		if err := s.repo.ShiftAssignment.BatchCreate(ctx, generated); err != nil {
			s.logger.Error("批量写入排班失败", zap.Error(err))
			return nil, err
		}
	}
	if replaced > 0 || len(generated) > 0 {
		s.stats.invalidate(ctx)
	}

	preview := make([]dto.ShiftAssignmentResponse, 0, maxPreviewAssignment)
	for i := 0; i < len(generated) && i < maxPreviewAssignment; i++ {
		a := generated[i]
		a.Employee = empByID[a.EmployeeID]
		a.ProductionArea = areaByID[a.ProductionAreaID]
		preview = append(preview, toShiftAssignmentResponse(&a))
	}
	if conflicts == nil {
		conflicts = []string{}
	}

	// 没有任何缺口时视为全覆盖
	coverage := 100.0
	if required > 0 {
		coverage = float64(satisfied) / float64(required) * 100
	}

	s.logger.Info("排班生成完成",
		zap.String("start_date", startDay.Format(dto.DateLayout)),
		zap.Int("days", days),
		zap.Int("generated", len(generated)),
		zap.Int("required", required),
		zap.Int64("replaced", replaced),
	)

	return &dto.GenerateScheduleResponse{
		Success: true,
		Message: fmt.Sprintf("已生成 %d 个班次，覆盖率 %.1f%%", len(generated), coverage),
		Data: dto.ScheduleSummary{
			TotalShifts:    len(generated),
			RequiredShifts: required,
			UnfilledShifts: required - satisfied,
			Replaced:       replaced,
			Coverage:       fmt.Sprintf("%.1f%%", coverage),
			Efficiency:     fmt.Sprintf("%.1f%%", averageEfficiency(areas)),
			GeneratedAt:    dto.FormatTime(s.now()),
			Assignments:    preview,
			Conflicts:      conflicts,
		},
	}, nil
}

// ── 辅助函数 ──

func (s *scheduleService) resolveStartDate(raw string) (time.Time, error) {
	if raw == "" {
		now := s.now().In(s.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc), nil
	}
	t, err := time.ParseInLocation(dto.DateLayout, raw, s.loc)
	if err != nil {
		return time.Time{}, ErrInvalidStartDate
	}
	return t, nil
}

// replaceable 窗口内仍为 scheduled 的生成结果
func replaceable(a *model.ShiftAssignment, from, to time.Time) bool {
	return a.Status == model.AssignmentScheduled && !a.StartTime.Before(from) && a.StartTime.Before(to)
}

// available 无重叠，且与前后班次都保留最少休息时间
func (s *scheduleService) available(busy []interval, start, end time.Time) bool {
	for _, iv := range busy {
		if iv.start.Before(end) && iv.end.After(start) {
			return false
		}
		if !iv.end.After(start) && start.Sub(iv.end) < s.minRest {
			return false
		}
		if !iv.start.Before(end) && iv.start.Sub(end) < s.minRest {
			return false
		}
	}
	return true
}

// selectShiftWindows 按请求筛选班次，保持时间先后顺序
func selectShiftWindows(types []string) ([]shiftWindow, error) {
	if len(types) == 0 {
		return shiftWindows, nil
	}
	want := make(map[string]bool, len(types))
	for _, t := range types {
		switch t {
		case model.ShiftMorning, model.ShiftAfternoon, model.ShiftNight:
			want[t] = true
		default:
			return nil, ErrInvalidShiftType
		}
	}
	out := make([]shiftWindow, 0, len(want))
	for _, w := range shiftWindows {
		if want[w.shiftType] {
			out = append(out, w)
		}
	}
	return out, nil
}

// weeklyCount 统计 at 所在的 7 天区块内已排班次，区块从 origin 起算
func weeklyCount(busy []interval, origin, at time.Time) int {
	block := int(at.Sub(origin) / weekSpan)
	from := origin.Add(time.Duration(block) * weekSpan)
	to := from.Add(weekSpan)
	n := 0
	for _, iv := range busy {
		if !iv.start.Before(from) && iv.start.Before(to) {
			n++
		}
	}
	return n
}

func countOverlapping(busy []interval, start, end time.Time) int {
	n := 0
	for _, iv := range busy {
		if iv.start.Before(end) && iv.end.After(start) {
			n++
		}
	}
	return n
}

// hasAnySkill 区域无技能要求时任何人都满足
func hasAnySkill(have model.StringList, need []string) bool {
	if len(need) == 0 {
		return true
	}
	for _, sk := range need {
		if have.Contains(sk) {
			return true
		}
	}
	return false
}

// averageEfficiency 无区域时返回 0
func averageEfficiency(areas []model.ProductionArea) float64 {
	if len(areas) == 0 {
		return 0
	}
	var sum float64
	for _, a := range areas {
		sum += a.Efficiency
	}
	return round2(sum / float64(len(areas)))
}

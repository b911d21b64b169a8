package model

import (
	"testing"
	"time"
)

func TestStringList_ScanValue(t *testing.T) {
	var l StringList
	if err := l.Scan([]byte(`["welding","assembly"]`)); err != nil {
		t.Fatalf("Scan 失败: %v", err)
	}
	if len(l) != 2 || !l.Contains("assembly") {
		t.Errorf("解析结果不符: %v", l)
	}

	var empty StringList
	if err := empty.Scan(nil); err != nil || len(empty) != 0 {
		t.Errorf("nil 应解析为空列表, got %v err=%v", empty, err)
	}

	v, err := StringList(nil).Value()
	if err != nil || v != "[]" {
		t.Errorf("nil 列表应写为 [], got %v err=%v", v, err)
	}

	if err := l.Scan(42); err == nil {
		t.Error("不支持的类型应返回错误")
	}
}

func TestShiftAssignment_Overlaps(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	s := &ShiftAssignment{StartTime: base, EndTime: base.Add(8 * time.Hour)}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"相同时段", base, base.Add(8 * time.Hour), true},
		{"首尾相接", base.Add(8 * time.Hour), base.Add(16 * time.Hour), false},
		{"部分重叠", base.Add(4 * time.Hour), base.Add(12 * time.Hour), true},
		{"之前", base.Add(-8 * time.Hour), base, false},
	}
	for _, tc := range cases {
		if got := s.Overlaps(tc.start, tc.end); got != tc.want {
			t.Errorf("%s: 期望 %v，实际 %v", tc.name, tc.want, got)
		}
	}
	if s.Hours() != 8 {
		t.Errorf("期望 8 小时，实际 %v", s.Hours())
	}
}

func TestWorkingTimeLimits(t *testing.T) {
	if ContractHours(WorkingTimePartTime) != 20 || ContractHours("unknown") != 40 {
		t.Error("合同工时映射错误")
	}
	if WeeklyShiftLimit(WorkingTimeFullTime) != 5 || WeeklyShiftLimit(WorkingTimeFlex) != 4 {
		t.Error("每周班次上限映射错误")
	}
}

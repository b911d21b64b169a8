package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
)

func TestSeedSampleData(t *testing.T) {
	repo, mocks := newMockRepository()
	ctx := context.Background()

	seeded, err := SeedSampleData(ctx, repo, zap.NewNop())
	if err != nil {
		t.Fatalf("SeedSampleData 应成功: %v", err)
	}
	if !seeded {
		t.Fatal("空库应写入示例数据")
	}
	if len(mocks.employees.employees) != 3 || len(mocks.areas.areas) != 3 ||
		len(mocks.steps.steps) != 3 || len(mocks.alerts.alerts) != 3 {
		t.Errorf("示例数据数量错误: emp=%d area=%d step=%d alert=%d",
			len(mocks.employees.employees), len(mocks.areas.areas), len(mocks.steps.steps), len(mocks.alerts.alerts))
	}
	for _, st := range mocks.steps.steps {
		if _, ok := mocks.areas.areas[st.ProductionAreaID]; !ok {
			t.Errorf("工序 %s 应关联到已写入的区域", st.Name)
		}
	}
	for _, a := range mocks.alerts.alerts {
		if a.Source != model.AlertSourceSeed {
			t.Errorf("示例告警来源应为 seed，实际=%s", a.Source)
		}
	}

	// 巡检不应为 Packaging 再生成一条缺员告警
	if _, err := NewAlertService(repo, nil, 0.75, zap.NewNop()).Evaluate(ctx); err != nil {
		t.Fatalf("Evaluate 应成功: %v", err)
	}
	lowStaffing := map[string]int{}
	for _, a := range mocks.alerts.alerts {
		if a.Title == AlertTitleLowStaffing && !a.IsResolved {
			if a.ProductionAreaID == nil {
				t.Fatal("缺员告警应关联区域")
			}
			lowStaffing[mocks.areas.areas[*a.ProductionAreaID].Name]++
		}
	}
	if lowStaffing["Packaging"] != 1 {
		t.Errorf("Packaging 应只有 1 条未处理缺员告警，实际=%d", lowStaffing["Packaging"])
	}

	again, err := SeedSampleData(ctx, repo, zap.NewNop())
	if err != nil {
		t.Fatalf("重复调用应成功: %v", err)
	}
	if again {
		t.Error("已有员工时不应重复写入")
	}
}

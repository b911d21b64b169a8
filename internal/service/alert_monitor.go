package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AlertMonitor 按 cron 表达式周期执行告警巡检
type AlertMonitor struct {
	cron    *cron.Cron
	alerts  AlertService
	timeout time.Duration
	logger  *zap.Logger
}

// NewAlertMonitor 创建巡检任务，schedule 为标准 5 段 cron 表达式
func NewAlertMonitor(alerts AlertService, schedule string, logger *zap.Logger) (*AlertMonitor, error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return nil, fmt.Errorf("告警巡检 cron 表达式不能为空")
	}

	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger.Named("cron")))
	c := cron.New(
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	m := &AlertMonitor{cron: c, alerts: alerts, timeout: 30 * time.Second, logger: logger}
	if _, err := c.AddFunc(schedule, m.run); err != nil {
		return nil, fmt.Errorf("告警巡检 cron 表达式无效 %q: %w", schedule, err)
	}
	return m, nil
}

// Start 启动调度（非阻塞）
func (m *AlertMonitor) Start() {
	m.cron.Start()
	m.logger.Info("告警巡检已启动", zap.Int("entries", len(m.cron.Entries())))
}

// Stop 停止调度并等待正在执行的巡检结束
func (m *AlertMonitor) Stop(ctx context.Context) {
	done := m.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		m.logger.Warn("等待告警巡检结束超时")
	}
}

// RunOnce 立即执行一次巡检
func (m *AlertMonitor) RunOnce() {
	m.run()
}

func (m *AlertMonitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	result, err := m.alerts.Evaluate(ctx)
	if err != nil {
		m.logger.Error("告警巡检失败", zap.Error(err))
		return
	}
	m.logger.Debug("告警巡检完成", zap.Int("created", result.Created))
}

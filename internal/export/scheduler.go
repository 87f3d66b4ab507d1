package export

import (
	"context"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler 按 cron 计划定时导出，上一次未完成时跳过本次。
type Scheduler struct {
	cron     *cron.Cron
	exporter *Exporter
	outDir   string
	logger   *zap.Logger
	running  atomic.Bool
}

// NewScheduler 解析 schedule（标准五段 cron 或 "@every 1h" 之类的描述符）并注册导出任务。
func NewScheduler(schedule string, exporter *Exporter, outDir string, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scheduler{
		cron:     cron.New(),
		exporter: exporter,
		outDir:   outDir,
		logger:   logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.Run); err != nil {
		return nil, err
	}
	return s, nil
}

// Start 在后台启动定时任务。
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("export scheduler started", zap.String("dir", s.outDir))
}

// Stop 停止调度，并在 ctx 到期前等待正在进行的导出。
func (s *Scheduler) Stop(ctx context.Context) {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		s.logger.Warn("export scheduler stop timed out")
	}
}

// Run 执行一次导出，已有导出进行中时直接返回。
func (s *Scheduler) Run() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous export still running, skipping")
		return
	}
	defer s.running.Store(false)

	if _, err := s.exporter.Build(context.Background(), s.outDir); err != nil {
		s.logger.Error("scheduled export failed", zap.Error(err))
	}
}

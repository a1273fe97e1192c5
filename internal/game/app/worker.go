package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"parabellum/internal/shared/logs"
	"parabellum/internal/shared/metrics"
)

const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultBatchSize    = 32
)

// Worker 轮询到期任务并逐条执行。每条任务独立事务：处理器出错只回滚
// 自己的事务并标记失败，绝不中断轮询循环。
type Worker struct {
	provider     UnitOfWorkProvider
	registry     *Registry
	cfg          Config
	pollInterval time.Duration
	batchSize    int
	metrics      *metrics.WorkerMetrics
}

type WorkerOption func(*Worker)

func WithPollInterval(d time.Duration) WorkerOption {
	return func(w *Worker) { w.pollInterval = d }
}

func WithBatchSize(n int) WorkerOption {
	return func(w *Worker) { w.batchSize = n }
}

func WithMetrics(m *metrics.WorkerMetrics) WorkerOption {
	return func(w *Worker) { w.metrics = m }
}

func NewWorker(provider UnitOfWorkProvider, registry *Registry, cfg Config, opts ...WorkerOption) *Worker {
	w := &Worker{
		provider:     provider,
		registry:     registry,
		cfg:          cfg,
		pollInterval: DefaultPollInterval,
		batchSize:    DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run 阻塞运行直到 ctx 取消。
func (w *Worker) Run(ctx context.Context) error {
	logs.Info("worker started",
		zap.Duration("poll_interval", w.pollInterval),
		zap.Int("batch_size", w.batchSize))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logs.Info("worker stopped")
			return nil
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick 认领一批到期任务并逐条处理。
func (w *Worker) tick(ctx context.Context) {
	jobs, err := w.claimDue(ctx)
	if err != nil {
		logs.Error("claim due jobs failed", zap.Error(err))
		return
	}
	for _, job := range jobs {
		w.process(ctx, job)
	}
}

// claimDue 在独立事务里原子认领，认领即置为 Processing。
func (w *Worker) claimDue(ctx context.Context) ([]*Job, error) {
	uow, err := w.provider.Begin(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := uow.Jobs().ClaimDue(ctx, w.batchSize, time.Now())
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	if w.metrics != nil {
		w.metrics.JobsClaimed.Add(float64(len(jobs)))
	}
	return jobs, nil
}

func (w *Worker) process(ctx context.Context, job *Job) {
	start := time.Now()
	taskType := job.Payload.TaskType

	handler, err := w.registry.Resolve(taskType)
	if err != nil {
		w.markFailed(ctx, job, err)
		return
	}

	uow, err := w.provider.Begin(ctx)
	if err != nil {
		logs.Error("begin job transaction failed", zap.Int64("job_id", job.ID), zap.Error(err))
		return
	}

	if err := handler(ctx, uow, w.cfg, job); err != nil {
		_ = uow.Rollback()
		w.markFailed(ctx, job, err)
		return
	}
	if err := uow.Jobs().MarkCompleted(ctx, job.ID); err != nil {
		_ = uow.Rollback()
		w.markFailed(ctx, job, err)
		return
	}
	if err := uow.Commit(); err != nil {
		w.markFailed(ctx, job, err)
		return
	}

	if w.metrics != nil {
		w.metrics.JobsCompleted.WithLabelValues(taskType).Inc()
		w.metrics.JobDuration.Observe(time.Since(start).Seconds())
	}
	logs.Debug("job completed",
		zap.Int64("job_id", job.ID),
		zap.String("task_type", taskType))
}

// markFailed 失败标记走独立事务，保证业务事务回滚后状态仍能落库。
func (w *Worker) markFailed(ctx context.Context, job *Job, cause error) {
	logs.Warn("job failed",
		zap.Int64("job_id", job.ID),
		zap.String("task_type", job.Payload.TaskType),
		zap.Error(cause))
	if w.metrics != nil {
		w.metrics.JobsFailed.WithLabelValues(job.Payload.TaskType).Inc()
	}

	uow, err := w.provider.Begin(ctx)
	if err != nil {
		logs.Error("begin fail-mark transaction failed", zap.Int64("job_id", job.ID), zap.Error(err))
		return
	}
	if err := uow.Jobs().MarkFailed(ctx, job.ID, cause.Error()); err != nil {
		_ = uow.Rollback()
		logs.Error("mark job failed errored", zap.Int64("job_id", job.ID), zap.Error(err))
		return
	}
	if err := uow.Commit(); err != nil {
		logs.Error("commit fail-mark failed", zap.Int64("job_id", job.ID), zap.Error(err))
	}
}

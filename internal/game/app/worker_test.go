package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parabellum/internal/game/app"
	"parabellum/internal/game/infra/persistence/memory"
)

func saveJob(t *testing.T, store *memory.Store, job *app.Job) {
	t.Helper()
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := uow.Jobs().Save(ctx, job); err != nil {
		t.Fatalf("save job: %v", err)
	}
	if err := uow.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func jobStatus(t *testing.T, store *memory.Store, id int64) (app.JobStatus, string) {
	t.Helper()
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = uow.Rollback() }()
	j, err := uow.Jobs().GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	return j.Status, j.FailReason
}

func waitForTerminal(t *testing.T, store *memory.Store, id int64) app.JobStatus {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		status, _ := jobStatus(t, store, id)
		if status == app.JobCompleted || status == app.JobFailed {
			return status
		}
		time.Sleep(10 * time.Millisecond)
	}
	status, _ := jobStatus(t, store, id)
	t.Fatalf("job %d stuck in status %s", id, status)
	return ""
}

func runWorker(t *testing.T, store *memory.Store, registry *app.Registry) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	w := app.NewWorker(store, registry, testCfg,
		app.WithPollInterval(5*time.Millisecond),
		app.WithBatchSize(8))
	go func() { _ = w.Run(ctx) }()
	return cancel
}

func TestWorkerCompletesDueJobs(t *testing.T) {
	store := memory.NewStore()
	registry := app.NewRegistry()
	registry.Register("noop", func(ctx context.Context, uow app.UnitOfWork, cfg app.Config, job *app.Job) error {
		return nil
	})

	due, err := app.NewJob(1, 1, 0, "noop", struct{}{})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	future, err := app.NewJob(1, 1, 3600, "noop", struct{}{})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	saveJob(t, store, due)
	saveJob(t, store, future)

	cancel := runWorker(t, store, registry)
	defer cancel()

	if status := waitForTerminal(t, store, due.ID); status != app.JobCompleted {
		t.Fatalf("due job status = %s, want Completed", status)
	}
	if status, _ := jobStatus(t, store, future.ID); status != app.JobPending {
		t.Fatalf("future job status = %s, want Pending", status)
	}
}

func TestWorkerMarksFailedAndKeepsGoing(t *testing.T) {
	store := memory.NewStore()
	registry := app.NewRegistry()
	registry.Register("noop", func(ctx context.Context, uow app.UnitOfWork, cfg app.Config, job *app.Job) error {
		return nil
	})
	registry.Register("boom", func(ctx context.Context, uow app.UnitOfWork, cfg app.Config, job *app.Job) error {
		return errors.New("boom")
	})

	// 坏任务先到期，不能拖垮后面的好任务
	bad, err := app.NewJob(1, 1, 0, "boom", struct{}{})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	bad.CompletedAt = time.Now().Add(-2 * time.Second)
	good, err := app.NewJob(1, 1, 0, "noop", struct{}{})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	saveJob(t, store, bad)
	saveJob(t, store, good)

	cancel := runWorker(t, store, registry)
	defer cancel()

	if status := waitForTerminal(t, store, bad.ID); status != app.JobFailed {
		t.Fatalf("bad job status = %s, want Failed", status)
	}
	if _, reason := jobStatus(t, store, bad.ID); reason != "boom" {
		t.Fatalf("fail reason = %q, want boom", reason)
	}
	if status := waitForTerminal(t, store, good.ID); status != app.JobCompleted {
		t.Fatalf("good job status = %s, want Completed", status)
	}
}

func TestWorkerFailsUnknownTaskType(t *testing.T) {
	store := memory.NewStore()

	job, err := app.NewJob(1, 1, 0, "Teleport", struct{}{})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	saveJob(t, store, job)

	cancel := runWorker(t, store, app.NewRegistry())
	defer cancel()

	if status := waitForTerminal(t, store, job.ID); status != app.JobFailed {
		t.Fatalf("status = %s, want Failed", status)
	}
}

func TestWorkerRollsBackFailedHandlerWrites(t *testing.T) {
	store := memory.NewStore()
	registry := app.NewRegistry()
	registry.Register("halfdone", func(ctx context.Context, uow app.UnitOfWork, cfg app.Config, job *app.Job) error {
		// 写一半再出错，写入不能落库
		extra, err := app.NewJob(1, 1, 0, "halfdone", struct{}{})
		if err != nil {
			return err
		}
		if err := uow.Jobs().Save(ctx, extra); err != nil {
			return err
		}
		return errors.New("gave up halfway")
	})

	job, err := app.NewJob(1, 1, 0, "halfdone", struct{}{})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	saveJob(t, store, job)

	cancel := runWorker(t, store, registry)
	defer cancel()

	if status := waitForTerminal(t, store, job.ID); status != app.JobFailed {
		t.Fatalf("status = %s, want Failed", status)
	}

	// 回滚后库里只有原任务自己
	jobs := activeJobs(t, store, 1, "halfdone")
	if len(jobs) != 0 {
		t.Fatalf("leaked writes from rolled back handler: %d jobs", len(jobs))
	}
}

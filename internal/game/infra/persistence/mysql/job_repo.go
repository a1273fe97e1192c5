package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
	"parabellum/internal/game/infra/persistence/model"
	"parabellum/internal/shared/errs"
)

type JobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) *JobRepo {
	return &JobRepo{db: db}
}

func (r *JobRepo) WithTx(tx *gorm.DB) *JobRepo {
	return &JobRepo{db: tx}
}

const OpSaveJob = "repo.job.Save"

func (r *JobRepo) Save(ctx context.Context, j *app.Job) error {
	if err := r.db.WithContext(ctx).Save(model.JobToModel(j)).Error; err != nil {
		return errs.Wrap(OpSaveJob, errs.KindInfra, err, map[string]any{"job_id": j.ID})
	}
	return nil
}

const OpGetJobByID = "repo.job.GetByID"

func (r *JobRepo) GetByID(ctx context.Context, id int64) (*app.Job, error) {
	var m model.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error

	switch {
	case err == nil:
		return model.JobToDomain(&m), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrJobNotFound
	default:
		return nil, errs.Wrap(OpGetJobByID, errs.KindInfra, err, map[string]any{"job_id": id})
	}
}

const OpClaimDueJobs = "repo.job.ClaimDue"

// ClaimDue 行锁认领到期任务。SKIP LOCKED 让并发 worker 各拿各的，
// 认领到的在同一事务内置为 Processing。
func (r *JobRepo) ClaimDue(ctx context.Context, limit int, now time.Time) ([]*app.Job, error) {
	var rows []model.Job
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND completed_at <= ?", string(app.JobPending), now).
		Order("completed_at").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, errs.Wrap(OpClaimDueJobs, errs.KindInfra, err, nil)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	err = r.db.WithContext(ctx).Model(&model.Job{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": string(app.JobProcessing), "updated_at": now}).Error
	if err != nil {
		return nil, errs.Wrap(OpClaimDueJobs, errs.KindInfra, err, map[string]any{"count": len(ids)})
	}

	out := make([]*app.Job, 0, len(rows))
	for i := range rows {
		j := model.JobToDomain(&rows[i])
		j.Status = app.JobProcessing
		j.UpdatedAt = now
		out = append(out, j)
	}
	return out, nil
}

const OpMarkJobCompleted = "repo.job.MarkCompleted"

func (r *JobRepo) MarkCompleted(ctx context.Context, id int64) error {
	return r.setStatus(ctx, OpMarkJobCompleted, id, app.JobCompleted, "")
}

const OpMarkJobFailed = "repo.job.MarkFailed"

func (r *JobRepo) MarkFailed(ctx context.Context, id int64, reason string) error {
	return r.setStatus(ctx, OpMarkJobFailed, id, app.JobFailed, reason)
}

func (r *JobRepo) setStatus(ctx context.Context, op string, id int64, status app.JobStatus, reason string) error {
	res := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      string(status),
			"fail_reason": reason,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return errs.Wrap(op, errs.KindInfra, res.Error, map[string]any{"job_id": id})
	}
	if res.RowsAffected == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

const OpListActiveJobsByPlayer = "repo.job.ListActiveByPlayer"

func (r *JobRepo) ListActiveByPlayer(ctx context.Context, playerID int64) ([]*app.Job, error) {
	var rows []model.Job
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND status IN ?",
			playerID, []string{string(app.JobPending), string(app.JobProcessing)}).
		Order("completed_at").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Wrap(OpListActiveJobsByPlayer, errs.KindInfra, err, map[string]any{"player_id": playerID})
	}

	out := make([]*app.Job, 0, len(rows))
	for i := range rows {
		out = append(out, model.JobToDomain(&rows[i]))
	}
	return out, nil
}

const OpListActiveJobs = "repo.job.ListActiveByVillageAndType"

func (r *JobRepo) ListActiveByVillageAndType(ctx context.Context, villageID int64, taskType string) ([]*app.Job, error) {
	var rows []model.Job
	err := r.db.WithContext(ctx).
		Where("village_id = ? AND task_type = ? AND status IN ?",
			villageID, taskType, []string{string(app.JobPending), string(app.JobProcessing)}).
		Order("completed_at").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Wrap(OpListActiveJobs, errs.KindInfra, err, map[string]any{
			"village_id": villageID,
			"task_type":  taskType,
		})
	}

	out := make([]*app.Job, 0, len(rows))
	for i := range rows {
		out = append(out, model.JobToDomain(&rows[i]))
	}
	return out, nil
}

package app

import (
	"context"
	"time"

	"parabellum/internal/game/domain"
)

// PlayerRepository 玩家仓储。
type PlayerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Player, error)
	GetByUsername(ctx context.Context, username string) (*domain.Player, error)
	Save(ctx context.Context, p *domain.Player) error
}

// VillageRepository 村庄仓储。GetByID 须还原驻军与援军。
type VillageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Village, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]*domain.Village, error)
	Save(ctx context.Context, v *domain.Village) error
}

// ArmyRepository 军队仓储。
type ArmyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Army, error)
	ListByMapField(ctx context.Context, fieldID int64) ([]*domain.Army, error)
	Save(ctx context.Context, a *domain.Army) error
	Delete(ctx context.Context, id int64) error
}

// HeroRepository 英雄仓储。
type HeroRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hero, error)
	GetByPlayer(ctx context.Context, playerID int64) (*domain.Hero, error)
	Save(ctx context.Context, h *domain.Hero) error
}

// MapRepository 世界地图仓储。
type MapRepository interface {
	GetFieldByID(ctx context.Context, id int64) (*domain.MapField, error)
	SaveField(ctx context.Context, f *domain.MapField) error
	BulkSaveFields(ctx context.Context, fields []domain.MapField) error
	CountFields(ctx context.Context) (int64, error)
}

// JobRepository 调度任务仓储。ClaimDue 须原子地把到期任务标记为执行中，
// 并发 worker 之间不得认领到同一条任务。
type JobRepository interface {
	Save(ctx context.Context, j *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	ClaimDue(ctx context.Context, limit int, now time.Time) ([]*Job, error)
	MarkCompleted(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, reason string) error
	ListActiveByVillageAndType(ctx context.Context, villageID int64, taskType string) ([]*Job, error)
	ListActiveByPlayer(ctx context.Context, playerID int64) ([]*Job, error)
}

// ReportRepository 战报仓储。
type ReportRepository interface {
	Save(ctx context.Context, r *domain.Report) error
	ListByPlayer(ctx context.Context, playerID int64, limit int) ([]*domain.Report, error)
	MarkRead(ctx context.Context, reportID, playerID int64) error
}

// UnitOfWork 一次事务内的全部仓储入口。Commit 或 Rollback 之后不可再用。
type UnitOfWork interface {
	Players() PlayerRepository
	Villages() VillageRepository
	Armies() ArmyRepository
	Heroes() HeroRepository
	Jobs() JobRepository
	Map() MapRepository
	Reports() ReportRepository
	Commit() error
	Rollback() error
}

// UnitOfWorkProvider 开启新事务。
type UnitOfWorkProvider interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

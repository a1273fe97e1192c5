// Package mysql 基于 GORM 事务实现工作单元。战报存 MongoDB，
// 不参与 MySQL 事务，仓储直接透传。
package mysql

import (
	"context"

	"gorm.io/gorm"

	"parabellum/internal/game/app"
	"parabellum/internal/shared/errs"
)

type Provider struct {
	db      *gorm.DB
	reports app.ReportRepository
}

func NewProvider(db *gorm.DB, reports app.ReportRepository) *Provider {
	return &Provider{db: db, reports: reports}
}

const OpBegin = "repo.uow.Begin"

func (p *Provider) Begin(ctx context.Context) (app.UnitOfWork, error) {
	tx := p.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, errs.Wrap(OpBegin, errs.KindInfra, tx.Error, nil)
	}
	return &unitOfWork{tx: tx, reports: p.reports}, nil
}

type unitOfWork struct {
	tx      *gorm.DB
	reports app.ReportRepository
	done    bool
}

func (u *unitOfWork) Players() app.PlayerRepository   { return NewPlayerRepo(u.tx) }
func (u *unitOfWork) Villages() app.VillageRepository { return NewVillageRepo(u.tx) }
func (u *unitOfWork) Armies() app.ArmyRepository      { return NewArmyRepo(u.tx) }
func (u *unitOfWork) Heroes() app.HeroRepository      { return NewHeroRepo(u.tx) }
func (u *unitOfWork) Jobs() app.JobRepository         { return NewJobRepo(u.tx) }
func (u *unitOfWork) Map() app.MapRepository          { return NewMapRepo(u.tx) }
func (u *unitOfWork) Reports() app.ReportRepository   { return u.reports }

const OpCommit = "repo.uow.Commit"

func (u *unitOfWork) Commit() error {
	if u.done {
		return nil
	}
	u.done = true
	return errs.Wrap(OpCommit, errs.KindInfra, u.tx.Commit().Error, nil)
}

func (u *unitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Rollback().Error
}

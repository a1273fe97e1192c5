package app

import (
	"context"

	"parabellum/internal/game/domain"
)

// HandleHeroRevival 复活完成，英雄回到村庄。
func HandleHeroRevival(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task HeroRevivalTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	hero, err := uow.Heroes().GetByID(ctx, task.HeroID)
	if err != nil {
		return err
	}
	if hero.PlayerID != job.PlayerID {
		return &domain.HeroNotOwnedError{HeroID: task.HeroID, PlayerID: job.PlayerID}
	}
	village, err := uow.Villages().GetByID(ctx, job.VillageID)
	if err != nil {
		return err
	}
	if village.PlayerID != job.PlayerID {
		return &domain.VillageNotOwnedError{VillageID: village.ID, PlayerID: job.PlayerID}
	}

	if err := hero.Resurrect(village.ID, task.Reset); err != nil {
		return err
	}
	return uow.Heroes().Save(ctx, hero)
}

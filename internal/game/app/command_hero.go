package app

import (
	"context"

	"parabellum/internal/game/domain"
)

type ReviveHeroCommand struct {
	PlayerID  int64
	HeroID    int64
	VillageID int64
	Reset     bool
}

// ReviveHero 启动英雄复活。成本即刻扣除，复活耗时由英雄经验决定。
func ReviveHero(ctx context.Context, uow UnitOfWork, cfg Config, cmd ReviveHeroCommand) error {
	hero, err := uow.Heroes().GetByID(ctx, cmd.HeroID)
	if err != nil {
		return err
	}
	if hero.PlayerID != cmd.PlayerID {
		return &domain.HeroNotOwnedError{HeroID: cmd.HeroID, PlayerID: cmd.PlayerID}
	}
	if !hero.IsDead() {
		return domain.ErrHeroNotDead
	}

	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}

	cost, secs := hero.ResurrectionCost()
	if err := village.DeductResources(cost); err != nil {
		return err
	}
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}

	job, err := NewJob(cmd.PlayerID, cmd.VillageID, secs/uint32(cfg.Speed), TaskHeroRevival, HeroRevivalTask{
		HeroID: cmd.HeroID,
		Reset:  cmd.Reset,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

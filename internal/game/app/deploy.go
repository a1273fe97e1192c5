package app

import (
	"context"
	"time"

	"parabellum/internal/game/domain"
	"parabellum/internal/shared/utils"
)

// deployArmyFromVillage 从村庄驻军分兵出征。驻军打空时删除驻军记录，
// 新军队处于行军状态，保存后返回。
func deployArmyFromVillage(ctx context.Context, uow UnitOfWork, village *domain.Village, units domain.TroopSet, heroID *int64) (*domain.Army, error) {
	if units.IsEmpty() && heroID == nil {
		return nil, domain.ErrNoUnitsSelected
	}
	home := village.Army
	if home == nil {
		return nil, domain.ErrNoArmyInVillage
	}

	withHero := false
	if heroID != nil {
		hero, err := uow.Heroes().GetByID(ctx, *heroID)
		if err != nil {
			return nil, err
		}
		if hero.PlayerID != village.PlayerID || hero.VillageID != village.ID ||
			home.Hero == nil || home.Hero.ID != hero.ID {
			return nil, &domain.HeroNotAtHomeError{HeroID: hero.ID, VillageID: village.ID}
		}
		withHero = true
	}

	deployed, err := home.Deploy(units, withHero)
	if err != nil {
		return nil, err
	}
	deployed.ID = utils.GenID()

	if home.Immensity() == 0 {
		if err := uow.Armies().Delete(ctx, home.ID); err != nil {
			return nil, err
		}
		village.SetArmy(nil)
	} else {
		if err := uow.Armies().Save(ctx, home); err != nil {
			return nil, err
		}
	}

	if err := uow.Villages().Save(ctx, village); err != nil {
		return nil, err
	}
	if err := uow.Armies().Save(ctx, deployed); err != nil {
		return nil, err
	}
	return deployed, nil
}

// trainSlotReadyTime 同一训练建筑当前队列的完成时刻，空队列返回 now。
func trainSlotReadyTime(ctx context.Context, uow UnitOfWork, villageID int64, slotID uint8, now time.Time) (time.Time, error) {
	jobs, err := uow.Jobs().ListActiveByVillageAndType(ctx, villageID, TaskTrainUnits)
	if err != nil {
		return time.Time{}, err
	}
	ready := now
	for _, j := range jobs {
		var task TrainUnitsTask
		if err := j.DecodeData(&task); err != nil {
			return time.Time{}, err
		}
		if task.SlotID != slotID {
			continue
		}
		// 剩余单位逐个重新入队，队尾时刻按剩余数量折算
		end := j.CompletedAt.Add(time.Duration(task.Quantity-1) * time.Duration(task.TimePerUnit) * time.Second)
		if end.After(ready) {
			ready = end
		}
	}
	return ready, nil
}

// queueReadyTime 指定任务类型当前队列的完成时刻，空队列返回 now。
func queueReadyTime(ctx context.Context, uow UnitOfWork, villageID int64, taskType string, now time.Time) (time.Time, []*Job, error) {
	jobs, err := uow.Jobs().ListActiveByVillageAndType(ctx, villageID, taskType)
	if err != nil {
		return time.Time{}, nil, err
	}
	ready := now
	for _, j := range jobs {
		if j.CompletedAt.After(ready) {
			ready = j.CompletedAt
		}
	}
	return ready, jobs, nil
}

package app

import (
	"context"
	"time"

	"parabellum/internal/game/domain"
)

// HandleAddBuilding 新建筑落成为 1 级。
func HandleAddBuilding(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task AddBuildingTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	village, err := uow.Villages().GetByID(ctx, job.VillageID)
	if err != nil {
		return err
	}
	if err := village.SetBuildingLevelAtSlot(task.SlotID, task.BuildingName, 1); err != nil {
		return err
	}
	village.UpdateState(time.Now(), cfg.Speed)
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}
	return UpdatePlayerCulturePoints(ctx, uow, job.PlayerID)
}

// HandleBuildingUpgrade 建筑升级落地。
func HandleBuildingUpgrade(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task BuildingUpgradeTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	village, err := uow.Villages().GetByID(ctx, job.VillageID)
	if err != nil {
		return err
	}
	if err := village.SetBuildingLevelAtSlot(task.SlotID, task.BuildingName, task.Level); err != nil {
		return err
	}
	village.UpdateState(time.Now(), cfg.Speed)
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}
	return UpdatePlayerCulturePoints(ctx, uow, job.PlayerID)
}

// HandleBuildingDowngrade 建筑降级落地。非资源建筑降到 0 级时整座拆除。
func HandleBuildingDowngrade(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task BuildingDowngradeTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	village, err := uow.Villages().GetByID(ctx, job.VillageID)
	if err != nil {
		return err
	}
	vb, err := village.BuildingAtSlot(task.SlotID)
	if err != nil {
		return err
	}

	if task.Level == 0 && vb.Building.Group != domain.GroupResources {
		if err := village.RemoveBuildingAtSlot(task.SlotID); err != nil {
			return err
		}
	} else {
		if err := village.SetBuildingLevelAtSlot(task.SlotID, vb.Building.Name, task.Level); err != nil {
			return err
		}
	}

	village.UpdateState(time.Now(), cfg.Speed)
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}
	return UpdatePlayerCulturePoints(ctx, uow, job.PlayerID)
}

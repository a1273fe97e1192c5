package app

import (
	"context"

	"parabellum/internal/game/domain"
)

type AddBuildingCommand struct {
	PlayerID  int64
	VillageID int64
	SlotID    uint8
	Building  domain.BuildingName
}

// AddBuilding 在空槽位开建新建筑。资源在下单时扣除，完工由任务落地。
func AddBuilding(ctx context.Context, uow UnitOfWork, cfg Config, cmd AddBuildingCommand) error {
	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}

	secs, err := village.InitBuildingConstruction(cmd.SlotID, cmd.Building, cfg.Speed)
	if err != nil {
		return err
	}
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}

	job, err := NewJob(cmd.PlayerID, cmd.VillageID, secs, TaskAddBuilding, AddBuildingTask{
		SlotID:       cmd.SlotID,
		BuildingName: cmd.Building,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

type UpgradeBuildingCommand struct {
	PlayerID  int64
	VillageID int64
	SlotID    uint8
}

// UpgradeBuilding 升级槽位上的建筑一级。
func UpgradeBuilding(ctx context.Context, uow UnitOfWork, cfg Config, cmd UpgradeBuildingCommand) error {
	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}
	vb, err := village.BuildingAtSlot(cmd.SlotID)
	if err != nil {
		return err
	}

	cost, err := vb.Building.NextLevelCost()
	if err != nil {
		return err
	}
	if err := village.DeductResources(cost); err != nil {
		return err
	}
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}

	secs := vb.Building.BuildTimeSecs(village.MainBuildingLevel(), cfg.Speed)
	job, err := NewJob(cmd.PlayerID, cmd.VillageID, secs, TaskBuildingUpgrade, BuildingUpgradeTask{
		SlotID:       cmd.SlotID,
		BuildingName: vb.Building.Name,
		Level:        vb.Building.Level + 1,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

type DowngradeBuildingCommand struct {
	PlayerID  int64
	VillageID int64
	SlotID    uint8
}

// DowngradeBuilding 主动降级建筑一级，需要 10 级主楼。不退资源。
func DowngradeBuilding(ctx context.Context, uow UnitOfWork, cfg Config, cmd DowngradeBuildingCommand) error {
	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}
	if village.MainBuildingLevel() < 10 {
		return &domain.BuildingRequirementError{Building: domain.BuildingMainBuilding, Level: 10}
	}
	vb, err := village.BuildingAtSlot(cmd.SlotID)
	if err != nil {
		return err
	}
	if vb.Building.Level == 0 {
		return domain.ErrInvalidBuildingLevel
	}

	secs := vb.Building.BuildTimeSecs(village.MainBuildingLevel(), cfg.Speed)
	job, err := NewJob(cmd.PlayerID, cmd.VillageID, secs, TaskBuildingDowngrade, BuildingDowngradeTask{
		SlotID: cmd.SlotID,
		Level:  vb.Building.Level - 1,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

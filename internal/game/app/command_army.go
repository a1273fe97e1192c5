package app

import (
	"context"

	"parabellum/internal/game/domain"
)

type AttackVillageCommand struct {
	PlayerID        int64
	VillageID       int64
	TargetVillageID int64
	Units           domain.TroopSet
	HeroID          *int64
	CatapultTargets []domain.BuildingName
	AttackType      domain.AttackType
}

// AttackVillage 发起进攻：分兵、按最慢兵种计算行军时间、落一条到期任务。
func AttackVillage(ctx context.Context, uow UnitOfWork, cfg Config, cmd AttackVillageCommand) error {
	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}
	target, err := uow.Villages().GetByID(ctx, cmd.TargetVillageID)
	if err != nil {
		return err
	}

	deployed, err := deployArmyFromVillage(ctx, uow, village, cmd.Units, cmd.HeroID)
	if err != nil {
		return err
	}

	travel := village.Position.TravelTimeSecs(target.Position, deployed.Speed(), cfg.WorldSize, cfg.Speed)
	job, err := NewJob(cmd.PlayerID, cmd.VillageID, travel, TaskAttack, AttackTask{
		ArmyID:            deployed.ID,
		AttackerVillageID: village.ID,
		AttackerPlayerID:  cmd.PlayerID,
		TargetVillageID:   target.ID,
		TargetPlayerID:    target.PlayerID,
		CatapultTargets:   cmd.CatapultTargets,
		AttackType:        cmd.AttackType,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

type ScoutVillageCommand struct {
	PlayerID        int64
	VillageID       int64
	TargetVillageID int64
	Units           domain.TroopSet
}

// ScoutVillage 派出侦察任务。只允许侦察兵出征，校验失败不产生任何改动。
func ScoutVillage(ctx context.Context, uow UnitOfWork, cfg Config, cmd ScoutVillageCommand) error {
	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}
	target, err := uow.Villages().GetByID(ctx, cmd.TargetVillageID)
	if err != nil {
		return err
	}

	units := village.Tribe.Units()
	for i, n := range cmd.Units {
		if n > 0 && units[i].Role != domain.RoleScout {
			return domain.ErrOnlyScoutUnits
		}
	}

	deployed, err := deployArmyFromVillage(ctx, uow, village, cmd.Units, nil)
	if err != nil {
		return err
	}

	travel := village.Position.TravelTimeSecs(target.Position, deployed.Speed(), cfg.WorldSize, cfg.Speed)
	job, err := NewJob(cmd.PlayerID, cmd.VillageID, travel, TaskScout, ScoutTask{
		ArmyID:            deployed.ID,
		AttackerVillageID: village.ID,
		AttackerPlayerID:  cmd.PlayerID,
		TargetVillageID:   target.ID,
		TargetPlayerID:    target.PlayerID,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

type ReinforceVillageCommand struct {
	PlayerID        int64
	VillageID       int64
	TargetVillageID int64
	Units           domain.TroopSet
	HeroID          *int64
}

// ReinforceVillage 派出援军驻防目标村庄。
func ReinforceVillage(ctx context.Context, uow UnitOfWork, cfg Config, cmd ReinforceVillageCommand) error {
	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}
	target, err := uow.Villages().GetByID(ctx, cmd.TargetVillageID)
	if err != nil {
		return err
	}

	deployed, err := deployArmyFromVillage(ctx, uow, village, cmd.Units, cmd.HeroID)
	if err != nil {
		return err
	}

	travel := village.Position.TravelTimeSecs(target.Position, deployed.Speed(), cfg.WorldSize, cfg.Speed)
	job, err := NewJob(cmd.PlayerID, cmd.VillageID, travel, TaskReinforcement, ReinforcementTask{
		ArmyID:    deployed.ID,
		VillageID: target.ID,
		PlayerID:  cmd.PlayerID,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

// 建立新村需要的移民数量。
const settlersRequired = 3

type SettleVillageCommand struct {
	PlayerID  int64
	VillageID int64
	Position  domain.Position
}

// SettleVillage 派出三名移民去空山谷建村。文化点不足或目标被占时拒绝。
func SettleVillage(ctx context.Context, uow UnitOfWork, cfg Config, cmd SettleVillageCommand) error {
	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}

	field, err := uow.Map().GetFieldByID(ctx, cmd.Position.ToFieldID(cfg.WorldSize))
	if err != nil {
		return err
	}
	if field.Kind != domain.FieldValley {
		return domain.ErrInvalidValley
	}
	if field.IsOccupied() {
		return domain.ErrTargetOccupied
	}

	player, err := uow.Players().GetByID(ctx, cmd.PlayerID)
	if err != nil {
		return err
	}
	villages, err := uow.Villages().ListByPlayer(ctx, cmd.PlayerID)
	if err != nil {
		return err
	}
	if len(villages) >= player.MaxVillages() {
		return domain.ErrInsufficientCulture
	}

	if village.Army == nil || village.Army.Units[domain.SettlerSlot] < settlersRequired {
		return domain.ErrInsufficientSettlers
	}

	var units domain.TroopSet
	units[domain.SettlerSlot] = settlersRequired
	deployed, err := deployArmyFromVillage(ctx, uow, village, units, nil)
	if err != nil {
		return err
	}

	travel := village.Position.TravelTimeSecs(cmd.Position, deployed.Speed(), cfg.WorldSize, cfg.Speed)
	job, err := NewJob(cmd.PlayerID, cmd.VillageID, travel, TaskFoundVillage, FoundVillageTask{
		ArmyID:        deployed.ID,
		Position:      cmd.Position,
		FromVillageID: village.ID,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

// ownedVillage 加载村庄并校验归属。
func ownedVillage(ctx context.Context, uow UnitOfWork, villageID, playerID int64) (*domain.Village, error) {
	village, err := uow.Villages().GetByID(ctx, villageID)
	if err != nil {
		return nil, err
	}
	if village.PlayerID != playerID {
		return nil, &domain.VillageNotOwnedError{VillageID: villageID, PlayerID: playerID}
	}
	return village, nil
}

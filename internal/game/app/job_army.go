package app

import (
	"context"
	"time"

	"parabellum/internal/game/domain"
	"parabellum/internal/shared/utils"
)

// HandleAttack 军队抵达并结算战斗：应用双方伤亡、建筑损毁与掠夺，
// 写战报并给幸存者落一条返程任务。
func HandleAttack(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task AttackTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	attacker, err := uow.Armies().GetByID(ctx, task.ArmyID)
	if err != nil {
		return err
	}
	defender, err := uow.Villages().GetByID(ctx, task.TargetVillageID)
	if err != nil {
		return err
	}
	origin, err := uow.Villages().GetByID(ctx, task.AttackerVillageID)
	if err != nil {
		return err
	}

	report := domain.CalculateBattle(task.AttackType, attacker, defender, task.CatapultTargets)

	attacker.UpdateUnits(report.Attacker.Survivors)
	if err := saveArmyWithHero(ctx, uow, attacker); err != nil {
		return err
	}

	if err := defender.ApplyBattleReport(report, cfg.Speed); err != nil {
		return err
	}
	if defender.Army != nil {
		if err := saveArmyWithHero(ctx, uow, defender.Army); err != nil {
			return err
		}
	}
	for _, r := range defender.Reinforcements {
		if err := saveArmyWithHero(ctx, uow, r); err != nil {
			return err
		}
	}
	if err := uow.Villages().Save(ctx, defender); err != nil {
		return err
	}

	if err := saveBattleReport(ctx, uow, report, task.AttackerPlayerID, task.AttackerVillageID,
		task.TargetPlayerID, task.TargetVillageID, true); err != nil {
		return err
	}

	return enqueueArmyReturn(ctx, uow, cfg, job, attacker, origin, defender, report.Bounty)
}

// HandleScout 侦察任务结算。防守方无侦察兵时任务不会被发现。
func HandleScout(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task ScoutTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	attacker, err := uow.Armies().GetByID(ctx, task.ArmyID)
	if err != nil {
		return err
	}
	defender, err := uow.Villages().GetByID(ctx, task.TargetVillageID)
	if err != nil {
		return err
	}
	origin, err := uow.Villages().GetByID(ctx, task.AttackerVillageID)
	if err != nil {
		return err
	}

	report := domain.CalculateScoutBattle(attacker, defender)

	attacker.UpdateUnits(report.Attacker.Survivors)
	if err := saveArmyWithHero(ctx, uow, attacker); err != nil {
		return err
	}

	if err := saveBattleReport(ctx, uow, report, task.AttackerPlayerID, task.AttackerVillageID,
		task.TargetPlayerID, task.TargetVillageID, report.WasDetected); err != nil {
		return err
	}

	return enqueueArmyReturn(ctx, uow, cfg, job, attacker, origin, defender, nil)
}

// HandleArmyReturn 军队回村：并入驻军、卸下战利品、删除行军记录。
func HandleArmyReturn(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task ArmyReturnTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	army, err := uow.Armies().GetByID(ctx, task.ArmyID)
	if err != nil {
		return err
	}
	village, err := uow.Villages().GetByID(ctx, task.DestinationVillageID)
	if err != nil {
		return err
	}

	hadArmy := village.Army != nil
	if err := village.MergeArmy(army); err != nil {
		return err
	}
	if !hadArmy {
		village.Army.ID = utils.GenID()
	}
	if err := saveArmyWithHero(ctx, uow, village.Army); err != nil {
		return err
	}
	if army.Hero != nil {
		army.Hero.VillageID = village.ID
		if err := uow.Heroes().Save(ctx, army.Hero); err != nil {
			return err
		}
	}
	if err := uow.Armies().Delete(ctx, army.ID); err != nil {
		return err
	}

	village.StoreResources(task.Resources)
	return uow.Villages().Save(ctx, village)
}

// HandleReinforcement 援军抵达，驻扎到目标村庄格子上。
func HandleReinforcement(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task ReinforcementTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	army, err := uow.Armies().GetByID(ctx, task.ArmyID)
	if err != nil {
		return err
	}
	village, err := uow.Villages().GetByID(ctx, task.VillageID)
	if err != nil {
		return err
	}

	army.CurrentMapFieldID = &village.ID
	return uow.Armies().Save(ctx, army)
}

// HandleFoundVillage 移民抵达建村。目标在途中被占时移民原路返回。
func HandleFoundVillage(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task FoundVillageTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	settlers, err := uow.Armies().GetByID(ctx, task.ArmyID)
	if err != nil {
		return err
	}
	field, err := uow.Map().GetFieldByID(ctx, task.Position.ToFieldID(cfg.WorldSize))
	if err != nil {
		return err
	}

	if field.IsOccupied() {
		origin, err := uow.Villages().GetByID(ctx, task.FromVillageID)
		if err != nil {
			return err
		}
		travel := field.Position.TravelTimeSecs(origin.Position, settlers.Speed(), cfg.WorldSize, cfg.Speed)
		back, err := NewJob(job.PlayerID, task.FromVillageID, travel, TaskArmyReturn, ArmyReturnTask{
			ArmyID:               settlers.ID,
			DestinationPlayerID:  job.PlayerID,
			DestinationVillageID: task.FromVillageID,
			FromVillageID:        field.ID,
		})
		if err != nil {
			return err
		}
		return uow.Jobs().Save(ctx, back)
	}

	player, err := uow.Players().GetByID(ctx, job.PlayerID)
	if err != nil {
		return err
	}
	village, err := domain.NewVillage("New Village", field, player, false, cfg.WorldSize, cfg.Speed)
	if err != nil {
		return err
	}
	village.ParentVillageID = &task.FromVillageID
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}

	field.VillageID = &village.ID
	field.PlayerID = &player.ID
	if err := uow.Map().SaveField(ctx, field); err != nil {
		return err
	}

	if err := uow.Armies().Delete(ctx, settlers.ID); err != nil {
		return err
	}
	return UpdatePlayerCulturePoints(ctx, uow, job.PlayerID)
}

func saveArmyWithHero(ctx context.Context, uow UnitOfWork, a *domain.Army) error {
	if err := uow.Armies().Save(ctx, a); err != nil {
		return err
	}
	if a.Hero != nil {
		return uow.Heroes().Save(ctx, a.Hero)
	}
	return nil
}

// saveBattleReport 进攻方总是收到战报，防守方只有在发现来袭时才收到。
func saveBattleReport(ctx context.Context, uow UnitOfWork, payload *domain.BattleReport,
	actorPlayerID, actorVillageID, targetPlayerID, targetVillageID int64, notifyDefender bool) error {

	audiences := []domain.ReportAudience{{PlayerID: actorPlayerID}}
	if notifyDefender && targetPlayerID != actorPlayerID {
		audiences = append(audiences, domain.ReportAudience{PlayerID: targetPlayerID})
	}

	report := &domain.Report{
		ID:              utils.GenID(),
		Type:            domain.ReportTypeBattle,
		Payload:         payload,
		ActorPlayerID:   actorPlayerID,
		ActorVillageID:  actorVillageID,
		TargetPlayerID:  targetPlayerID,
		TargetVillageID: targetVillageID,
		Audiences:       audiences,
		CreatedAt:       time.Now(),
	}
	return uow.Reports().Save(ctx, report)
}

// enqueueArmyReturn 幸存军队返程。全军覆没时直接删除军队记录。
func enqueueArmyReturn(ctx context.Context, uow UnitOfWork, cfg Config, job *Job,
	army *domain.Army, origin, from *domain.Village, bounty *domain.ResourceGroup) error {

	if army.Immensity() == 0 || (army.Units.IsEmpty() && (army.Hero == nil || army.Hero.IsDead())) {
		return uow.Armies().Delete(ctx, army.ID)
	}

	resources := domain.ResourceGroup{}
	if bounty != nil {
		resources = *bounty
	}

	travel := from.Position.TravelTimeSecs(origin.Position, army.Speed(), cfg.WorldSize, cfg.Speed)
	back, err := NewJob(job.PlayerID, origin.ID, travel, TaskArmyReturn, ArmyReturnTask{
		ArmyID:               army.ID,
		Resources:            resources,
		DestinationPlayerID:  origin.PlayerID,
		DestinationVillageID: origin.ID,
		FromVillageID:        from.ID,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, back)
}

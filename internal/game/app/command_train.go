package app

import (
	"context"
	"fmt"
	"time"

	"parabellum/internal/game/domain"
)

type TrainUnitsCommand struct {
	PlayerID  int64
	VillageID int64
	UnitIdx   uint8
	Building  domain.BuildingName
	Quantity  uint32
}

// TrainUnits 下达训练指令。训练队列按建筑槽位串联，新订单排在已有
// 队列之后，第一个单位在队列就绪后 TimePerUnit 秒完成。
func TrainUnits(ctx context.Context, uow UnitOfWork, cfg Config, cmd TrainUnitsCommand) error {
	if cmd.Quantity == 0 {
		return domain.ErrNoUnitsSelected
	}
	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}

	slotID, unitName, perUnit, err := village.InitUnitTraining(cmd.UnitIdx, cmd.Building, cmd.Quantity, cfg.Speed)
	if err != nil {
		return err
	}
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}

	ready, err := trainSlotReadyTime(ctx, uow, cmd.VillageID, slotID, time.Now())
	if err != nil {
		return err
	}
	deadline := ready.Add(time.Duration(perUnit) * time.Second)

	job, err := NewJobWithDeadline(cmd.PlayerID, cmd.VillageID, deadline, TaskTrainUnits, TrainUnitsTask{
		SlotID:      slotID,
		UnitName:    unitName,
		Quantity:    cmd.Quantity,
		TimePerUnit: perUnit,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

type ResearchAcademyCommand struct {
	PlayerID  int64
	VillageID int64
	UnitIdx   uint8
}

// ResearchAcademy 研究院解锁兵种。
func ResearchAcademy(ctx context.Context, uow UnitOfWork, cfg Config, cmd ResearchAcademyCommand) error {
	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}
	if village.BuildingLevel(domain.BuildingAcademy) == 0 {
		return &domain.BuildingRequirementError{Building: domain.BuildingAcademy, Level: 1}
	}

	secs, err := village.InitAcademyResearch(cmd.UnitIdx, cfg.Speed)
	if err != nil {
		return err
	}
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}

	job, err := NewJob(cmd.PlayerID, cmd.VillageID, secs, TaskResearchAcademy, ResearchAcademyTask{
		UnitIdx: cmd.UnitIdx,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

// 铁匠铺同时最多排队的强化数。
const smithyQueueLimit = 2

type ResearchSmithyCommand struct {
	PlayerID  int64
	VillageID int64
	UnitIdx   uint8
}

// ResearchSmithy 铁匠铺强化。队列容量为 2，同一兵种不允许重复排队，
// 新强化排在已有队列之后。
func ResearchSmithy(ctx context.Context, uow UnitOfWork, cfg Config, cmd ResearchSmithyCommand) error {
	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}

	ready, queued, err := queueReadyTime(ctx, uow, cmd.VillageID, TaskResearchSmithy, time.Now())
	if err != nil {
		return err
	}
	if len(queued) >= smithyQueueLimit {
		return &QueueLimitReachedError{Queue: "smithy"}
	}
	for _, j := range queued {
		var task ResearchSmithyTask
		if err := j.DecodeData(&task); err != nil {
			return err
		}
		if task.UnitIdx == cmd.UnitIdx {
			return &QueueItemAlreadyQueuedError{Queue: "smithy", Item: fmt.Sprintf("unit %d", cmd.UnitIdx)}
		}
	}

	secs, err := village.InitSmithyResearch(cmd.UnitIdx, cfg.Speed)
	if err != nil {
		return err
	}
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}

	deadline := ready.Add(time.Duration(secs) * time.Second)
	job, err := NewJobWithDeadline(cmd.PlayerID, cmd.VillageID, deadline, TaskResearchSmithy, ResearchSmithyTask{
		UnitIdx: cmd.UnitIdx,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

package app

import (
	"context"
	"time"

	"parabellum/internal/game/domain"
	"parabellum/internal/shared/utils"
)

// HandleTrainUnits 一个单位出厂入驻军。剩余数量重新入队，
// 下一个单位在 TimePerUnit 秒后完成。
func HandleTrainUnits(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task TrainUnitsTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	village, err := uow.Villages().GetByID(ctx, job.VillageID)
	if err != nil {
		return err
	}
	if village.Army == nil {
		army := domain.NewVillageArmy(village)
		army.ID = utils.GenID()
		village.SetArmy(army)
	}
	if err := village.Army.AddUnitByName(task.UnitName, 1); err != nil {
		return err
	}
	if err := uow.Armies().Save(ctx, village.Army); err != nil {
		return err
	}
	village.UpdateState(time.Now(), cfg.Speed)
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}

	if task.Quantity <= 1 {
		return nil
	}
	next, err := NewJob(job.PlayerID, job.VillageID, task.TimePerUnit, TaskTrainUnits, TrainUnitsTask{
		SlotID:      task.SlotID,
		UnitName:    task.UnitName,
		Quantity:    task.Quantity - 1,
		TimePerUnit: task.TimePerUnit,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, next)
}

// HandleResearchAcademy 研究完成，兵种解锁。
func HandleResearchAcademy(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task ResearchAcademyTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	village, err := uow.Villages().GetByID(ctx, job.VillageID)
	if err != nil {
		return err
	}
	if err := village.ResearchAcademy(task.UnitIdx); err != nil {
		return err
	}
	return uow.Villages().Save(ctx, village)
}

// HandleResearchSmithy 强化完成，等级加一并同步到驻军。
func HandleResearchSmithy(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task ResearchSmithyTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	village, err := uow.Villages().GetByID(ctx, job.VillageID)
	if err != nil {
		return err
	}
	if err := village.UpgradeSmithy(task.UnitIdx); err != nil {
		return err
	}
	if village.Army != nil {
		if err := uow.Armies().Save(ctx, village.Army); err != nil {
			return err
		}
	}
	return uow.Villages().Save(ctx, village)
}

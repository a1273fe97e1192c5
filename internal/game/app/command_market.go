package app

import (
	"context"

	"parabellum/internal/game/domain"
)

type SendResourcesCommand struct {
	PlayerID        int64
	VillageID       int64
	TargetVillageID int64
	Resources       domain.ResourceGroup
}

// SendResources 商队运输资源。需要市场，商人数按部族运载量折算，
// 运输中的商人直到返程任务完成才会释放。空运输是合法的空操作。
func SendResources(ctx context.Context, uow UnitOfWork, cfg Config, cmd SendResourcesCommand) error {
	if cmd.Resources.IsZero() {
		return nil
	}
	village, err := ownedVillage(ctx, uow, cmd.VillageID, cmd.PlayerID)
	if err != nil {
		return err
	}
	if village.TotalMerchants == 0 {
		return &domain.BuildingRequirementError{Building: domain.BuildingMarketplace, Level: 1}
	}
	target, err := uow.Villages().GetByID(ctx, cmd.TargetVillageID)
	if err != nil {
		return err
	}

	stats := village.Tribe.Merchants()
	needed := uint32((cmd.Resources.Total() + uint64(stats.Capacity) - 1) / uint64(stats.Capacity))

	busy, err := busyMerchants(ctx, uow, cmd.VillageID)
	if err != nil {
		return err
	}
	if busy+needed > village.TotalMerchants {
		return domain.ErrNotEnoughMerchants
	}

	if err := village.DeductResources(cmd.Resources); err != nil {
		return err
	}
	village.BusyMerchants = busy + needed
	if err := uow.Villages().Save(ctx, village); err != nil {
		return err
	}

	travel := village.Position.TravelTimeSecs(target.Position, stats.Speed, cfg.WorldSize, cfg.Speed)
	job, err := NewJob(cmd.PlayerID, cmd.VillageID, travel, TaskMerchantGoing, MerchantGoingTask{
		OriginVillageID:      village.ID,
		DestinationVillageID: target.ID,
		Resources:            cmd.Resources,
		MerchantsUsed:        needed,
		TravelTimeSecs:       travel,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, job)
}

// busyMerchants 运输中商人总数：在途的去程与返程任务之和。
func busyMerchants(ctx context.Context, uow UnitOfWork, villageID int64) (uint32, error) {
	var busy uint32

	going, err := uow.Jobs().ListActiveByVillageAndType(ctx, villageID, TaskMerchantGoing)
	if err != nil {
		return 0, err
	}
	for _, j := range going {
		var task MerchantGoingTask
		if err := j.DecodeData(&task); err != nil {
			return 0, err
		}
		busy += task.MerchantsUsed
	}

	returning, err := uow.Jobs().ListActiveByVillageAndType(ctx, villageID, TaskMerchantReturn)
	if err != nil {
		return 0, err
	}
	for _, j := range returning {
		var task MerchantReturnTask
		if err := j.DecodeData(&task); err != nil {
			return 0, err
		}
		busy += task.MerchantsUsed
	}
	return busy, nil
}

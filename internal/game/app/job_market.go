package app

import "context"

// HandleMerchantGoing 商队抵达卸货，随即落一条返程任务。
func HandleMerchantGoing(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task MerchantGoingTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	dest, err := uow.Villages().GetByID(ctx, task.DestinationVillageID)
	if err != nil {
		return err
	}
	dest.StoreResources(task.Resources)
	if err := uow.Villages().Save(ctx, dest); err != nil {
		return err
	}

	// 返程任务挂在出发村庄名下，保证在途商人统计正确
	back, err := NewJob(job.PlayerID, task.OriginVillageID, task.TravelTimeSecs, TaskMerchantReturn, MerchantReturnTask{
		OriginVillageID:      task.DestinationVillageID,
		DestinationVillageID: task.OriginVillageID,
		MerchantsUsed:        task.MerchantsUsed,
		TravelTimeSecs:       task.TravelTimeSecs,
	})
	if err != nil {
		return err
	}
	return uow.Jobs().Save(ctx, back)
}

// HandleMerchantReturn 商队回村，释放商人。
func HandleMerchantReturn(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error {
	var task MerchantReturnTask
	if err := job.DecodeData(&task); err != nil {
		return err
	}

	village, err := uow.Villages().GetByID(ctx, task.DestinationVillageID)
	if err != nil {
		return err
	}
	if task.MerchantsUsed >= village.BusyMerchants {
		village.BusyMerchants = 0
	} else {
		village.BusyMerchants -= task.MerchantsUsed
	}
	return uow.Villages().Save(ctx, village)
}

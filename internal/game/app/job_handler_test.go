package app_test

import (
	"context"
	"testing"
	"time"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
	"parabellum/internal/game/infra/persistence/memory"
)

// claimAll 把全部到期任务认领出来，deadline 再远也算到期。
func claimAll(t *testing.T, store *memory.Store) []*app.Job {
	t.Helper()
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	jobs, err := uow.Jobs().ClaimDue(ctx, 100, time.Now().Add(48*time.Hour))
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := uow.Commit(); err != nil {
		t.Fatalf("commit claim: %v", err)
	}
	return jobs
}

// runJob 在独立事务里执行一条任务并提交，和 worker 的处理路径一致。
func runJob(t *testing.T, store *memory.Store, handler app.JobHandlerFunc, job *app.Job) {
	t.Helper()
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := handler(ctx, uow, testCfg, job); err != nil {
		t.Fatalf("handle %s: %v", job.Payload.TaskType, err)
	}
	if err := uow.Jobs().MarkCompleted(ctx, job.ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if err := uow.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func listReports(t *testing.T, store *memory.Store, playerID int64) []*domain.Report {
	t.Helper()
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = uow.Rollback() }()
	reports, err := uow.Reports().ListByPlayer(ctx, playerID, 20)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	return reports
}

func TestAttackJobResolvesBattleAndEnqueuesReturn(t *testing.T) {
	store, atk, def := seedWorld(t)

	cmd := app.AttackVillageCommand{
		PlayerID:        attackerPlayerID,
		VillageID:       atk.ID,
		TargetVillageID: def.ID,
		Units:           domain.TroopSet{0: 100},
		AttackType:      domain.AttackNormal,
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.AttackVillage(ctx, uow, cfg, cmd)
	})
	if err != nil {
		t.Fatalf("attack: %v", err)
	}

	claimed := claimAll(t, store)
	if len(claimed) != 1 {
		t.Fatalf("claimed = %d, want 1", len(claimed))
	}
	runJob(t, store, app.HandleAttack, claimed[0])

	// 10 个方阵兵挡不住 100 个狼牙棒，防守方全灭
	defVillage := loadVillage(t, store, def.ID)
	if defVillage.Army != nil && defVillage.Army.Units.Total() != 0 {
		t.Fatalf("defender army should be wiped: %+v", defVillage.Army.Units)
	}
	if defVillage.Stocks.Lumber >= 50000 {
		t.Fatalf("defender not looted: %d", defVillage.Stocks.Lumber)
	}

	// 双方都收到战报
	if got := listReports(t, store, attackerPlayerID); len(got) != 1 {
		t.Fatalf("attacker reports = %d, want 1", len(got))
	}
	if got := listReports(t, store, defenderPlayerID); len(got) != 1 {
		t.Fatalf("defender reports = %d, want 1", len(got))
	}

	// 幸存者带着战利品返程，返程任务有且只有一条
	returns := activeJobs(t, store, atk.ID, app.TaskArmyReturn)
	if len(returns) != 1 {
		t.Fatalf("return jobs = %d, want 1", len(returns))
	}
	var back app.ArmyReturnTask
	if err := returns[0].DecodeData(&back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.DestinationVillageID != atk.ID {
		t.Fatalf("return destination = %d, want %d", back.DestinationVillageID, atk.ID)
	}
	if back.Resources.Total() == 0 {
		t.Fatalf("return carries no bounty")
	}

	// 回村：并入驻军、入库战利品
	claimed = claimAll(t, store)
	if len(claimed) != 1 {
		t.Fatalf("claimed = %d, want 1", len(claimed))
	}
	runJob(t, store, app.HandleArmyReturn, claimed[0])

	home := loadVillage(t, store, atk.ID)
	if home.Army == nil {
		t.Fatalf("home army missing after return")
	}
	if home.Army.Units[0] != 100 || home.Army.Units[domain.ScoutSlot] != 20 {
		t.Fatalf("home army after return = %+v", home.Army.Units)
	}
	if home.Stocks.Lumber <= 50000 {
		t.Fatalf("bounty not stored: %d", home.Stocks.Lumber)
	}
}

func TestScoutJobUndetectedLeavesNoDefenderReport(t *testing.T) {
	store, atk, def := seedWorld(t)

	cmd := app.ScoutVillageCommand{
		PlayerID:        attackerPlayerID,
		VillageID:       atk.ID,
		TargetVillageID: def.ID,
		Units:           domain.TroopSet{domain.ScoutSlot: 10},
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.ScoutVillage(ctx, uow, cfg, cmd)
	})
	if err != nil {
		t.Fatalf("scout: %v", err)
	}

	claimed := claimAll(t, store)
	if len(claimed) != 1 {
		t.Fatalf("claimed = %d, want 1", len(claimed))
	}
	runJob(t, store, app.HandleScout, claimed[0])

	// 防守方没有侦察兵，毫无察觉
	if got := listReports(t, store, defenderPlayerID); len(got) != 0 {
		t.Fatalf("defender reports = %d, want 0", len(got))
	}
	reports := listReports(t, store, attackerPlayerID)
	if len(reports) != 1 {
		t.Fatalf("attacker reports = %d, want 1", len(reports))
	}
	if reports[0].Payload.Scouting == nil {
		t.Fatalf("scout report missing intel")
	}
	if reports[0].Payload.Scouting.Resources.Total() == 0 {
		t.Fatalf("intel has no resource snapshot")
	}

	// 侦察兵无伤返程
	returns := activeJobs(t, store, atk.ID, app.TaskArmyReturn)
	if len(returns) != 1 {
		t.Fatalf("return jobs = %d, want 1", len(returns))
	}
}

func TestTrainUnitsJobReenqueuesRemainder(t *testing.T) {
	store, atk, _ := seedWorld(t)

	unit := domain.TribeTeuton.Units()[0]
	job, err := app.NewJob(attackerPlayerID, atk.ID, 0, app.TaskTrainUnits, app.TrainUnitsTask{
		SlotID:      21,
		UnitName:    unit.Name,
		Quantity:    3,
		TimePerUnit: 10,
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	runJob(t, store, app.HandleTrainUnits, job)

	home := loadVillage(t, store, atk.ID)
	if home.Army.Units[0] != 101 {
		t.Fatalf("units after first completion = %d, want 101", home.Army.Units[0])
	}

	jobs := activeJobs(t, store, atk.ID, app.TaskTrainUnits)
	if len(jobs) != 1 {
		t.Fatalf("requeued jobs = %d, want 1", len(jobs))
	}
	var task app.TrainUnitsTask
	if err := jobs[0].DecodeData(&task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if task.Quantity != 2 {
		t.Fatalf("remaining quantity = %d, want 2", task.Quantity)
	}
}

func TestFoundVillageJobCreatesVillage(t *testing.T) {
	store, atk, _ := seedWorld(t)

	target := domain.Position{X: 10, Y: 10}
	cmd := app.SettleVillageCommand{
		PlayerID:  attackerPlayerID,
		VillageID: atk.ID,
		Position:  target,
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.SettleVillage(ctx, uow, cfg, cmd)
	})
	if err != nil {
		t.Fatalf("settle: %v", err)
	}

	claimed := claimAll(t, store)
	if len(claimed) != 1 {
		t.Fatalf("claimed = %d, want 1", len(claimed))
	}
	runJob(t, store, app.HandleFoundVillage, claimed[0])

	fieldID := target.ToFieldID(testCfg.WorldSize)
	settled := loadVillage(t, store, fieldID)
	if settled.PlayerID != attackerPlayerID {
		t.Fatalf("settled village owner = %d", settled.PlayerID)
	}
	if settled.ParentVillageID == nil || *settled.ParentVillageID != atk.ID {
		t.Fatalf("parent village not recorded")
	}

	ctx := context.Background()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = uow.Rollback() }()
	field, err := uow.Map().GetFieldByID(ctx, fieldID)
	if err != nil {
		t.Fatalf("load field: %v", err)
	}
	if !field.IsOccupied() {
		t.Fatalf("field not marked occupied")
	}

	// 移民转为人口，军队记录删除
	var task app.FoundVillageTask
	if err := claimed[0].DecodeData(&task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := uow.Armies().GetByID(ctx, task.ArmyID); err == nil {
		t.Fatalf("settler army should be deleted")
	}
}

func TestMerchantRoundTripReleasesMerchants(t *testing.T) {
	store, atk, def := seedWorld(t)

	cmd := app.SendResourcesCommand{
		PlayerID:        attackerPlayerID,
		VillageID:       atk.ID,
		TargetVillageID: def.ID,
		Resources:       domain.ResourceGroup{Iron: 800},
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.SendResources(ctx, uow, cfg, cmd)
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	claimed := claimAll(t, store)
	if len(claimed) != 1 {
		t.Fatalf("claimed = %d, want 1", len(claimed))
	}
	runJob(t, store, app.HandleMerchantGoing, claimed[0])

	// 目的地收货
	if v := loadVillage(t, store, def.ID); v.Stocks.Iron != 50800 {
		t.Fatalf("destination iron = %d, want 50800", v.Stocks.Iron)
	}

	// 返程任务挂在出发村庄名下
	returns := activeJobs(t, store, atk.ID, app.TaskMerchantReturn)
	if len(returns) != 1 {
		t.Fatalf("return jobs = %d, want 1", len(returns))
	}
	runJob(t, store, app.HandleMerchantReturn, returns[0])

	if v := loadVillage(t, store, atk.ID); v.BusyMerchants != 0 {
		t.Fatalf("busy merchants = %d, want 0", v.BusyMerchants)
	}
}

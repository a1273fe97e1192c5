package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
	"parabellum/internal/game/infra/persistence/memory"
)

var testCfg = app.NewConfig(100, 1)

const (
	attackerPlayerID = int64(1)
	defenderPlayerID = int64(2)
	homeArmyID       = int64(501)
	defenderArmyID   = int64(601)
)

func valleyAt(x, y int32) *domain.MapField {
	pos := domain.Position{X: x, Y: y}
	return &domain.MapField{
		ID:       pos.ToFieldID(testCfg.WorldSize),
		Position: pos,
		Kind:     domain.FieldValley,
		Topology: domain.ValleyTopology{Lumber: 4, Clay: 4, Iron: 4, Crop: 6},
	}
}

// seedVillage 建一个带兵营、铁匠铺、市场和仓库的村庄，库存充足。
func seedVillage(t *testing.T, uow app.UnitOfWork, player *domain.Player, x, y int32, armyID int64, units domain.TroopSet) *domain.Village {
	t.Helper()
	ctx := context.Background()

	field := valleyAt(x, y)
	v, err := domain.NewVillage(player.Username, field, player, true, testCfg.WorldSize, testCfg.Speed)
	if err != nil {
		t.Fatalf("new village: %v", err)
	}
	for slot, b := range map[uint8]struct {
		name  domain.BuildingName
		level uint8
	}{
		21: {domain.BuildingBarracks, 3},
		22: {domain.BuildingSmithy, 3},
		23: {domain.BuildingMarketplace, 2},
		24: {domain.BuildingWarehouse, 20},
		25: {domain.BuildingGranary, 20},
	} {
		if err := v.SetBuildingLevelAtSlot(slot, b.name, b.level); err != nil {
			t.Fatalf("set building %s: %v", b.name, err)
		}
	}
	v.UpdateState(time.Now(), testCfg.Speed)
	v.Stocks.Lumber = 50000
	v.Stocks.Clay = 50000
	v.Stocks.Iron = 50000
	v.Stocks.Crop = 50000
	v.AcademyResearch[1] = true

	field.VillageID = &v.ID
	field.PlayerID = &player.ID

	if err := uow.Players().Save(ctx, player); err != nil {
		t.Fatalf("save player: %v", err)
	}
	if err := uow.Map().SaveField(ctx, field); err != nil {
		t.Fatalf("save field: %v", err)
	}
	if err := uow.Villages().Save(ctx, v); err != nil {
		t.Fatalf("save village: %v", err)
	}
	if !units.IsEmpty() {
		a := domain.NewVillageArmy(v)
		a.ID = armyID
		a.Units = units
		if err := uow.Armies().Save(ctx, a); err != nil {
			t.Fatalf("save army: %v", err)
		}
		v.SetArmy(a)
	}
	return v
}

// seedWorld 日耳曼进攻方在原点，高卢防守方在 (5,3)，外加一块 (10,10) 的空山谷。
func seedWorld(t *testing.T) (*memory.Store, *domain.Village, *domain.Village) {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	attacker := domain.NewPlayer(attackerPlayerID, "alaric", domain.TribeTeuton)
	attacker.CulturePoints = 2500
	defender := domain.NewPlayer(defenderPlayerID, "brennus", domain.TribeGaul)

	atk := seedVillage(t, uow, attacker, 0, 0, homeArmyID,
		domain.TroopSet{0: 100, domain.ScoutSlot: 20, domain.SettlerSlot: 3})
	def := seedVillage(t, uow, defender, 5, 3, defenderArmyID, domain.TroopSet{0: 10})

	if err := uow.Map().SaveField(ctx, valleyAt(10, 10)); err != nil {
		t.Fatalf("save empty valley: %v", err)
	}
	if err := uow.Commit(); err != nil {
		t.Fatalf("commit seed: %v", err)
	}
	return store, atk, def
}

func execute(t *testing.T, store *memory.Store, fn app.HandlerFunc) error {
	t.Helper()
	return app.NewBus(store, testCfg).Execute(context.Background(), fn)
}

func activeJobs(t *testing.T, store *memory.Store, villageID int64, taskType string) []*app.Job {
	t.Helper()
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = uow.Rollback() }()
	jobs, err := uow.Jobs().ListActiveByVillageAndType(ctx, villageID, taskType)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	return jobs
}

func loadVillage(t *testing.T, store *memory.Store, id int64) *domain.Village {
	t.Helper()
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = uow.Rollback() }()
	v, err := uow.Villages().GetByID(ctx, id)
	if err != nil {
		t.Fatalf("load village %d: %v", id, err)
	}
	return v
}

func loadArmy(t *testing.T, store *memory.Store, id int64) *domain.Army {
	t.Helper()
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = uow.Rollback() }()
	a, err := uow.Armies().GetByID(ctx, id)
	if err != nil {
		t.Fatalf("load army %d: %v", id, err)
	}
	return a
}

func TestAttackVillageCreatesPendingJob(t *testing.T) {
	store, atk, def := seedWorld(t)

	cmd := app.AttackVillageCommand{
		PlayerID:        attackerPlayerID,
		VillageID:       atk.ID,
		TargetVillageID: def.ID,
		Units:           domain.TroopSet{0: 60},
		AttackType:      domain.AttackNormal,
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.AttackVillage(ctx, uow, cfg, cmd)
	})
	if err != nil {
		t.Fatalf("attack: %v", err)
	}

	jobs := activeJobs(t, store, atk.ID, app.TaskAttack)
	if len(jobs) != 1 {
		t.Fatalf("attack jobs = %d, want 1", len(jobs))
	}
	var task app.AttackTask
	if err := jobs[0].DecodeData(&task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if task.TargetVillageID != def.ID || task.AttackerVillageID != atk.ID {
		t.Fatalf("task routing mismatch: %+v", task)
	}

	// 到期时间按最慢兵种的行军时间
	speed := domain.TribeTeuton.Units()[0].Speed
	want := atk.Position.TravelTimeSecs(def.Position, speed, testCfg.WorldSize, testCfg.Speed)
	got := time.Until(jobs[0].CompletedAt)
	if diff := got - time.Duration(want)*time.Second; diff < -3*time.Second || diff > 3*time.Second {
		t.Fatalf("deadline off by %v, want ~%ds", diff, want)
	}

	home := loadVillage(t, store, atk.ID)
	if home.Army == nil || home.Army.Units[0] != 40 {
		t.Fatalf("home army not reduced: %+v", home.Army)
	}
	marching := loadArmy(t, store, task.ArmyID)
	if marching.CurrentMapFieldID != nil {
		t.Fatalf("marching army should have no field")
	}
	if marching.Units[0] != 60 {
		t.Fatalf("marching units = %d, want 60", marching.Units[0])
	}
}

func TestScoutVillageRejectsNonScoutUnits(t *testing.T) {
	store, atk, def := seedWorld(t)

	cmd := app.ScoutVillageCommand{
		PlayerID:        attackerPlayerID,
		VillageID:       atk.ID,
		TargetVillageID: def.ID,
		Units:           domain.TroopSet{0: 10, domain.ScoutSlot: 5},
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.ScoutVillage(ctx, uow, cfg, cmd)
	})
	if !errors.Is(err, domain.ErrOnlyScoutUnits) {
		t.Fatalf("err = %v, want ErrOnlyScoutUnits", err)
	}

	// 事务回滚，驻军和任务都不能有变化
	if jobs := activeJobs(t, store, atk.ID, app.TaskScout); len(jobs) != 0 {
		t.Fatalf("scout jobs = %d, want 0", len(jobs))
	}
	home := loadVillage(t, store, atk.ID)
	if home.Army.Units[0] != 100 || home.Army.Units[domain.ScoutSlot] != 20 {
		t.Fatalf("home army changed after rollback: %+v", home.Army.Units)
	}
}

func TestScoutVillageDeploysScouts(t *testing.T) {
	store, atk, def := seedWorld(t)

	cmd := app.ScoutVillageCommand{
		PlayerID:        attackerPlayerID,
		VillageID:       atk.ID,
		TargetVillageID: def.ID,
		Units:           domain.TroopSet{domain.ScoutSlot: 5},
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.ScoutVillage(ctx, uow, cfg, cmd)
	})
	if err != nil {
		t.Fatalf("scout: %v", err)
	}
	if jobs := activeJobs(t, store, atk.ID, app.TaskScout); len(jobs) != 1 {
		t.Fatalf("scout jobs = %d, want 1", len(jobs))
	}
	home := loadVillage(t, store, atk.ID)
	if home.Army.Units[domain.ScoutSlot] != 15 {
		t.Fatalf("home scouts = %d, want 15", home.Army.Units[domain.ScoutSlot])
	}
}

func TestScoutVillageGaulPathfinders(t *testing.T) {
	store, atk, def := seedWorld(t)

	// 高卢的侦察兵是 2 号位的探路者，不是 3 号位
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	a, err := uow.Armies().GetByID(ctx, defenderArmyID)
	if err != nil {
		t.Fatalf("load army: %v", err)
	}
	a.Units[2] = 8
	a.Units[3] = 4
	if err := uow.Armies().Save(ctx, a); err != nil {
		t.Fatalf("save army: %v", err)
	}
	if err := uow.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	scout := func(units domain.TroopSet) error {
		cmd := app.ScoutVillageCommand{
			PlayerID:        defenderPlayerID,
			VillageID:       def.ID,
			TargetVillageID: atk.ID,
			Units:           units,
		}
		return execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
			return app.ScoutVillage(ctx, uow, cfg, cmd)
		})
	}

	// 雷法师是战斗骑兵，不能执行侦察
	if err := scout(domain.TroopSet{3: 2}); !errors.Is(err, domain.ErrOnlyScoutUnits) {
		t.Fatalf("err = %v, want ErrOnlyScoutUnits", err)
	}

	// 纯探路者放行
	if err := scout(domain.TroopSet{2: 5}); err != nil {
		t.Fatalf("scout: %v", err)
	}
	home := loadArmy(t, store, defenderArmyID)
	if home.Units[2] != 3 {
		t.Fatalf("home pathfinders = %d, want 3", home.Units[2])
	}
	if jobs := activeJobs(t, store, def.ID, app.TaskScout); len(jobs) != 1 {
		t.Fatalf("scout jobs = %d, want 1", len(jobs))
	}
}

func TestTrainUnitsQueuesSequentially(t *testing.T) {
	store, atk, _ := seedWorld(t)

	order := func(quantity uint32) error {
		cmd := app.TrainUnitsCommand{
			PlayerID:  attackerPlayerID,
			VillageID: atk.ID,
			UnitIdx:   0,
			Building:  domain.BuildingBarracks,
			Quantity:  quantity,
		}
		return execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
			return app.TrainUnits(ctx, uow, cfg, cmd)
		})
	}

	if err := order(5); err != nil {
		t.Fatalf("first order: %v", err)
	}
	if err := order(3); err != nil {
		t.Fatalf("second order: %v", err)
	}

	jobs := activeJobs(t, store, atk.ID, app.TaskTrainUnits)
	if len(jobs) != 2 {
		t.Fatalf("train jobs = %d, want 2", len(jobs))
	}

	var first, second app.TrainUnitsTask
	if err := jobs[0].DecodeData(&first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := jobs[1].DecodeData(&second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Quantity != 5 || second.Quantity != 3 {
		t.Fatalf("quantities = %d, %d", first.Quantity, second.Quantity)
	}
	if first.TimePerUnit == 0 {
		t.Fatalf("time per unit must be positive")
	}

	// 第二单排在第一单的整个队列之后
	firstQueueEnd := jobs[0].CompletedAt.Add(time.Duration(first.Quantity-1) * time.Duration(first.TimePerUnit) * time.Second)
	if jobs[1].CompletedAt.Before(firstQueueEnd) {
		t.Fatalf("second order overlaps first queue: %v < %v", jobs[1].CompletedAt, firstQueueEnd)
	}
}

func TestTrainUnitsZeroQuantity(t *testing.T) {
	store, atk, _ := seedWorld(t)

	cmd := app.TrainUnitsCommand{
		PlayerID:  attackerPlayerID,
		VillageID: atk.ID,
		UnitIdx:   0,
		Building:  domain.BuildingBarracks,
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.TrainUnits(ctx, uow, cfg, cmd)
	})
	if !errors.Is(err, domain.ErrNoUnitsSelected) {
		t.Fatalf("err = %v, want ErrNoUnitsSelected", err)
	}
}

func TestSendResourcesMerchantAccounting(t *testing.T) {
	store, atk, def := seedWorld(t)

	send := func(res domain.ResourceGroup) error {
		cmd := app.SendResourcesCommand{
			PlayerID:        attackerPlayerID,
			VillageID:       atk.ID,
			TargetVillageID: def.ID,
			Resources:       res,
		}
		return execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
			return app.SendResources(ctx, uow, cfg, cmd)
		})
	}

	// 日耳曼商人运载 1000，1500 资源要两个商人，市场 2 级刚好够
	if err := send(domain.ResourceGroup{Lumber: 1000, Clay: 500}); err != nil {
		t.Fatalf("send: %v", err)
	}
	v := loadVillage(t, store, atk.ID)
	if v.Stocks.Lumber != 49000 || v.Stocks.Clay != 49500 {
		t.Fatalf("stocks not deducted: %+v", v.Stocks)
	}
	if v.BusyMerchants != 2 {
		t.Fatalf("busy merchants = %d, want 2", v.BusyMerchants)
	}
	if jobs := activeJobs(t, store, atk.ID, app.TaskMerchantGoing); len(jobs) != 1 {
		t.Fatalf("going jobs = %d, want 1", len(jobs))
	}

	// 商人全部在途，再小的运输都要拒绝
	if err := send(domain.ResourceGroup{Lumber: 100}); !errors.Is(err, domain.ErrNotEnoughMerchants) {
		t.Fatalf("err = %v, want ErrNotEnoughMerchants", err)
	}

	// 空运输是合法的空操作
	if err := send(domain.ResourceGroup{}); err != nil {
		t.Fatalf("empty send: %v", err)
	}
}

func TestResearchSmithyQueueLimit(t *testing.T) {
	store, atk, _ := seedWorld(t)

	research := func(unitIdx uint8) error {
		cmd := app.ResearchSmithyCommand{
			PlayerID:  attackerPlayerID,
			VillageID: atk.ID,
			UnitIdx:   unitIdx,
		}
		return execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
			return app.ResearchSmithy(ctx, uow, cfg, cmd)
		})
	}

	if err := research(0); err != nil {
		t.Fatalf("first research: %v", err)
	}
	if err := research(1); err != nil {
		t.Fatalf("second research: %v", err)
	}

	var limitErr *app.QueueLimitReachedError
	if err := research(2); !errors.As(err, &limitErr) {
		t.Fatalf("err = %v, want QueueLimitReachedError", err)
	}

	jobs := activeJobs(t, store, atk.ID, app.TaskResearchSmithy)
	if len(jobs) != 2 {
		t.Fatalf("smithy jobs = %d, want 2", len(jobs))
	}
	if jobs[1].CompletedAt.Before(jobs[0].CompletedAt) {
		t.Fatalf("queue not chained")
	}
}

func TestResearchSmithyRejectsDuplicate(t *testing.T) {
	store, atk, _ := seedWorld(t)

	cmd := app.ResearchSmithyCommand{
		PlayerID:  attackerPlayerID,
		VillageID: atk.ID,
		UnitIdx:   0,
	}
	run := func() error {
		return execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
			return app.ResearchSmithy(ctx, uow, cfg, cmd)
		})
	}
	if err := run(); err != nil {
		t.Fatalf("first research: %v", err)
	}
	var dupErr *app.QueueItemAlreadyQueuedError
	if err := run(); !errors.As(err, &dupErr) {
		t.Fatalf("err = %v, want QueueItemAlreadyQueuedError", err)
	}
}

func TestAddBuildingOccupiedSlotRollsBack(t *testing.T) {
	store, atk, _ := seedWorld(t)

	cmd := app.AddBuildingCommand{
		PlayerID:  attackerPlayerID,
		VillageID: atk.ID,
		SlotID:    20, // 主楼所在槽位
		Building:  domain.BuildingEmbassy,
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.AddBuilding(ctx, uow, cfg, cmd)
	})
	var occupied *domain.SlotOccupiedError
	if !errors.As(err, &occupied) {
		t.Fatalf("err = %v, want SlotOccupiedError", err)
	}
	if jobs := activeJobs(t, store, atk.ID, app.TaskAddBuilding); len(jobs) != 0 {
		t.Fatalf("jobs = %d, want 0", len(jobs))
	}
	if v := loadVillage(t, store, atk.ID); v.Stocks.Lumber != 50000 {
		t.Fatalf("stocks changed after rollback: %d", v.Stocks.Lumber)
	}
}

func TestAddBuildingDeductsAndSchedules(t *testing.T) {
	store, atk, _ := seedWorld(t)

	cmd := app.AddBuildingCommand{
		PlayerID:  attackerPlayerID,
		VillageID: atk.ID,
		SlotID:    26,
		Building:  domain.BuildingEmbassy,
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.AddBuilding(ctx, uow, cfg, cmd)
	})
	if err != nil {
		t.Fatalf("add building: %v", err)
	}

	jobs := activeJobs(t, store, atk.ID, app.TaskAddBuilding)
	if len(jobs) != 1 {
		t.Fatalf("jobs = %d, want 1", len(jobs))
	}
	var task app.AddBuildingTask
	if err := jobs[0].DecodeData(&task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if task.SlotID != 26 || task.BuildingName != domain.BuildingEmbassy {
		t.Fatalf("task mismatch: %+v", task)
	}
	if v := loadVillage(t, store, atk.ID); v.Stocks.Lumber >= 50000 {
		t.Fatalf("resources not deducted")
	}
}

func TestSettleVillageRequiresSettlers(t *testing.T) {
	store, atk, _ := seedWorld(t)

	// 先把移民派出去，家里就不够三个了
	deplete := app.ReinforceVillageCommand{
		PlayerID:        attackerPlayerID,
		VillageID:       atk.ID,
		TargetVillageID: atk.ID,
		Units:           domain.TroopSet{domain.SettlerSlot: 2},
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.ReinforceVillage(ctx, uow, cfg, deplete)
	})
	if err != nil {
		t.Fatalf("deplete settlers: %v", err)
	}

	cmd := app.SettleVillageCommand{
		PlayerID:  attackerPlayerID,
		VillageID: atk.ID,
		Position:  domain.Position{X: 10, Y: 10},
	}
	err = execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.SettleVillage(ctx, uow, cfg, cmd)
	})
	if !errors.Is(err, domain.ErrInsufficientSettlers) {
		t.Fatalf("err = %v, want ErrInsufficientSettlers", err)
	}
}

func TestSettleVillageOccupiedTarget(t *testing.T) {
	store, atk, def := seedWorld(t)

	cmd := app.SettleVillageCommand{
		PlayerID:  attackerPlayerID,
		VillageID: atk.ID,
		Position:  def.Position,
	}
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		return app.SettleVillage(ctx, uow, cfg, cmd)
	})
	if !errors.Is(err, domain.ErrTargetOccupied) {
		t.Fatalf("err = %v, want ErrTargetOccupied", err)
	}
}

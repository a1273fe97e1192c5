package domain

import (
	"errors"
	"testing"
	"time"
)

func testValley() *MapField {
	pos := Position{X: 0, Y: 0}
	return &MapField{
		ID:       pos.ToFieldID(100),
		Position: pos,
		Kind:     FieldValley,
		Topology: ValleyTopology{Lumber: 4, Clay: 4, Iron: 4, Crop: 6},
	}
}

func testVillage(t *testing.T, tribe Tribe) *Village {
	t.Helper()
	player := NewPlayer(1, "alice", tribe)
	v, err := NewVillage("Home", testValley(), player, true, 100, 1)
	if err != nil {
		t.Fatalf("new village: %v", err)
	}
	return v
}

func TestNewVillageLayout(t *testing.T) {
	v := testVillage(t, TribeGaul)

	// 18 块资源田加 1 级主楼
	if len(v.Buildings) != 19 {
		t.Fatalf("buildings = %d, want 19", len(v.Buildings))
	}
	if v.MainBuildingLevel() != 1 {
		t.Fatalf("main building level = %d, want 1", v.MainBuildingLevel())
	}
	if v.Loyalty != 100 {
		t.Fatalf("loyalty = %d, want 100", v.Loyalty)
	}
	if v.Population <= basePopulation {
		t.Fatalf("population = %d, must exceed base", v.Population)
	}

	count := map[BuildingName]int{}
	for _, b := range v.Buildings {
		count[b.Building.Name]++
	}
	if count[BuildingWoodcutter] != 4 || count[BuildingCropland] != 6 {
		t.Fatalf("field layout mismatch: %v", count)
	}
}

func TestNewVillageRejectsOasis(t *testing.T) {
	field := testValley()
	field.Kind = FieldOasis
	player := NewPlayer(1, "alice", TribeRoman)
	if _, err := NewVillage("Home", field, player, false, 100, 1); !errors.Is(err, ErrInvalidValley) {
		t.Fatalf("err = %v, want ErrInvalidValley", err)
	}
}

func TestDeductResources(t *testing.T) {
	v := testVillage(t, TribeRoman)
	v.Stocks.Lumber = 100

	if err := v.DeductResources(rg(200, 0, 0, 0)); !errors.Is(err, ErrNotEnoughResources) {
		t.Fatalf("err = %v, want ErrNotEnoughResources", err)
	}
	// 失败不得有任何扣减
	if v.Stocks.Lumber != 100 {
		t.Fatalf("lumber = %d after failed deduct", v.Stocks.Lumber)
	}

	if err := v.DeductResources(rg(50, 0, 0, 0)); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if v.Stocks.Lumber != 50 {
		t.Fatalf("lumber = %d, want 50", v.Stocks.Lumber)
	}
}

func TestStoreResourcesCapsAtCapacity(t *testing.T) {
	v := testVillage(t, TribeRoman)
	v.StoreResources(rg(1_000_000, 0, 0, 1_000_000))
	if v.Stocks.Lumber != v.Stocks.WarehouseCapacity {
		t.Fatalf("lumber = %d, capacity = %d", v.Stocks.Lumber, v.Stocks.WarehouseCapacity)
	}
	if v.Stocks.Crop != int64(v.Stocks.GranaryCapacity) {
		t.Fatalf("crop = %d, capacity = %d", v.Stocks.Crop, v.Stocks.GranaryCapacity)
	}
}

func TestInitBuildingConstruction(t *testing.T) {
	v := testVillage(t, TribeRoman)
	v.Stocks = Stocks{WarehouseCapacity: 10000, GranaryCapacity: 10000, Lumber: 5000, Clay: 5000, Iron: 5000, Crop: 5000}

	secs, err := v.InitBuildingConstruction(21, BuildingWarehouse, 1)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if secs == 0 {
		t.Fatal("build time must be positive")
	}
	if v.Stocks.Lumber == 5000 {
		t.Fatal("resources must be deducted")
	}
}

func TestInitBuildingConstructionOccupiedSlot(t *testing.T) {
	v := testVillage(t, TribeRoman)
	var occupied *SlotOccupiedError
	// 槽位 20 已有主楼
	if _, err := v.InitBuildingConstruction(20, BuildingWarehouse, 1); !errors.As(err, &occupied) {
		t.Fatalf("err = %v, want SlotOccupiedError", err)
	}
}

func TestInitBuildingConstructionWrongTribeWall(t *testing.T) {
	v := testVillage(t, TribeRoman)
	v.Stocks = Stocks{WarehouseCapacity: 10000, GranaryCapacity: 10000, Lumber: 5000, Clay: 5000, Iron: 5000, Crop: 5000}

	var reqErr *BuildingRequirementError
	if _, err := v.InitBuildingConstruction(WallSlot, BuildingPalisade, 1); !errors.As(err, &reqErr) {
		t.Fatalf("err = %v, want BuildingRequirementError", err)
	}
}

func TestInitUnitTraining(t *testing.T) {
	v := testVillage(t, TribeTeuton)
	v.Stocks = Stocks{WarehouseCapacity: 10000, GranaryCapacity: 10000, Lumber: 5000, Clay: 5000, Iron: 5000, Crop: 5000}

	// 没有兵营不能练兵
	var reqErr *BuildingRequirementError
	if _, _, _, err := v.InitUnitTraining(0, BuildingBarracks, 2, 1); !errors.As(err, &reqErr) {
		t.Fatalf("err = %v, want BuildingRequirementError", err)
	}

	if err := v.SetBuildingLevelAtSlot(21, BuildingBarracks, 1); err != nil {
		t.Fatalf("place barracks: %v", err)
	}

	slot, name, perUnit, err := v.InitUnitTraining(0, BuildingBarracks, 2, 1)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if slot != 21 || name != "Maceman" {
		t.Fatalf("slot=%d name=%s", slot, name)
	}
	if perUnit == 0 {
		t.Fatal("time per unit must be positive")
	}
}

func TestInitUnitTrainingUnresearched(t *testing.T) {
	v := testVillage(t, TribeTeuton)
	v.Stocks = Stocks{WarehouseCapacity: 10000, GranaryCapacity: 10000, Lumber: 5000, Clay: 5000, Iron: 5000, Crop: 5000}
	_ = v.SetBuildingLevelAtSlot(21, BuildingBarracks, 1)

	// 矛兵需要先在研究院解锁
	if _, _, _, err := v.InitUnitTraining(1, BuildingBarracks, 1, 1); !errors.Is(err, ErrUnitNotResearched) {
		t.Fatalf("err = %v, want ErrUnitNotResearched", err)
	}

	_ = v.ResearchAcademy(1)
	if _, _, _, err := v.InitUnitTraining(1, BuildingBarracks, 1, 1); err != nil {
		t.Fatalf("train after research: %v", err)
	}
}

func TestInitUnitTrainingWrongBuilding(t *testing.T) {
	v := testVillage(t, TribeTeuton)
	_ = v.SetBuildingLevelAtSlot(21, BuildingStable, 1)

	var wrong *InvalidTrainingBuildingError
	if _, _, _, err := v.InitUnitTraining(0, BuildingStable, 1, 1); !errors.As(err, &wrong) {
		t.Fatalf("err = %v, want InvalidTrainingBuildingError", err)
	}
}

func TestUpgradeSmithyCap(t *testing.T) {
	v := testVillage(t, TribeTeuton)
	v.Smithy[0] = SmithyMaxLevel
	if err := v.UpgradeSmithy(0); !errors.Is(err, ErrSmithyMaxLevel) {
		t.Fatalf("err = %v, want ErrSmithyMaxLevel", err)
	}

	v.Smithy[1] = 3
	if err := v.UpgradeSmithy(1); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if v.Smithy[1] != 4 {
		t.Fatalf("level = %d, want 4", v.Smithy[1])
	}
}

func TestMergeArmyCreatesHomeArmy(t *testing.T) {
	v := testVillage(t, TribeTeuton)
	if v.Army != nil {
		t.Fatal("fresh village has no army")
	}

	incoming := teutonArmy(TroopSet{5, 3})
	if err := v.MergeArmy(incoming); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if v.Army == nil || v.Army.Units != (TroopSet{5, 3}) {
		t.Fatalf("home army = %+v", v.Army)
	}
}

func TestRemoveBuildingAtSlot(t *testing.T) {
	v := testVillage(t, TribeRoman)

	// 资源田只能归零不能拆除
	if err := v.RemoveBuildingAtSlot(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	b, err := v.BuildingAtSlot(1)
	if err != nil {
		t.Fatalf("field slot gone: %v", err)
	}
	if b.Building.Level != 0 {
		t.Fatalf("field level = %d, want 0", b.Building.Level)
	}

	// 村内建筑整座移除
	if err := v.RemoveBuildingAtSlot(20); err != nil {
		t.Fatalf("remove main building: %v", err)
	}
	var empty *EmptySlotError
	if _, err := v.BuildingAtSlot(20); !errors.As(err, &empty) {
		t.Fatalf("err = %v, want EmptySlotError", err)
	}
}

func TestAccrueResources(t *testing.T) {
	v := testVillage(t, TribeRoman)
	v.Stocks.Lumber = 0
	v.UpdatedAt = time.Now().Add(-time.Hour)

	v.UpdateState(time.Now(), 1)
	if v.Stocks.Lumber == 0 {
		t.Fatal("an hour of production must accrue lumber")
	}
}

func TestMerchantsAvailable(t *testing.T) {
	v := testVillage(t, TribeGaul)
	v.TotalMerchants = 5
	v.BusyMerchants = 3
	if got := v.MerchantsAvailable(); got != 2 {
		t.Fatalf("available = %d, want 2", got)
	}
	v.BusyMerchants = 7
	if got := v.MerchantsAvailable(); got != 0 {
		t.Fatalf("available = %d, want 0", got)
	}
}

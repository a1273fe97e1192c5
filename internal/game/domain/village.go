package domain

import (
	"math"
	"time"
)

const (
	// 槽位约定：1..18 资源田，19 城墙，20..40 村内建筑。
	ResourceSlotMin uint8 = 1
	ResourceSlotMax uint8 = 18
	WallSlot        uint8 = 19
	VillageMaxSlots       = 40

	basePopulation   = 2
	initialLoyalty   = 100
	initialWarehouse = 800
	initialGranary   = 800
)

// Stocks 村庄库存。粮食可为负，负值代表驻军断粮。
type Stocks struct {
	WarehouseCapacity uint64 `json:"warehouse_capacity"`
	GranaryCapacity   uint64 `json:"granary_capacity"`
	Lumber            uint64 `json:"lumber"`
	Clay              uint64 `json:"clay"`
	Iron              uint64 `json:"iron"`
	Crop              int64  `json:"crop"`
}

type VillageBuilding struct {
	SlotID   uint8    `json:"slot_id"`
	Building Building `json:"building"`
}

// Village 村庄聚合根。Army 为驻防本村的自有军队，Reinforcements 为他村援军。
type Village struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	PlayerID        int64             `json:"player_id"`
	ParentVillageID *int64            `json:"parent_village_id,omitempty"`
	Position        Position          `json:"position"`
	Tribe           Tribe             `json:"tribe"`
	Buildings       []VillageBuilding `json:"buildings"`
	Population      uint32            `json:"population"`
	Army            *Army             `json:"-"`
	Reinforcements  []*Army           `json:"-"`
	Loyalty         uint8             `json:"loyalty"`
	Production      ResourceGroup     `json:"production"`
	IsCapital       bool              `json:"is_capital"`
	Smithy          SmithyUpgrades    `json:"smithy"`
	Stocks          Stocks            `json:"stocks"`
	AcademyResearch [TroopSlots]bool  `json:"academy_research"`
	TotalMerchants  uint32            `json:"total_merchants"`
	BusyMerchants   uint32            `json:"busy_merchants"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewVillage 在指定山谷上建村。资源田按山谷地貌铺设，主楼 1 级起建。
func NewVillage(name string, valley *MapField, player *Player, isCapital bool, worldSize int32, serverSpeed uint8) (*Village, error) {
	if valley.Kind != FieldValley {
		return nil, ErrInvalidValley
	}

	v := &Village{
		ID:       valley.ID,
		Name:     name,
		PlayerID: player.ID,
		Position: valley.Position,
		Tribe:    player.Tribe,
		Loyalty:  initialLoyalty,
		Stocks: Stocks{
			WarehouseCapacity: initialWarehouse,
			GranaryCapacity:   initialGranary,
			Lumber:            750,
			Clay:              750,
			Iron:              750,
			Crop:              750,
		},
		IsCapital: isCapital,
		UpdatedAt: time.Now(),
	}

	slot := ResourceSlotMin
	place := func(name BuildingName, count uint8) {
		for i := uint8(0); i < count; i++ {
			b, _ := GetBuilding(name, 0)
			v.Buildings = append(v.Buildings, VillageBuilding{SlotID: slot, Building: b})
			slot++
		}
	}
	topo := valley.Topology
	place(BuildingWoodcutter, topo.Lumber)
	place(BuildingClayPit, topo.Clay)
	place(BuildingIronMine, topo.Iron)
	place(BuildingCropland, topo.Crop)

	mb, err := GetBuilding(BuildingMainBuilding, 1)
	if err != nil {
		return nil, err
	}
	v.Buildings = append(v.Buildings, VillageBuilding{SlotID: WallSlot + 1, Building: mb})

	v.UpdateState(time.Now(), serverSpeed)
	return v, nil
}

// BuildingAtSlot 返回槽位上的建筑。
func (v *Village) BuildingAtSlot(slot uint8) (*VillageBuilding, error) {
	for i := range v.Buildings {
		if v.Buildings[i].SlotID == slot {
			return &v.Buildings[i], nil
		}
	}
	return nil, &EmptySlotError{SlotID: slot}
}

// BuildingLevel 同名建筑的最高等级，没有则为 0。
func (v *Village) BuildingLevel(name BuildingName) uint8 {
	return v.highestLevelOf(name)
}

func (v *Village) highestLevelOf(name BuildingName) uint8 {
	var level uint8
	for i := range v.Buildings {
		if v.Buildings[i].Building.Name == name && v.Buildings[i].Building.Level > level {
			level = v.Buildings[i].Building.Level
		}
	}
	return level
}

func (v *Village) MainBuildingLevel() uint8 {
	return v.BuildingLevel(BuildingMainBuilding)
}

// WallLevel 城墙等级。
func (v *Village) WallLevel() uint8 {
	b, err := v.BuildingAtSlot(WallSlot)
	if err != nil {
		return 0
	}
	return b.Building.Level
}

// BuildingsDurability 石匠小屋带来的建筑耐久系数。
func (v *Village) BuildingsDurability() float64 {
	return 1 + 0.1*float64(v.BuildingLevel(BuildingStonemasonsLodge))
}

// PalaceOrResidence 行宫或皇宫的等级，用于防御加成与移民容量。
func (v *Village) PalaceOrResidence() uint8 {
	if l := v.BuildingLevel(BuildingPalace); l > 0 {
		return l
	}
	return v.BuildingLevel(BuildingResidence)
}

// CulturePoints 村庄累计文化点贡献。
func (v *Village) CulturePoints() uint64 {
	var total uint64
	for i := range v.Buildings {
		total += uint64(v.Buildings[i].Building.CulturePoints)
	}
	return total
}

// UpdateState 重算人口、产量、容量并结算离线资源累积。
func (v *Village) UpdateState(now time.Time, serverSpeed uint8) {
	pop := uint32(basePopulation)
	var prod ResourceGroup
	var bonus struct{ lumber, clay, iron, crop float64 }
	warehouse := uint64(initialWarehouse)
	granary := uint64(initialGranary)

	for i := range v.Buildings {
		b := v.Buildings[i].Building
		pop += b.Population
		switch b.Name {
		case BuildingWoodcutter:
			prod.Lumber += b.EffectiveValue(serverSpeed)
		case BuildingClayPit:
			prod.Clay += b.EffectiveValue(serverSpeed)
		case BuildingIronMine:
			prod.Iron += b.EffectiveValue(serverSpeed)
		case BuildingCropland:
			prod.Crop += b.EffectiveValue(serverSpeed)
		case BuildingSawmill:
			bonus.lumber += float64(b.Value) * float64(b.Level) / 100
		case BuildingBrickyard:
			bonus.clay += float64(b.Value) * float64(b.Level) / 100
		case BuildingIronFoundry:
			bonus.iron += float64(b.Value) * float64(b.Level) / 100
		case BuildingGrainMill, BuildingBakery:
			bonus.crop += float64(b.Value) * float64(b.Level) / 100
		case BuildingWarehouse, BuildingGreatWarehouse:
			warehouse += b.Value
		case BuildingGranary, BuildingGreatGranary:
			granary += b.Value
		}
	}

	prod.Lumber = uint64(float64(prod.Lumber) * (1 + bonus.lumber))
	prod.Clay = uint64(float64(prod.Clay) * (1 + bonus.clay))
	prod.Iron = uint64(float64(prod.Iron) * (1 + bonus.iron))
	prod.Crop = uint64(float64(prod.Crop) * (1 + bonus.crop))

	v.Population = pop
	v.Production = prod
	v.Stocks.WarehouseCapacity = warehouse
	v.Stocks.GranaryCapacity = granary
	v.TotalMerchants = uint32(v.BuildingLevel(BuildingMarketplace))

	v.accrueResources(now)
	v.UpdatedAt = now
}

// accrueResources 按经过的时间累积产量。粮食产量须扣除人口与驻军消耗。
func (v *Village) accrueResources(now time.Time) {
	elapsed := now.Sub(v.UpdatedAt).Hours()
	if elapsed <= 0 {
		return
	}

	add := func(current uint64, perHour uint64, capacity uint64) uint64 {
		next := current + uint64(float64(perHour)*elapsed)
		if next > capacity {
			return capacity
		}
		return next
	}
	v.Stocks.Lumber = add(v.Stocks.Lumber, v.Production.Lumber, v.Stocks.WarehouseCapacity)
	v.Stocks.Clay = add(v.Stocks.Clay, v.Production.Clay, v.Stocks.WarehouseCapacity)
	v.Stocks.Iron = add(v.Stocks.Iron, v.Production.Iron, v.Stocks.WarehouseCapacity)

	net := float64(v.Production.Crop) - float64(v.Upkeep())
	crop := v.Stocks.Crop + int64(net*elapsed)
	if crop > int64(v.Stocks.GranaryCapacity) {
		crop = int64(v.Stocks.GranaryCapacity)
	}
	v.Stocks.Crop = crop
}

// Upkeep 每小时粮食总消耗：人口加驻扎在本村的所有军队。
func (v *Village) Upkeep() uint64 {
	total := uint64(v.Population)
	if v.Army != nil {
		total += v.Army.Upkeep()
	}
	for _, r := range v.Reinforcements {
		total += r.Upkeep()
	}
	return total
}

// DeductResources 扣减库存，任一资源不足即报错且不产生改动。
func (v *Village) DeductResources(cost ResourceGroup) error {
	if v.Stocks.Lumber < cost.Lumber || v.Stocks.Clay < cost.Clay ||
		v.Stocks.Iron < cost.Iron || v.Stocks.Crop < int64(cost.Crop) {
		return ErrNotEnoughResources
	}
	v.Stocks.Lumber -= cost.Lumber
	v.Stocks.Clay -= cost.Clay
	v.Stocks.Iron -= cost.Iron
	v.Stocks.Crop -= int64(cost.Crop)
	return nil
}

// StoreResources 入库，超出容量的部分丢弃。
func (v *Village) StoreResources(res ResourceGroup) {
	capAt := func(val, capacity uint64) uint64 {
		if val > capacity {
			return capacity
		}
		return val
	}
	v.Stocks.Lumber = capAt(v.Stocks.Lumber+res.Lumber, v.Stocks.WarehouseCapacity)
	v.Stocks.Clay = capAt(v.Stocks.Clay+res.Clay, v.Stocks.WarehouseCapacity)
	v.Stocks.Iron = capAt(v.Stocks.Iron+res.Iron, v.Stocks.WarehouseCapacity)
	crop := v.Stocks.Crop + int64(res.Crop)
	if crop > int64(v.Stocks.GranaryCapacity) {
		crop = int64(v.Stocks.GranaryCapacity)
	}
	v.Stocks.Crop = crop
}

// RemoveResources 掠夺后移除资源，下限 0。
func (v *Village) RemoveResources(res ResourceGroup) {
	sub := func(val, n uint64) uint64 {
		if n > val {
			return 0
		}
		return val - n
	}
	v.Stocks.Lumber = sub(v.Stocks.Lumber, res.Lumber)
	v.Stocks.Clay = sub(v.Stocks.Clay, res.Clay)
	v.Stocks.Iron = sub(v.Stocks.Iron, res.Iron)
	v.Stocks.Crop -= int64(res.Crop)
	if v.Stocks.Crop < 0 {
		v.Stocks.Crop = 0
	}
}

// LootableResources 可被掠夺的库存。
func (v *Village) LootableResources() ResourceGroup {
	crop := v.Stocks.Crop
	if crop < 0 {
		crop = 0
	}
	return ResourceGroup{
		Lumber: v.Stocks.Lumber,
		Clay:   v.Stocks.Clay,
		Iron:   v.Stocks.Iron,
		Crop:   uint64(crop),
	}
}

// MerchantsAvailable 空闲商人数。
func (v *Village) MerchantsAvailable() uint32 {
	if v.BusyMerchants >= v.TotalMerchants {
		return 0
	}
	return v.TotalMerchants - v.BusyMerchants
}

// InitBuildingConstruction 在空槽位上开建一座新建筑，扣资源并返回施工秒数。
func (v *Village) InitBuildingConstruction(slot uint8, name BuildingName, serverSpeed uint8) (uint32, error) {
	if slot == 0 || slot > VillageMaxSlots {
		return 0, ErrVillageSlotsFull
	}
	if _, err := v.BuildingAtSlot(slot); err == nil {
		return 0, &SlotOccupiedError{SlotID: slot}
	}
	if len(v.Buildings) >= VillageMaxSlots {
		return 0, ErrVillageSlotsFull
	}
	if err := ValidateBuild(name, v); err != nil {
		return 0, err
	}

	spec := buildingCatalog[name]
	if err := v.DeductResources(spec.costAt(1)); err != nil {
		return 0, err
	}

	b, err := GetBuilding(name, 0)
	if err != nil {
		return 0, err
	}
	return b.BuildTimeSecs(v.MainBuildingLevel(), serverSpeed), nil
}

// validTrainingBuilding 兵种与训练建筑的匹配关系。
func validTrainingBuilding(u Unit, building BuildingName) bool {
	switch building {
	case BuildingBarracks:
		return u.Group == GroupInfantry && (u.Role == RoleFighter || u.Role == RoleScout)
	case BuildingStable:
		return u.Group == GroupCavalry
	case BuildingWorkshop:
		return u.Role == RoleRam || u.Role == RoleCatapult
	case BuildingResidence, BuildingPalace:
		return u.Role == RoleChief || u.Role == RoleSettler
	default:
		return false
	}
}

// InitUnitTraining 下达训练指令：校验、扣资源，返回训练建筑槽位、
// 兵种名与单个单位的训练秒数。
func (v *Village) InitUnitTraining(unitIdx uint8, building BuildingName, quantity uint32, serverSpeed uint8) (uint8, UnitName, uint32, error) {
	if unitIdx >= TroopSlots {
		return 0, "", 0, &InvalidUnitIndexError{Index: unitIdx}
	}
	unit := v.Tribe.Units()[unitIdx]

	if unit.Research.Time > 0 && !v.AcademyResearch[unitIdx] {
		return 0, "", 0, ErrUnitNotResearched
	}
	if !validTrainingBuilding(unit, building) {
		return 0, "", 0, &InvalidTrainingBuildingError{Building: building, Unit: unit.Name}
	}

	var slot *VillageBuilding
	for i := range v.Buildings {
		if v.Buildings[i].Building.Name == building && v.Buildings[i].Building.Level > 0 {
			slot = &v.Buildings[i]
			break
		}
	}
	if slot == nil {
		return 0, "", 0, &BuildingRequirementError{Building: building, Level: 1}
	}

	if err := v.DeductResources(unit.Cost.Resources.MulCount(quantity)); err != nil {
		return 0, "", 0, err
	}

	timePerUnit := uint32(float64(unit.Cost.Time) / float64(serverSpeed) * float64(slot.Building.Value) / 1000)
	if timePerUnit < 1 {
		timePerUnit = 1
	}
	return slot.SlotID, unit.Name, timePerUnit, nil
}

// InitAcademyResearch 研究院解锁兵种：扣研究成本，返回研究秒数。
func (v *Village) InitAcademyResearch(unitIdx uint8, serverSpeed uint8) (uint32, error) {
	if unitIdx >= TroopSlots {
		return 0, &InvalidUnitIndexError{Index: unitIdx}
	}
	if v.AcademyResearch[unitIdx] {
		return 0, ErrUnitAlreadyKnown
	}
	unit := v.Tribe.Units()[unitIdx]
	if unit.Research.Time == 0 {
		return 0, ErrUnitAlreadyKnown
	}
	for _, req := range unit.Requirements {
		if v.BuildingLevel(req.Building) < req.Level {
			return 0, &BuildingRequirementError{Building: req.Building, Level: req.Level}
		}
	}
	if err := v.DeductResources(unit.Research.Resources); err != nil {
		return 0, err
	}
	secs := unit.Research.Time / uint32(serverSpeed)
	if secs < 1 {
		secs = 1
	}
	return secs, nil
}

// InitSmithyResearch 铁匠铺强化：成本随当前强化等级递增。
func (v *Village) InitSmithyResearch(unitIdx uint8, serverSpeed uint8) (uint32, error) {
	if unitIdx >= TroopSlots {
		return 0, &InvalidUnitIndexError{Index: unitIdx}
	}
	if v.BuildingLevel(BuildingSmithy) == 0 {
		return 0, &BuildingRequirementError{Building: BuildingSmithy, Level: 1}
	}
	level := v.Smithy[unitIdx]
	if level >= SmithyMaxLevel {
		return 0, ErrSmithyMaxLevel
	}
	unit := v.Tribe.Units()[unitIdx]
	if unit.Research.Time > 0 && !v.AcademyResearch[unitIdx] {
		return 0, ErrUnitNotResearched
	}

	cost := unit.Cost.Resources.MulScalar(1.5 * math.Pow(costCurve, float64(level)))
	if err := v.DeductResources(cost); err != nil {
		return 0, err
	}
	secs := uint32(float64(unit.Cost.Time) * 2 * float64(level+1) / float64(serverSpeed))
	if secs < 1 {
		secs = 1
	}
	return secs, nil
}

// ResearchAcademy 研究完成，解锁兵种。
func (v *Village) ResearchAcademy(unitIdx uint8) error {
	if unitIdx >= TroopSlots {
		return &InvalidUnitIndexError{Index: unitIdx}
	}
	v.AcademyResearch[unitIdx] = true
	return nil
}

// UpgradeSmithy 强化完成，等级加一。
func (v *Village) UpgradeSmithy(unitIdx uint8) error {
	if unitIdx >= TroopSlots {
		return &InvalidUnitIndexError{Index: unitIdx}
	}
	if v.Smithy[unitIdx] >= SmithyMaxLevel {
		return ErrSmithyMaxLevel
	}
	v.Smithy[unitIdx]++
	if v.Army != nil {
		v.Army.Smithy = v.Smithy
	}
	return nil
}

// SetBuildingLevelAtSlot 施工完成后落地新等级。槽位上没有建筑时，
// 视为新建筑落成。
func (v *Village) SetBuildingLevelAtSlot(slot uint8, name BuildingName, level uint8) error {
	for i := range v.Buildings {
		if v.Buildings[i].SlotID == slot {
			b, err := v.Buildings[i].Building.AtLevel(level)
			if err != nil {
				return err
			}
			v.Buildings[i].Building = b
			return nil
		}
	}
	b, err := GetBuilding(name, level)
	if err != nil {
		return err
	}
	v.Buildings = append(v.Buildings, VillageBuilding{SlotID: slot, Building: b})
	return nil
}

// RemoveBuildingAtSlot 拆除建筑。资源田不可移除，只能降到 0 级。
func (v *Village) RemoveBuildingAtSlot(slot uint8) error {
	for i := range v.Buildings {
		if v.Buildings[i].SlotID != slot {
			continue
		}
		if slot >= ResourceSlotMin && slot <= ResourceSlotMax {
			b, err := v.Buildings[i].Building.AtLevel(0)
			if err != nil {
				return err
			}
			v.Buildings[i].Building = b
			return nil
		}
		v.Buildings = append(v.Buildings[:i], v.Buildings[i+1:]...)
		return nil
	}
	return &EmptySlotError{SlotID: slot}
}

// SetArmy 设置或清空驻军。
func (v *Village) SetArmy(a *Army) {
	v.Army = a
}

// MergeArmy 回村军队并入驻军。驻军不存在时先建空驻军。
func (v *Village) MergeArmy(incoming *Army) error {
	if v.Army == nil {
		v.Army = NewVillageArmy(v)
	}
	return v.Army.Merge(incoming)
}

// AddReinforcement 登记他村援军。
func (v *Village) AddReinforcement(a *Army) {
	v.Reinforcements = append(v.Reinforcements, a)
}

// ApplyBattleReport 把一场战斗的结果落到村庄上：伤亡、城墙与建筑损毁、
// 忠诚度和被掠走的资源。
func (v *Village) ApplyBattleReport(report *BattleReport, serverSpeed uint8) error {
	if report.Defender != nil && v.Army != nil && v.Army.ID == report.Defender.ArmyID {
		v.Army.UpdateUnits(report.Defender.Survivors)
	}
	for _, part := range report.Reinforcements {
		for _, r := range v.Reinforcements {
			if r.ID == part.ArmyID {
				r.UpdateUnits(part.Survivors)
				break
			}
		}
	}

	if report.WallDamage != nil {
		if b, err := v.BuildingAtSlot(WallSlot); err == nil {
			nb, err := b.Building.AtLevel(report.WallDamage.LevelAfter)
			if err == nil {
				b.Building = nb
			}
		} else if wall, ok := v.Tribe.WallBuilding(); ok && report.WallDamage.LevelAfter > 0 {
			_ = v.SetBuildingLevelAtSlot(WallSlot, wall, report.WallDamage.LevelAfter)
		}
	}

	for _, dmg := range report.CatapultDamage {
		for i := range v.Buildings {
			vb := &v.Buildings[i]
			if vb.Building.Name != dmg.Name || vb.Building.Level != dmg.LevelBefore {
				continue
			}
			if dmg.LevelAfter == 0 && vb.Building.Group != GroupResources {
				_ = v.RemoveBuildingAtSlot(vb.SlotID)
			} else {
				_ = v.SetBuildingLevelAtSlot(vb.SlotID, vb.Building.Name, dmg.LevelAfter)
			}
			break
		}
	}

	v.Loyalty = report.LoyaltyAfter
	if report.Bounty != nil {
		v.RemoveResources(*report.Bounty)
	}

	v.UpdateState(time.Now(), serverSpeed)
	return nil
}

package domain

// Tribe 部族，决定可训练兵种、城墙类型与商人参数。
type Tribe string

const (
	TribeRoman  Tribe = "roman"
	TribeTeuton Tribe = "teuton"
	TribeGaul   Tribe = "gaul"
	TribeNatar  Tribe = "natar"
	TribeNature Tribe = "nature"
)

// UnitRole 兵种职能，决定战斗结算时的归类。
type UnitRole string

const (
	RoleFighter  UnitRole = "fighter"
	RoleScout    UnitRole = "scout"
	RoleRam      UnitRole = "ram"
	RoleCatapult UnitRole = "catapult"
	RoleChief    UnitRole = "chief"
	RoleSettler  UnitRole = "settler"
)

// UnitGroup 兵种归属的攻防分组。
type UnitGroup string

const (
	GroupInfantry UnitGroup = "infantry"
	GroupCavalry  UnitGroup = "cavalry"
)

// 兵种槽位约定：每个部族固定 10 个槽位。
// ScoutSlot 仅对罗马和日耳曼成立，高卢的探路者在 2 号位，
// 侦察判定一律走 Role 而不是槽位。
const (
	TroopSlots   = 10
	ScoutSlot    = 3
	RamSlot      = 6
	CatapultSlot = 7
	ChiefSlot    = 8
	SettlerSlot  = 9
)

type UnitName string

// UnitCost 训练一个单位的资源、人口占用与基础耗时（秒）。
type UnitCost struct {
	Resources ResourceGroup
	Upkeep    uint32
	Time      uint32
}

// ResearchCost 研究院解锁该兵种的成本。Time 为 0 表示无需研究。
type ResearchCost struct {
	Resources ResourceGroup
	Time      uint32
}

type BuildingRequirement struct {
	Building BuildingName
	Level    uint8
}

// Unit 兵种静态属性表中的一行。
type Unit struct {
	Name            UnitName
	Role            UnitRole
	Group           UnitGroup
	Attack          uint32
	DefenseInfantry uint32
	DefenseCavalry  uint32
	Speed           uint8
	Capacity        uint32
	Cost            UnitCost
	Research        ResearchCost
	Requirements    []BuildingRequirement
}

// Units 返回部族的 10 个兵种槽位。未知部族返回自然界兵种表。
func (t Tribe) Units() [TroopSlots]Unit {
	switch t {
	case TribeRoman:
		return romanUnits
	case TribeTeuton:
		return teutonUnits
	case TribeGaul:
		return gaulUnits
	case TribeNatar:
		return natarUnits
	default:
		return natureUnits
	}
}

// UnitIdxByName 按名字查兵种槽位。
func (t Tribe) UnitIdxByName(name UnitName) (uint8, error) {
	units := t.Units()
	for i := range units {
		if units[i].Name == name {
			return uint8(i), nil
		}
	}
	return 0, &UnitNotFoundError{Unit: name}
}

// MerchantStats 商人单程速度（格/小时）与单个商人的运载量。
type MerchantStats struct {
	Speed    uint8
	Capacity uint32
}

func (t Tribe) Merchants() MerchantStats {
	switch t {
	case TribeRoman:
		return MerchantStats{Speed: 16, Capacity: 500}
	case TribeTeuton:
		return MerchantStats{Speed: 12, Capacity: 1000}
	case TribeGaul:
		return MerchantStats{Speed: 24, Capacity: 750}
	default:
		return MerchantStats{Speed: 16, Capacity: 500}
	}
}

// WallBuilding 各部族的城墙建筑。
func (t Tribe) WallBuilding() (BuildingName, bool) {
	switch t {
	case TribeRoman:
		return BuildingCityWall, true
	case TribeTeuton:
		return BuildingEarthWall, true
	case TribeGaul:
		return BuildingPalisade, true
	default:
		return "", false
	}
}

// WallFactor 城墙每级提供的防御乘数底数。
func (t Tribe) WallFactor() float64 {
	switch t {
	case TribeRoman:
		return 1.030
	case TribeGaul:
		return 1.025
	default:
		return 1.020
	}
}

func rg(l, c, i, cr uint64) ResourceGroup { return ResourceGroup{Lumber: l, Clay: c, Iron: i, Crop: cr} }

var romanUnits = [TroopSlots]Unit{
	{Name: "Legionnaire", Role: RoleFighter, Group: GroupInfantry, Attack: 40, DefenseInfantry: 35, DefenseCavalry: 50, Speed: 12, Capacity: 50,
		Cost:         UnitCost{Resources: rg(120, 100, 150, 30), Upkeep: 1, Time: 533},
		Requirements: []BuildingRequirement{{BuildingBarracks, 1}}},
	{Name: "Praetorian", Role: RoleFighter, Group: GroupInfantry, Attack: 30, DefenseInfantry: 65, DefenseCavalry: 35, Speed: 10, Capacity: 20,
		Cost:         UnitCost{Resources: rg(100, 130, 160, 70), Upkeep: 1, Time: 597},
		Research:     ResearchCost{Resources: rg(700, 620, 1480, 580), Time: 8400},
		Requirements: []BuildingRequirement{{BuildingAcademy, 1}, {BuildingSmithy, 1}}},
	{Name: "Imperian", Role: RoleFighter, Group: GroupInfantry, Attack: 70, DefenseInfantry: 40, DefenseCavalry: 25, Speed: 14, Capacity: 50,
		Cost:         UnitCost{Resources: rg(150, 160, 210, 80), Upkeep: 1, Time: 640},
		Research:     ResearchCost{Resources: rg(1000, 740, 1880, 640), Time: 9000},
		Requirements: []BuildingRequirement{{BuildingAcademy, 5}, {BuildingSmithy, 1}}},
	{Name: "EquitesLegati", Role: RoleScout, Group: GroupCavalry, Attack: 0, DefenseInfantry: 20, DefenseCavalry: 10, Speed: 32, Capacity: 0,
		Cost:         UnitCost{Resources: rg(140, 160, 20, 40), Upkeep: 2, Time: 453},
		Research:     ResearchCost{Resources: rg(940, 740, 360, 400), Time: 6900},
		Requirements: []BuildingRequirement{{BuildingAcademy, 5}, {BuildingStable, 1}}},
	{Name: "EquitesImperatoris", Role: RoleFighter, Group: GroupCavalry, Attack: 120, DefenseInfantry: 65, DefenseCavalry: 50, Speed: 28, Capacity: 100,
		Cost:         UnitCost{Resources: rg(550, 440, 320, 100), Upkeep: 3, Time: 880},
		Research:     ResearchCost{Resources: rg(3400, 1860, 2760, 760), Time: 11700},
		Requirements: []BuildingRequirement{{BuildingAcademy, 5}, {BuildingStable, 5}}},
	{Name: "EquitesCaesaris", Role: RoleFighter, Group: GroupCavalry, Attack: 180, DefenseInfantry: 80, DefenseCavalry: 105, Speed: 20, Capacity: 70,
		Cost:         UnitCost{Resources: rg(550, 640, 800, 180), Upkeep: 4, Time: 1173},
		Research:     ResearchCost{Resources: rg(3400, 2660, 6600, 1240), Time: 15000},
		Requirements: []BuildingRequirement{{BuildingAcademy, 10}, {BuildingStable, 10}}},
	{Name: "BatteringRam", Role: RoleRam, Group: GroupInfantry, Attack: 60, DefenseInfantry: 30, DefenseCavalry: 75, Speed: 8, Capacity: 0,
		Cost:         UnitCost{Resources: rg(900, 360, 500, 70), Upkeep: 3, Time: 1533},
		Research:     ResearchCost{Resources: rg(5500, 1540, 4200, 580), Time: 15600},
		Requirements: []BuildingRequirement{{BuildingAcademy, 10}, {BuildingWorkshop, 1}}},
	{Name: "FireCatapult", Role: RoleCatapult, Group: GroupInfantry, Attack: 75, DefenseInfantry: 60, DefenseCavalry: 10, Speed: 6, Capacity: 0,
		Cost:         UnitCost{Resources: rg(950, 1350, 600, 90), Upkeep: 6, Time: 3000},
		Research:     ResearchCost{Resources: rg(5800, 5500, 5000, 700), Time: 28800},
		Requirements: []BuildingRequirement{{BuildingAcademy, 15}, {BuildingWorkshop, 10}}},
	{Name: "Senator", Role: RoleChief, Group: GroupInfantry, Attack: 50, DefenseInfantry: 40, DefenseCavalry: 30, Speed: 8, Capacity: 0,
		Cost:         UnitCost{Resources: rg(30750, 27200, 45000, 37500), Upkeep: 5, Time: 30233},
		Research:     ResearchCost{Resources: rg(15880, 13800, 36400, 22660), Time: 24475},
		Requirements: []BuildingRequirement{{BuildingAcademy, 20}, {BuildingRallyPoint, 10}}},
	{Name: "Settler", Role: RoleSettler, Group: GroupInfantry, Attack: 0, DefenseInfantry: 80, DefenseCavalry: 80, Speed: 10, Capacity: 3000,
		Cost: UnitCost{Resources: rg(4600, 4200, 5800, 4400), Upkeep: 1, Time: 8967}},
}

var teutonUnits = [TroopSlots]Unit{
	{Name: "Maceman", Role: RoleFighter, Group: GroupInfantry, Attack: 40, DefenseInfantry: 20, DefenseCavalry: 5, Speed: 14, Capacity: 60,
		Cost:         UnitCost{Resources: rg(95, 75, 40, 40), Upkeep: 1, Time: 240},
		Requirements: []BuildingRequirement{{BuildingBarracks, 1}}},
	{Name: "Spearman", Role: RoleFighter, Group: GroupInfantry, Attack: 10, DefenseInfantry: 35, DefenseCavalry: 60, Speed: 14, Capacity: 40,
		Cost:         UnitCost{Resources: rg(145, 70, 85, 40), Upkeep: 1, Time: 73},
		Research:     ResearchCost{Resources: rg(970, 380, 880, 400), Time: 5760},
		Requirements: []BuildingRequirement{{BuildingAcademy, 1}, {BuildingBarracks, 1}}},
	{Name: "Axeman", Role: RoleFighter, Group: GroupInfantry, Attack: 60, DefenseInfantry: 30, DefenseCavalry: 30, Speed: 12, Capacity: 50,
		Cost:         UnitCost{Resources: rg(130, 120, 170, 70), Upkeep: 1, Time: 76},
		Research:     ResearchCost{Resources: rg(880, 580, 1560, 580), Time: 6300},
		Requirements: []BuildingRequirement{{BuildingAcademy, 3}, {BuildingSmithy, 1}}},
	{Name: "Scout", Role: RoleScout, Group: GroupInfantry, Attack: 0, DefenseInfantry: 10, DefenseCavalry: 5, Speed: 18, Capacity: 0,
		Cost:         UnitCost{Resources: rg(160, 100, 50, 50), Upkeep: 1, Time: 73},
		Research:     ResearchCost{Resources: rg(1060, 500, 600, 460), Time: 6000},
		Requirements: []BuildingRequirement{{BuildingAcademy, 1}, {BuildingMainBuilding, 5}}},
	{Name: "Paladin", Role: RoleFighter, Group: GroupCavalry, Attack: 55, DefenseInfantry: 100, DefenseCavalry: 40, Speed: 20, Capacity: 110,
		Cost:         UnitCost{Resources: rg(370, 270, 290, 75), Upkeep: 2, Time: 800},
		Research:     ResearchCost{Resources: rg(2320, 1180, 2520, 610), Time: 10800},
		Requirements: []BuildingRequirement{{BuildingAcademy, 5}, {BuildingStable, 3}}},
	{Name: "TeutonicKnight", Role: RoleFighter, Group: GroupCavalry, Attack: 150, DefenseInfantry: 50, DefenseCavalry: 75, Speed: 18, Capacity: 80,
		Cost:         UnitCost{Resources: rg(450, 515, 480, 80), Upkeep: 3, Time: 987},
		Research:     ResearchCost{Resources: rg(2800, 2160, 4040, 640), Time: 13500},
		Requirements: []BuildingRequirement{{BuildingAcademy, 15}, {BuildingStable, 10}}},
	{Name: "Ram", Role: RoleRam, Group: GroupInfantry, Attack: 65, DefenseInfantry: 30, DefenseCavalry: 80, Speed: 8, Capacity: 0,
		Cost:         UnitCost{Resources: rg(1000, 300, 350, 70), Upkeep: 3, Time: 1400},
		Research:     ResearchCost{Resources: rg(6100, 1300, 3000, 580), Time: 14400},
		Requirements: []BuildingRequirement{{BuildingAcademy, 10}, {BuildingWorkshop, 1}}},
	{Name: "Catapult", Role: RoleCatapult, Group: GroupInfantry, Attack: 50, DefenseInfantry: 60, DefenseCavalry: 10, Speed: 6, Capacity: 0,
		Cost:         UnitCost{Resources: rg(900, 1200, 600, 60), Upkeep: 6, Time: 3000},
		Research:     ResearchCost{Resources: rg(5500, 4900, 5000, 520), Time: 28800},
		Requirements: []BuildingRequirement{{BuildingAcademy, 15}, {BuildingWorkshop, 10}}},
	{Name: "Chief", Role: RoleChief, Group: GroupInfantry, Attack: 40, DefenseInfantry: 60, DefenseCavalry: 40, Speed: 8, Capacity: 0,
		Cost:         UnitCost{Resources: rg(35500, 26600, 25000, 27200), Upkeep: 4, Time: 23500},
		Research:     ResearchCost{Resources: rg(18250, 13500, 20400, 16480), Time: 19425},
		Requirements: []BuildingRequirement{{BuildingAcademy, 20}, {BuildingRallyPoint, 5}}},
	{Name: "Settler", Role: RoleSettler, Group: GroupInfantry, Attack: 10, DefenseInfantry: 80, DefenseCavalry: 80, Speed: 10, Capacity: 3000,
		Cost: UnitCost{Resources: rg(5800, 4400, 4600, 5200), Upkeep: 1, Time: 10333}},
}

var gaulUnits = [TroopSlots]Unit{
	{Name: "Phalanx", Role: RoleFighter, Group: GroupInfantry, Attack: 15, DefenseInfantry: 40, DefenseCavalry: 50, Speed: 14, Capacity: 35,
		Cost:         UnitCost{Resources: rg(100, 130, 55, 30), Upkeep: 1, Time: 347},
		Requirements: []BuildingRequirement{{BuildingBarracks, 1}}},
	{Name: "Swordsman", Role: RoleFighter, Group: GroupInfantry, Attack: 65, DefenseInfantry: 35, DefenseCavalry: 20, Speed: 12, Capacity: 45,
		Cost:         UnitCost{Resources: rg(140, 150, 185, 60), Upkeep: 1, Time: 480},
		Research:     ResearchCost{Resources: rg(940, 700, 1689, 520), Time: 7200},
		Requirements: []BuildingRequirement{{BuildingAcademy, 3}, {BuildingSmithy, 1}}},
	{Name: "Pathfinder", Role: RoleScout, Group: GroupCavalry, Attack: 0, DefenseInfantry: 20, DefenseCavalry: 10, Speed: 34, Capacity: 0,
		Cost:         UnitCost{Resources: rg(170, 150, 20, 40), Upkeep: 2, Time: 75},
		Research:     ResearchCost{Resources: rg(1120, 700, 360, 400), Time: 3501},
		Requirements: []BuildingRequirement{{BuildingAcademy, 5}, {BuildingStable, 1}}},
	{Name: "TheutatesThunder", Role: RoleFighter, Group: GroupCavalry, Attack: 100, DefenseInfantry: 25, DefenseCavalry: 40, Speed: 38, Capacity: 75,
		Cost:         UnitCost{Resources: rg(350, 450, 230, 60), Upkeep: 2, Time: 827},
		Research:     ResearchCost{Resources: rg(2200, 1900, 2040, 520), Time: 11100},
		Requirements: []BuildingRequirement{{BuildingAcademy, 5}, {BuildingStable, 3}}},
	{Name: "Druidrider", Role: RoleFighter, Group: GroupCavalry, Attack: 45, DefenseInfantry: 115, DefenseCavalry: 55, Speed: 32, Capacity: 35,
		Cost:         UnitCost{Resources: rg(360, 330, 280, 120), Upkeep: 2, Time: 853},
		Research:     ResearchCost{Resources: rg(2260, 1420, 2440, 880), Time: 11400},
		Requirements: []BuildingRequirement{{BuildingAcademy, 5}, {BuildingStable, 5}}},
	{Name: "Haeduan", Role: RoleFighter, Group: GroupCavalry, Attack: 140, DefenseInfantry: 60, DefenseCavalry: 165, Speed: 26, Capacity: 65,
		Cost:         UnitCost{Resources: rg(500, 620, 675, 170), Upkeep: 3, Time: 1040},
		Research:     ResearchCost{Resources: rg(3100, 2580, 5600, 1180), Time: 13500},
		Requirements: []BuildingRequirement{{BuildingAcademy, 15}, {BuildingStable, 10}}},
	{Name: "Ram", Role: RoleRam, Group: GroupInfantry, Attack: 50, DefenseInfantry: 30, DefenseCavalry: 105, Speed: 8, Capacity: 0,
		Cost:         UnitCost{Resources: rg(950, 555, 330, 75), Upkeep: 3, Time: 1667},
		Research:     ResearchCost{Resources: rg(5800, 2320, 2840, 610), Time: 16800},
		Requirements: []BuildingRequirement{{BuildingAcademy, 10}, {BuildingWorkshop, 1}}},
	{Name: "Trebuchet", Role: RoleCatapult, Group: GroupInfantry, Attack: 70, DefenseInfantry: 45, DefenseCavalry: 10, Speed: 6, Capacity: 0,
		Cost:         UnitCost{Resources: rg(960, 1450, 630, 90), Upkeep: 6, Time: 3000},
		Research:     ResearchCost{Resources: rg(5860, 5900, 5240, 700), Time: 28800},
		Requirements: []BuildingRequirement{{BuildingAcademy, 15}, {BuildingWorkshop, 10}}},
	{Name: "Chieftain", Role: RoleChief, Group: GroupInfantry, Attack: 40, DefenseInfantry: 50, DefenseCavalry: 50, Speed: 10, Capacity: 0,
		Cost:         UnitCost{Resources: rg(15880, 22900, 25200, 22660), Upkeep: 4, Time: 30233},
		Research:     ResearchCost{Resources: rg(15880, 13800, 36400, 22660), Time: 24475},
		Requirements: []BuildingRequirement{{BuildingAcademy, 20}, {BuildingRallyPoint, 10}}},
	{Name: "Settler", Role: RoleSettler, Group: GroupInfantry, Attack: 0, DefenseInfantry: 80, DefenseCavalry: 80, Speed: 10, Capacity: 3000,
		Cost: UnitCost{Resources: rg(4400, 5600, 4200, 3900), Upkeep: 1, Time: 7567}},
}

// 纳塔部族，NPC 专用，玩家不可训练。
var natarUnits = [TroopSlots]Unit{
	{Name: "Pikeman", Role: RoleFighter, Group: GroupInfantry, Attack: 20, DefenseInfantry: 35, DefenseCavalry: 50, Speed: 12, Cost: UnitCost{Upkeep: 1}},
	{Name: "ThornedWarrior", Role: RoleFighter, Group: GroupInfantry, Attack: 65, DefenseInfantry: 30, DefenseCavalry: 10, Speed: 14, Cost: UnitCost{Upkeep: 1}},
	{Name: "Guardsman", Role: RoleFighter, Group: GroupInfantry, Attack: 100, DefenseInfantry: 90, DefenseCavalry: 75, Speed: 12, Cost: UnitCost{Upkeep: 1}},
	{Name: "BirdsOfPrey", Role: RoleScout, Group: GroupInfantry, Attack: 0, DefenseInfantry: 10, DefenseCavalry: 0, Speed: 50, Cost: UnitCost{Upkeep: 1}},
	{Name: "Axerider", Role: RoleFighter, Group: GroupCavalry, Attack: 155, DefenseInfantry: 80, DefenseCavalry: 50, Speed: 28, Cost: UnitCost{Upkeep: 2}},
	{Name: "NatarianKnight", Role: RoleFighter, Group: GroupCavalry, Attack: 170, DefenseInfantry: 140, DefenseCavalry: 80, Speed: 24, Cost: UnitCost{Upkeep: 3}},
	{Name: "Warelephant", Role: RoleRam, Group: GroupInfantry, Attack: 250, DefenseInfantry: 120, DefenseCavalry: 150, Speed: 10, Cost: UnitCost{Upkeep: 4}},
	{Name: "Ballista", Role: RoleCatapult, Group: GroupInfantry, Attack: 60, DefenseInfantry: 45, DefenseCavalry: 10, Speed: 6, Cost: UnitCost{Upkeep: 5}},
	{Name: "NatarianEmperor", Role: RoleChief, Group: GroupInfantry, Attack: 80, DefenseInfantry: 50, DefenseCavalry: 50, Speed: 10, Cost: UnitCost{Upkeep: 1}},
	{Name: "Settler", Role: RoleSettler, Group: GroupInfantry, Attack: 30, DefenseInfantry: 40, DefenseCavalry: 40, Speed: 10, Cost: UnitCost{Upkeep: 1}},
}

// 野生动物，驻守绿洲。
var natureUnits = [TroopSlots]Unit{
	{Name: "Rat", Role: RoleFighter, Group: GroupInfantry, Attack: 10, DefenseInfantry: 25, DefenseCavalry: 20, Speed: 40, Cost: UnitCost{Upkeep: 1}},
	{Name: "Spider", Role: RoleFighter, Group: GroupInfantry, Attack: 20, DefenseInfantry: 35, DefenseCavalry: 40, Speed: 40, Cost: UnitCost{Upkeep: 1}},
	{Name: "Serpent", Role: RoleFighter, Group: GroupInfantry, Attack: 60, DefenseInfantry: 40, DefenseCavalry: 60, Speed: 40, Cost: UnitCost{Upkeep: 1}},
	{Name: "Bat", Role: RoleFighter, Group: GroupInfantry, Attack: 80, DefenseInfantry: 66, DefenseCavalry: 50, Speed: 40, Cost: UnitCost{Upkeep: 1}},
	{Name: "WildBoar", Role: RoleFighter, Group: GroupInfantry, Attack: 50, DefenseInfantry: 70, DefenseCavalry: 33, Speed: 40, Cost: UnitCost{Upkeep: 2}},
	{Name: "Wolf", Role: RoleFighter, Group: GroupInfantry, Attack: 100, DefenseInfantry: 80, DefenseCavalry: 70, Speed: 40, Cost: UnitCost{Upkeep: 2}},
	{Name: "Bear", Role: RoleFighter, Group: GroupInfantry, Attack: 250, DefenseInfantry: 140, DefenseCavalry: 200, Speed: 40, Cost: UnitCost{Upkeep: 3}},
	{Name: "Crocodile", Role: RoleFighter, Group: GroupInfantry, Attack: 450, DefenseInfantry: 380, DefenseCavalry: 240, Speed: 40, Cost: UnitCost{Upkeep: 3}},
	{Name: "Tiger", Role: RoleFighter, Group: GroupInfantry, Attack: 200, DefenseInfantry: 170, DefenseCavalry: 250, Speed: 40, Cost: UnitCost{Upkeep: 3}},
	{Name: "Elephant", Role: RoleFighter, Group: GroupInfantry, Attack: 600, DefenseInfantry: 440, DefenseCavalry: 520, Speed: 40, Cost: UnitCost{Upkeep: 5}},
}

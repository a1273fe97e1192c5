package domain

import "math"

type BuildingName string

const (
	BuildingWoodcutter       BuildingName = "Woodcutter"
	BuildingClayPit          BuildingName = "ClayPit"
	BuildingIronMine         BuildingName = "IronMine"
	BuildingCropland         BuildingName = "Cropland"
	BuildingSawmill          BuildingName = "Sawmill"
	BuildingBrickyard        BuildingName = "Brickyard"
	BuildingIronFoundry      BuildingName = "IronFoundry"
	BuildingGrainMill        BuildingName = "GrainMill"
	BuildingBakery           BuildingName = "Bakery"
	BuildingMainBuilding     BuildingName = "MainBuilding"
	BuildingWarehouse        BuildingName = "Warehouse"
	BuildingGranary          BuildingName = "Granary"
	BuildingGreatWarehouse   BuildingName = "GreatWarehouse"
	BuildingGreatGranary     BuildingName = "GreatGranary"
	BuildingBarracks         BuildingName = "Barracks"
	BuildingStable           BuildingName = "Stable"
	BuildingWorkshop         BuildingName = "Workshop"
	BuildingAcademy          BuildingName = "Academy"
	BuildingSmithy           BuildingName = "Smithy"
	BuildingRallyPoint       BuildingName = "RallyPoint"
	BuildingMarketplace      BuildingName = "Marketplace"
	BuildingResidence        BuildingName = "Residence"
	BuildingPalace           BuildingName = "Palace"
	BuildingCranny           BuildingName = "Cranny"
	BuildingTownHall         BuildingName = "TownHall"
	BuildingEmbassy          BuildingName = "Embassy"
	BuildingCityWall         BuildingName = "CityWall"
	BuildingEarthWall        BuildingName = "EarthWall"
	BuildingPalisade         BuildingName = "Palisade"
	BuildingStonemasonsLodge BuildingName = "StonemasonsLodge"
)

type BuildingGroup string

const (
	GroupResources      BuildingGroup = "resources"
	GroupInfrastructure BuildingGroup = "infrastructure"
	GroupMilitary       BuildingGroup = "military"
	GroupWall           BuildingGroup = "wall"
)

// Building 村庄内某个槽位上的建筑实例。Value 的含义取决于建筑种类：
// 资源田为每小时产量，仓库为容量，训练类建筑为训练耗时千分比。
type Building struct {
	Name          BuildingName `json:"name"`
	Group         BuildingGroup `json:"group"`
	Level         uint8        `json:"level"`
	Value         uint64       `json:"value"`
	Population    uint32       `json:"population"`
	CulturePoints uint32       `json:"culture_points"`
}

// buildingSpec 建筑静态属性。成本与耗时按等级以固定曲线增长。
type buildingSpec struct {
	Name       BuildingName
	Group      BuildingGroup
	MaxLevel   uint8
	BaseCost   ResourceGroup
	BasePop    uint32
	BaseCP     uint32
	BaseValue  uint64
	ValueCurve float64
	BaseTime   uint32

	Requirements  []BuildingRequirement
	Conflicts     []BuildingName
	Tribes        []Tribe
	OnlyCapital   bool
	NonCapital    bool
	AllowMultiple bool
}

const (
	costCurve = 1.28
	timeCurve = 1.16
)

// 资源田逐级产量与仓库逐级容量，0 级为初始值。
var productionLadder = []uint64{2, 5, 9, 15, 22, 33, 50, 70, 100, 145, 200, 280, 375, 495, 635, 800, 1000, 1300, 1600, 2000, 2450}

var storageLadder = []uint64{800, 1200, 1700, 2300, 3100, 4000, 5000, 6300, 7800, 9600, 11800, 14400, 17600, 21400, 25900, 31300, 37900, 45700, 55100, 66400, 80000}

var buildingCatalog = map[BuildingName]buildingSpec{
	BuildingWoodcutter: {Name: BuildingWoodcutter, Group: GroupResources, MaxLevel: 20, BaseCost: rg(40, 100, 50, 60), BasePop: 2, BaseCP: 1, BaseTime: 260},
	BuildingClayPit:    {Name: BuildingClayPit, Group: GroupResources, MaxLevel: 20, BaseCost: rg(80, 40, 80, 50), BasePop: 2, BaseCP: 1, BaseTime: 220},
	BuildingIronMine:   {Name: BuildingIronMine, Group: GroupResources, MaxLevel: 20, BaseCost: rg(100, 80, 30, 60), BasePop: 3, BaseCP: 1, BaseTime: 450},
	BuildingCropland:   {Name: BuildingCropland, Group: GroupResources, MaxLevel: 20, BaseCost: rg(70, 90, 70, 20), BasePop: 0, BaseCP: 1, BaseTime: 150},

	BuildingSawmill: {Name: BuildingSawmill, Group: GroupInfrastructure, MaxLevel: 5, BaseCost: rg(520, 380, 290, 90), BasePop: 4, BaseCP: 1, BaseValue: 5, ValueCurve: 1.0, BaseTime: 3000,
		Requirements: []BuildingRequirement{{BuildingWoodcutter, 10}, {BuildingMainBuilding, 5}}},
	BuildingBrickyard: {Name: BuildingBrickyard, Group: GroupInfrastructure, MaxLevel: 5, BaseCost: rg(440, 480, 320, 50), BasePop: 3, BaseCP: 1, BaseValue: 5, ValueCurve: 1.0, BaseTime: 2240,
		Requirements: []BuildingRequirement{{BuildingClayPit, 10}, {BuildingMainBuilding, 5}}},
	BuildingIronFoundry: {Name: BuildingIronFoundry, Group: GroupInfrastructure, MaxLevel: 5, BaseCost: rg(200, 450, 510, 120), BasePop: 6, BaseCP: 1, BaseValue: 5, ValueCurve: 1.0, BaseTime: 4080,
		Requirements: []BuildingRequirement{{BuildingIronMine, 10}, {BuildingMainBuilding, 5}}},
	BuildingGrainMill: {Name: BuildingGrainMill, Group: GroupInfrastructure, MaxLevel: 5, BaseCost: rg(500, 440, 380, 1240), BasePop: 3, BaseCP: 1, BaseValue: 5, ValueCurve: 1.0, BaseTime: 1840,
		Requirements: []BuildingRequirement{{BuildingCropland, 5}}},
	BuildingBakery: {Name: BuildingBakery, Group: GroupInfrastructure, MaxLevel: 5, BaseCost: rg(1200, 1480, 870, 1600), BasePop: 4, BaseCP: 1, BaseValue: 5, ValueCurve: 1.0, BaseTime: 4800,
		Requirements: []BuildingRequirement{{BuildingCropland, 10}, {BuildingMainBuilding, 5}, {BuildingGrainMill, 5}}},

	BuildingMainBuilding: {Name: BuildingMainBuilding, Group: GroupInfrastructure, MaxLevel: 20, BaseCost: rg(70, 40, 60, 20), BasePop: 2, BaseCP: 2, BaseValue: 1000, ValueCurve: 0.964, BaseTime: 2620},
	BuildingWarehouse: {Name: BuildingWarehouse, Group: GroupInfrastructure, MaxLevel: 20, BaseCost: rg(130, 160, 90, 40), BasePop: 1, BaseCP: 1, BaseTime: 2000,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 1}}, AllowMultiple: true},
	BuildingGranary: {Name: BuildingGranary, Group: GroupInfrastructure, MaxLevel: 20, BaseCost: rg(80, 100, 70, 20), BasePop: 1, BaseCP: 1, BaseTime: 1600,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 1}}, AllowMultiple: true},
	BuildingGreatWarehouse: {Name: BuildingGreatWarehouse, Group: GroupInfrastructure, MaxLevel: 20, BaseCost: rg(400, 500, 350, 100), BasePop: 1, BaseCP: 1, BaseTime: 5400,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 10}}, OnlyCapital: true, AllowMultiple: true},
	BuildingGreatGranary: {Name: BuildingGreatGranary, Group: GroupInfrastructure, MaxLevel: 20, BaseCost: rg(400, 500, 350, 100), BasePop: 1, BaseCP: 1, BaseTime: 4800,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 10}}, OnlyCapital: true, AllowMultiple: true},

	BuildingBarracks: {Name: BuildingBarracks, Group: GroupMilitary, MaxLevel: 20, BaseCost: rg(210, 140, 260, 120), BasePop: 4, BaseCP: 1, BaseValue: 100, ValueCurve: 0.964, BaseTime: 2000,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 3}, {BuildingRallyPoint, 1}}},
	BuildingStable: {Name: BuildingStable, Group: GroupMilitary, MaxLevel: 20, BaseCost: rg(260, 140, 220, 100), BasePop: 5, BaseCP: 2, BaseValue: 100, ValueCurve: 0.964, BaseTime: 2200,
		Requirements: []BuildingRequirement{{BuildingSmithy, 3}, {BuildingAcademy, 5}}},
	BuildingWorkshop: {Name: BuildingWorkshop, Group: GroupMilitary, MaxLevel: 20, BaseCost: rg(460, 510, 600, 320), BasePop: 3, BaseCP: 4, BaseValue: 100, ValueCurve: 0.964, BaseTime: 3000,
		Requirements: []BuildingRequirement{{BuildingAcademy, 10}, {BuildingMainBuilding, 5}}},
	BuildingAcademy: {Name: BuildingAcademy, Group: GroupMilitary, MaxLevel: 20, BaseCost: rg(220, 160, 90, 40), BasePop: 4, BaseCP: 5, BaseValue: 1, ValueCurve: 1.0, BaseTime: 2000,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 3}, {BuildingBarracks, 3}}},
	BuildingSmithy: {Name: BuildingSmithy, Group: GroupMilitary, MaxLevel: 20, BaseCost: rg(180, 250, 500, 160), BasePop: 4, BaseCP: 2, BaseValue: 101, ValueCurve: 0.964, BaseTime: 2000,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 3}, {BuildingAcademy, 1}}},
	BuildingRallyPoint: {Name: BuildingRallyPoint, Group: GroupMilitary, MaxLevel: 20, BaseCost: rg(70, 40, 60, 20), BasePop: 2, BaseCP: 2, BaseTime: 2620},

	BuildingMarketplace: {Name: BuildingMarketplace, Group: GroupInfrastructure, MaxLevel: 20, BaseCost: rg(80, 70, 120, 70), BasePop: 4, BaseCP: 4, BaseValue: 1, ValueCurve: 1.0, BaseTime: 1800,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 3}, {BuildingWarehouse, 1}, {BuildingGranary, 1}}},
	BuildingResidence: {Name: BuildingResidence, Group: GroupInfrastructure, MaxLevel: 20, BaseCost: rg(580, 460, 350, 180), BasePop: 1, BaseCP: 2, BaseValue: 100, ValueCurve: 1.0, BaseTime: 2000,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 5}}, Conflicts: []BuildingName{BuildingPalace}, NonCapital: false},
	BuildingPalace: {Name: BuildingPalace, Group: GroupInfrastructure, MaxLevel: 20, BaseCost: rg(550, 800, 750, 250), BasePop: 1, BaseCP: 6, BaseValue: 100, ValueCurve: 1.0, BaseTime: 5000,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 5}, {BuildingEmbassy, 1}}, Conflicts: []BuildingName{BuildingResidence}},
	BuildingCranny: {Name: BuildingCranny, Group: GroupInfrastructure, MaxLevel: 10, BaseCost: rg(40, 50, 30, 10), BasePop: 0, BaseCP: 1, BaseValue: 100, ValueCurve: 1.33, BaseTime: 750, AllowMultiple: true},
	BuildingTownHall: {Name: BuildingTownHall, Group: GroupInfrastructure, MaxLevel: 20, BaseCost: rg(1250, 1110, 1260, 600), BasePop: 4, BaseCP: 6, BaseValue: 100, ValueCurve: 0.964, BaseTime: 12500,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 10}, {BuildingAcademy, 10}}},
	BuildingEmbassy: {Name: BuildingEmbassy, Group: GroupInfrastructure, MaxLevel: 20, BaseCost: rg(180, 130, 150, 80), BasePop: 3, BaseCP: 5, BaseTime: 2000,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 1}}},
	BuildingStonemasonsLodge: {Name: BuildingStonemasonsLodge, Group: GroupInfrastructure, MaxLevel: 20, BaseCost: rg(155, 130, 125, 70), BasePop: 2, BaseCP: 1, BaseValue: 110, ValueCurve: 1.0, BaseTime: 2200,
		Requirements: []BuildingRequirement{{BuildingMainBuilding, 5}}, OnlyCapital: true},

	BuildingCityWall: {Name: BuildingCityWall, Group: GroupWall, MaxLevel: 20, BaseCost: rg(70, 90, 170, 70), BasePop: 0, BaseCP: 1, BaseValue: 3, ValueCurve: 1.0, BaseTime: 2000,
		Tribes: []Tribe{TribeRoman}},
	BuildingEarthWall: {Name: BuildingEarthWall, Group: GroupWall, MaxLevel: 20, BaseCost: rg(120, 200, 0, 80), BasePop: 0, BaseCP: 1, BaseValue: 2, ValueCurve: 1.0, BaseTime: 2000,
		Tribes: []Tribe{TribeTeuton}},
	BuildingPalisade: {Name: BuildingPalisade, Group: GroupWall, MaxLevel: 20, BaseCost: rg(160, 100, 80, 60), BasePop: 0, BaseCP: 1, BaseValue: 2, ValueCurve: 1.0, BaseTime: 2000,
		Tribes: []Tribe{TribeGaul}},
}

// GetBuilding 按名字和等级实例化建筑。
func GetBuilding(name BuildingName, level uint8) (Building, error) {
	spec, ok := buildingCatalog[name]
	if !ok {
		return Building{}, ErrUnknownBuilding
	}
	if level > spec.MaxLevel {
		return Building{}, ErrBuildingMaxLevel
	}
	return Building{
		Name:          name,
		Group:         spec.Group,
		Level:         level,
		Value:         spec.valueAt(level),
		Population:    spec.populationAt(level),
		CulturePoints: spec.culturePointsAt(level),
	}, nil
}

// AtLevel 返回同一建筑在指定等级的实例。等级不得超过上限。
func (b Building) AtLevel(level uint8) (Building, error) {
	return GetBuilding(b.Name, level)
}

func (b Building) MaxLevel() uint8 {
	return buildingCatalog[b.Name].MaxLevel
}

// NextLevelCost 升到下一级的资源成本。已达上限时报错。
func (b Building) NextLevelCost() (ResourceGroup, error) {
	spec := buildingCatalog[b.Name]
	if b.Level >= spec.MaxLevel {
		return ResourceGroup{}, ErrBuildingMaxLevel
	}
	return spec.costAt(b.Level + 1), nil
}

// BuildTimeSecs 升到下一级的施工秒数。主楼等级越高越快，主楼自身不受影响。
func (b Building) BuildTimeSecs(mainBuildingLevel uint8, serverSpeed uint8) uint32 {
	spec := buildingCatalog[b.Name]
	base := float64(spec.BaseTime) * math.Pow(timeCurve, float64(b.Level))
	factor := 1.0
	if b.Name != BuildingMainBuilding && mainBuildingLevel > 0 {
		mb := buildingCatalog[BuildingMainBuilding]
		factor = float64(mb.valueAt(mainBuildingLevel)) / 1000.0
	}
	secs := uint32(base * factor / float64(serverSpeed))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// EffectiveValue 产量和仓储受服务器倍速放大，其余取原值。
func (b Building) EffectiveValue(serverSpeed uint8) uint64 {
	switch b.Name {
	case BuildingWoodcutter, BuildingClayPit, BuildingIronMine, BuildingCropland:
		return b.Value * uint64(serverSpeed)
	default:
		return b.Value
	}
}

func (s buildingSpec) valueAt(level uint8) uint64 {
	switch {
	case s.Group == GroupResources:
		return ladderAt(productionLadder, level)
	case s.Name == BuildingWarehouse || s.Name == BuildingGranary ||
		s.Name == BuildingGreatWarehouse || s.Name == BuildingGreatGranary:
		return ladderAt(storageLadder, level)
	default:
		if level == 0 || s.BaseValue == 0 {
			return 0
		}
		curve := s.ValueCurve
		if curve == 0 {
			curve = 1.0
		}
		return uint64(math.Round(float64(s.BaseValue) * math.Pow(curve, float64(level-1))))
	}
}

func ladderAt(ladder []uint64, level uint8) uint64 {
	if int(level) >= len(ladder) {
		return ladder[len(ladder)-1]
	}
	return ladder[level]
}

func (s buildingSpec) costAt(level uint8) ResourceGroup {
	if level <= 1 {
		return s.BaseCost
	}
	f := math.Pow(costCurve, float64(level-1))
	return ResourceGroup{
		Lumber: roundTo5(float64(s.BaseCost.Lumber) * f),
		Clay:   roundTo5(float64(s.BaseCost.Clay) * f),
		Iron:   roundTo5(float64(s.BaseCost.Iron) * f),
		Crop:   roundTo5(float64(s.BaseCost.Crop) * f),
	}
}

func roundTo5(v float64) uint64 {
	return uint64(math.Round(v/5) * 5)
}

// populationAt 建到指定等级累计占用的人口。
func (s buildingSpec) populationAt(level uint8) uint32 {
	if level == 0 {
		return 0
	}
	return s.BasePop + uint32(level-1)
}

func (s buildingSpec) culturePointsAt(level uint8) uint32 {
	var total float64
	for l := uint8(1); l <= level; l++ {
		total += float64(s.BaseCP) * math.Pow(1.2, float64(l-1))
	}
	return uint32(math.Round(total))
}

// ValidateBuild 建造规则校验：部族限制、前置建筑、互斥建筑、首都约束与重复建造。
func ValidateBuild(name BuildingName, v *Village) error {
	spec, ok := buildingCatalog[name]
	if !ok {
		return ErrUnknownBuilding
	}

	if len(spec.Tribes) > 0 {
		allowed := false
		for _, t := range spec.Tribes {
			if t == v.Tribe {
				allowed = true
				break
			}
		}
		if !allowed {
			return &BuildingRequirementError{Building: name, Level: 1}
		}
	}

	if spec.OnlyCapital && !v.IsCapital {
		return &BuildingRequirementError{Building: name, Level: 1}
	}
	if spec.NonCapital && v.IsCapital {
		return &BuildingRequirementError{Building: name, Level: 1}
	}

	for _, req := range spec.Requirements {
		if v.BuildingLevel(req.Building) < req.Level {
			return &BuildingRequirementError{Building: req.Building, Level: req.Level}
		}
	}

	for _, conflict := range spec.Conflicts {
		if v.BuildingLevel(conflict) > 0 {
			return &BuildingRequirementError{Building: name, Level: 1}
		}
	}

	if existing := v.highestLevelOf(name); existing > 0 {
		if !spec.AllowMultiple {
			return &SlotOccupiedError{SlotID: 0}
		}
		// 允许重复的建筑须先把已有一座建满
		if existing < spec.MaxLevel {
			return &BuildingRequirementError{Building: name, Level: spec.MaxLevel}
		}
	}

	return nil
}

package domain

import "math"

// Army 一支军队。VillageID 是所属村庄，CurrentMapFieldID 是当前驻扎格子，
// 行军途中为 nil。
type Army struct {
	ID                int64          `json:"id"`
	PlayerID          int64          `json:"player_id"`
	VillageID         int64          `json:"village_id"`
	Tribe             Tribe          `json:"tribe"`
	Units             TroopSet       `json:"units"`
	Smithy            SmithyUpgrades `json:"smithy"`
	CurrentMapFieldID *int64         `json:"current_map_field_id,omitempty"`
	Hero              *Hero          `json:"hero,omitempty"`
}

// NewVillageArmy 村庄的空驻军，驻扎在村庄自身的格子上。
func NewVillageArmy(v *Village) *Army {
	fieldID := v.ID
	return &Army{
		PlayerID:          v.PlayerID,
		VillageID:         v.ID,
		Tribe:             v.Tribe,
		Smithy:            v.Smithy,
		CurrentMapFieldID: &fieldID,
	}
}

// Immensity 军队规模：单位总数，带英雄再加一。
func (a *Army) Immensity() uint32 {
	n := a.Units.Total()
	if a.Hero != nil {
		n++
	}
	return n
}

// Deploy 从本军分出一支新军队。槽位数量不足时报错且不产生任何改动。
// withHero 为真时英雄随新军出征，本军不再持有英雄。
func (a *Army) Deploy(units TroopSet, withHero bool) (*Army, error) {
	remaining, err := a.Units.Sub(units)
	if err != nil {
		return nil, err
	}
	a.Units = remaining

	deployed := &Army{
		PlayerID:  a.PlayerID,
		VillageID: a.VillageID,
		Tribe:     a.Tribe,
		Units:     units,
		Smithy:    a.Smithy,
	}
	if withHero {
		deployed.Hero = a.Hero
		a.Hero = nil
	}
	return deployed, nil
}

// Speed 全军行军速度，取最慢的非空槽位。空军队速度为 0。
func (a *Army) Speed() uint8 {
	units := a.Tribe.Units()
	var speed uint8
	for i, n := range a.Units {
		if n == 0 {
			continue
		}
		if speed == 0 || units[i].Speed < speed {
			speed = units[i].Speed
		}
	}
	return speed
}

// Merge 并入另一支同部族军队。带英雄的一方保留英雄。
func (a *Army) Merge(o *Army) error {
	if a.Tribe != o.Tribe {
		return ErrTribeMismatch
	}
	a.Units = a.Units.Add(o.Units)
	if a.Hero == nil && o.Hero != nil {
		a.Hero = o.Hero
	}
	return nil
}

// IsOnlyScouts 仅含侦察兵。侦察兵槽位按兵种职能判定，各部族不同。
func (a *Army) IsOnlyScouts() bool {
	units := a.Tribe.Units()
	any := false
	for i, n := range a.Units {
		if n == 0 {
			continue
		}
		if units[i].Role != RoleScout {
			return false
		}
		any = true
	}
	return any
}

func (a *Army) HasCatapults() bool {
	return a.Units[CatapultSlot] > 0
}

func (a *Army) HasRams() bool {
	return a.Units[RamSlot] > 0
}

// Upkeep 每小时粮食消耗。
func (a *Army) Upkeep() uint64 {
	units := a.Tribe.Units()
	var total uint64
	for i, n := range a.Units {
		total += uint64(n) * uint64(units[i].Cost.Upkeep)
	}
	return total
}

// BountyCapacity 全军总运载量。
func (a *Army) BountyCapacity() uint64 {
	units := a.Tribe.Units()
	var total uint64
	for i, n := range a.Units {
		total += uint64(n) * uint64(units[i].Capacity)
	}
	return total
}

// smithyValue 铁匠铺强化后的战斗数值。
func smithyValue(base uint32, upkeep uint32, level uint8) float64 {
	if level == 0 || base == 0 {
		return float64(base)
	}
	return float64(base) + (float64(base)+300*float64(upkeep))/7*(math.Pow(1.007, float64(level))-1)
}

// AttackPoints 进攻点数，按步兵与骑兵分组。酋长与移民不参战。
func (a *Army) AttackPoints() (infantry, cavalry uint64) {
	units := a.Tribe.Units()
	for i, n := range a.Units {
		if n == 0 {
			continue
		}
		u := units[i]
		if u.Role == RoleChief || u.Role == RoleSettler {
			continue
		}
		v := uint64(math.Floor(smithyValue(u.Attack, u.Cost.Upkeep, a.Smithy[i]))) * uint64(n)
		if u.Group == GroupCavalry {
			cavalry += v
		} else {
			infantry += v
		}
	}
	return infantry, cavalry
}

// DefensePoints 防御点数，按对步兵与对骑兵分列。
func (a *Army) DefensePoints() (vsInfantry, vsCavalry uint64) {
	units := a.Tribe.Units()
	for i, n := range a.Units {
		if n == 0 {
			continue
		}
		u := units[i]
		vsInfantry += uint64(math.Floor(smithyValue(u.DefenseInfantry, u.Cost.Upkeep, a.Smithy[i]))) * uint64(n)
		vsCavalry += uint64(math.Floor(smithyValue(u.DefenseCavalry, u.Cost.Upkeep, a.Smithy[i]))) * uint64(n)
	}
	return vsInfantry, vsCavalry
}

// 侦察单位每个的基础侦察/反侦察点数。
const (
	scoutAttackBase  = 35
	scoutDefenseBase = 20
)

// ScoutingAttackPoints 侦察点数，仅侦察兵参与。
func (a *Army) ScoutingAttackPoints() uint64 {
	return a.scoutingPoints(scoutAttackBase)
}

// ScoutingDefensePoints 反侦察点数。
func (a *Army) ScoutingDefensePoints() uint64 {
	return a.scoutingPoints(scoutDefenseBase)
}

func (a *Army) scoutingPoints(base uint32) uint64 {
	units := a.Tribe.Units()
	var total uint64
	for i, n := range a.Units {
		if n == 0 || units[i].Role != RoleScout {
			continue
		}
		u := units[i]
		total += uint64(math.Floor(smithyValue(base, u.Cost.Upkeep, a.Smithy[i]))) * uint64(n)
	}
	return total
}

// HasScouts 是否含侦察兵。
func (a *Army) HasScouts() bool {
	units := a.Tribe.Units()
	for i, n := range a.Units {
		if n > 0 && units[i].Role == RoleScout {
			return true
		}
	}
	return false
}

// AddUnitByName 按兵种名字增加单位。
func (a *Army) AddUnitByName(name UnitName, quantity uint32) error {
	idx, err := a.Tribe.UnitIdxByName(name)
	if err != nil {
		return err
	}
	a.Units[idx] += quantity
	return nil
}

// UpdateUnits 用战后幸存数覆盖当前单位数。
func (a *Army) UpdateUnits(survivors TroopSet) {
	a.Units = survivors
}

// ApplySurvivalRatio 按存活率折算各槽位，四舍五入。返回阵亡数。
func (a *Army) ApplySurvivalRatio(ratio float64) TroopSet {
	var losses TroopSet
	for i, n := range a.Units {
		surviving := uint32(math.Round(float64(n) * ratio))
		if surviving > n {
			surviving = n
		}
		losses[i] = n - surviving
		a.Units[i] = surviving
	}
	return losses
}

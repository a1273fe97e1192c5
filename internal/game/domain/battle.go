package domain

import "math"

// AttackType 进攻方式。掠夺战双方按比例分摊伤亡，歼灭战败方全灭。
type AttackType string

const (
	AttackRaid   AttackType = "raid"
	AttackNormal AttackType = "normal"
)

// BattleParty 战报中一方军队的快照。
type BattleParty struct {
	ArmyID    int64    `json:"army_id"`
	PlayerID  int64    `json:"player_id"`
	Tribe     Tribe    `json:"tribe"`
	Before    TroopSet `json:"before"`
	Survivors TroopSet `json:"survivors"`
	Losses    TroopSet `json:"losses"`
}

// BuildingDamage 攻城器械造成的建筑降级记录。
type BuildingDamage struct {
	Name        BuildingName `json:"name"`
	LevelBefore uint8        `json:"level_before"`
	LevelAfter  uint8        `json:"level_after"`
}

// ScoutingIntel 侦察成功后带回的情报。
type ScoutingIntel struct {
	Resources ResourceGroup `json:"resources"`
	Troops    TroopSet      `json:"troops"`
	WallLevel uint8         `json:"wall_level"`
}

// BattleReport 一场战斗的完整结果。
type BattleReport struct {
	AttackType     AttackType      `json:"attack_type"`
	AttackerWon    bool            `json:"attacker_won"`
	Attacker       BattleParty     `json:"attacker"`
	Defender       *BattleParty    `json:"defender,omitempty"`
	Reinforcements []BattleParty   `json:"reinforcements,omitempty"`
	Bounty         *ResourceGroup  `json:"bounty,omitempty"`
	WallDamage     *BuildingDamage `json:"wall_damage,omitempty"`
	CatapultDamage []BuildingDamage `json:"catapult_damage,omitempty"`
	LoyaltyAfter   uint8           `json:"loyalty_after"`
	Scouting       *ScoutingIntel  `json:"scouting,omitempty"`
	WasDetected    bool            `json:"was_detected"`
}

// 伤亡指数的上下限。参战人数超过一千时指数随规模下降。
const (
	mFactorDefault = 1.5
	mFactorFloor   = 1.2578
)

func mFactor(totalUnits uint32) float64 {
	if totalUnits < 1000 {
		return mFactorDefault
	}
	m := 2 * (1.8592 - math.Pow(float64(totalUnits), 0.015))
	if m < mFactorFloor {
		return mFactorFloor
	}
	if m > mFactorDefault {
		return mFactorDefault
	}
	return m
}

// CalculateBattle 主战结算。attacker 为来袭军队，defender 为目标村庄
// 及其全部驻军与援军。catapultTargets 为进攻方指定的轰击目标，
// 为空或无法命中时自动选取高等级建筑。
func CalculateBattle(attackType AttackType, attacker *Army, defender *Village, catapultTargets []BuildingName) *BattleReport {
	report := &BattleReport{
		AttackType: attackType,
		Attacker: BattleParty{
			ArmyID:   attacker.ID,
			PlayerID: attacker.PlayerID,
			Tribe:    attacker.Tribe,
			Before:   attacker.Units,
		},
		LoyaltyAfter: defender.Loyalty,
	}

	atkInf, atkCav := attacker.AttackPoints()
	totalAttack := float64(atkInf + atkCav)
	if attacker.Hero != nil {
		totalAttack += float64(attacker.Hero.FightingStrength())
		totalAttack *= 1 + attacker.Hero.OffBonusPct()/100
	}

	// 防御方合计：驻军、援军、英雄、行宫与城墙
	defInf, defCav := defenderDefensePoints(defender)
	infRatio, cavRatio := 0.5, 0.5
	if atkInf+atkCav > 0 {
		infRatio = float64(atkInf) / float64(atkInf+atkCav)
		cavRatio = float64(atkCav) / float64(atkInf+atkCav)
	}
	totalDefense := defInf*infRatio + defCav*cavRatio

	residence := float64(defender.PalaceOrResidence())
	totalDefense += 2 * residence * residence
	totalDefense *= math.Pow(defender.Tribe.WallFactor(), float64(defender.WallLevel()))
	totalDefense += 10

	// 士气修正：以大打小时进攻方效率下降，乘数下限 0.667
	morale := 1.0
	atkPop := attacker.Immensity()
	defPop := defender.Population
	if defPop > 0 && atkPop > defPop {
		morale = math.Max(0.667, math.Pow(float64(defPop)/float64(atkPop), 0.2))
	}
	effectiveAttack := totalAttack * morale
	if effectiveAttack < 1 {
		effectiveAttack = 1
	}

	totalUnits := attacker.Units.Total() + defenderTotalUnits(defender)
	m := mFactor(totalUnits)

	attackerWon := effectiveAttack > totalDefense
	report.AttackerWon = attackerWon

	var atkLossRatio, defLossRatio float64
	if attackerWon {
		x := math.Pow(totalDefense/effectiveAttack, m)
		if attackType == AttackRaid {
			atkLossRatio = x / (1 + x)
			defLossRatio = 1 / (1 + x)
		} else {
			atkLossRatio = x
			defLossRatio = 1
		}
	} else {
		x := math.Pow(effectiveAttack/totalDefense, m)
		if attackType == AttackRaid {
			defLossRatio = x / (1 + x)
			atkLossRatio = 1 / (1 + x)
		} else {
			defLossRatio = x
			atkLossRatio = 1
		}
	}

	report.Attacker.Survivors, report.Attacker.Losses = applyLossRatio(attacker.Units, atkLossRatio)

	if defender.Army != nil {
		before := defender.Army.Units
		surv, losses := applyLossRatio(before, defLossRatio)
		report.Defender = &BattleParty{
			ArmyID:    defender.Army.ID,
			PlayerID:  defender.Army.PlayerID,
			Tribe:     defender.Army.Tribe,
			Before:    before,
			Survivors: surv,
			Losses:    losses,
		}
	}
	for _, r := range defender.Reinforcements {
		surv, losses := applyLossRatio(r.Units, defLossRatio)
		report.Reinforcements = append(report.Reinforcements, BattleParty{
			ArmyID:    r.ID,
			PlayerID:  r.PlayerID,
			Tribe:     r.Tribe,
			Before:    r.Units,
			Survivors: surv,
			Losses:    losses,
		})
	}

	applyHeroDamage(attacker, defender, attackerWon, atkLossRatio, defLossRatio)

	// 攻城器械按幸存数量结算
	if attackerWon || attackType == AttackNormal {
		resolveMachines(report, attacker, defender, effectiveAttack, totalDefense, catapultTargets)
	}

	if attackerWon {
		resolveBounty(report, attacker, defender)
		resolveLoyalty(report, attackType, attacker)
	}

	return report
}

func defenderDefensePoints(v *Village) (inf, cav float64) {
	add := func(a *Army) {
		i, c := a.DefensePoints()
		fi, fc := float64(i), float64(c)
		if a.Hero != nil {
			fi += float64(a.Hero.DefenseStrength())
			fc += float64(a.Hero.DefenseStrength())
			factor := 1 + a.Hero.DefBonusPct()/100
			fi *= factor
			fc *= factor
		}
		inf += fi
		cav += fc
	}
	if v.Army != nil {
		add(v.Army)
	}
	for _, r := range v.Reinforcements {
		add(r)
	}
	return inf, cav
}

func defenderTotalUnits(v *Village) uint32 {
	var n uint32
	if v.Army != nil {
		n += v.Army.Units.Total()
	}
	for _, r := range v.Reinforcements {
		n += r.Units.Total()
	}
	return n
}

func applyLossRatio(units TroopSet, lossRatio float64) (survivors, losses TroopSet) {
	for i, n := range units {
		dead := uint32(math.Round(float64(n) * lossRatio))
		if dead > n {
			dead = n
		}
		losses[i] = dead
		survivors[i] = n - dead
	}
	return survivors, losses
}

// applyHeroDamage 英雄按所属一方的伤亡率受伤，胜方英雄获得经验。
func applyHeroDamage(attacker *Army, defender *Village, attackerWon bool, atkLoss, defLoss float64) {
	if attacker.Hero != nil {
		attacker.Hero.TakeDamage(uint16(atkLoss * 100))
		if attackerWon {
			attacker.Hero.GainExperience(uint64(defLoss * 100))
		}
	}
	heroOf := func(a *Army) *Hero {
		if a == nil {
			return nil
		}
		return a.Hero
	}
	if h := heroOf(defender.Army); h != nil {
		h.TakeDamage(uint16(defLoss * 100))
		if !attackerWon {
			h.GainExperience(uint64(atkLoss * 100))
		}
	}
}

// sigma 攻防比对器械效率的压缩函数。
func sigma(x float64) float64 {
	if x > 1 {
		return (2 - math.Pow(x, -1.5)) / 2
	}
	return math.Pow(x, 1.5) / 2
}

func machineUpgradeFactor(level uint8) float64 {
	return math.Pow(1.0205, float64(level))
}

// machineDamage 单个目标承受的器械破坏点数。
func machineDamage(quantity uint32, smithyLevel uint8, adRatio, durability, morale float64) float64 {
	if quantity == 0 {
		return 0
	}
	effective := math.Floor(float64(quantity) / durability)
	return 4 * sigma(adRatio) * effective * machineUpgradeFactor(smithyLevel) / morale
}

// demolishLevels 破坏点数换算成掉级数。点数不足半点时建筑无损。
func demolishLevels(level uint8, damage float64) uint8 {
	damage -= 0.5
	if damage < 0 {
		return level
	}
	for damage >= float64(level) && level > 0 {
		damage -= float64(level)
		level--
	}
	return level
}

func resolveMachines(report *BattleReport, attacker *Army, defender *Village, atk, def float64, catapultTargets []BuildingName) {
	adRatio := atk / math.Max(def, 1)
	durability := defender.BuildingsDurability()

	catMorale := 1.0
	if defender.Population > 0 {
		catMorale = math.Pow(float64(attacker.Immensity())/float64(defender.Population), 0.3)
		if catMorale < 1 {
			catMorale = 1
		}
		if catMorale > 3 {
			catMorale = 3
		}
	}

	rams := report.Attacker.Survivors[RamSlot]
	if rams > 0 && defender.WallLevel() > 0 {
		dmg := machineDamage(rams, attacker.Smithy[RamSlot], adRatio, durability, 1.0)
		before := defender.WallLevel()
		after := demolishLevels(before, dmg)
		if after != before {
			wall, _ := defender.Tribe.WallBuilding()
			report.WallDamage = &BuildingDamage{Name: wall, LevelBefore: before, LevelAfter: after}
		}
	}

	report.CatapultDamage = nil
	catapults := report.Attacker.Survivors[CatapultSlot]
	if catapults > 0 {
		// 目标最多两个，投石车均分
		targets := resolveCatapultTargets(defender, catapultTargets)
		if len(targets) == 0 {
			targets = pickCatapultTargets(defender)
		}
		n := len(targets)
		if n == 0 {
			n = 1
		}
		perTarget := catapults / uint32(n)
		for _, t := range targets {
			dmg := machineDamage(perTarget, attacker.Smithy[CatapultSlot], adRatio, durability, catMorale)
			after := demolishLevels(t.Building.Level, dmg)
			if after != t.Building.Level {
				report.CatapultDamage = append(report.CatapultDamage, BuildingDamage{
					Name:        t.Building.Name,
					LevelBefore: t.Building.Level,
					LevelAfter:  after,
				})
			}
		}
	}
}

// resolveCatapultTargets 按名字定位指定目标，找不到的忽略。
func resolveCatapultTargets(v *Village, names []BuildingName) []*VillageBuilding {
	var out []*VillageBuilding
	for _, name := range names {
		if name == "" {
			continue
		}
		for i := range v.Buildings {
			if v.Buildings[i].Building.Name == name && v.Buildings[i].Building.Level > 0 {
				out = append(out, &v.Buildings[i])
				break
			}
		}
		if len(out) == 2 {
			break
		}
	}
	return out
}

// pickCatapultTargets 默认目标：等级最高的两座建筑。
func pickCatapultTargets(v *Village) []*VillageBuilding {
	var first, second *VillageBuilding
	for i := range v.Buildings {
		b := &v.Buildings[i]
		if b.Building.Level == 0 {
			continue
		}
		switch {
		case first == nil || b.Building.Level > first.Building.Level:
			second = first
			first = b
		case second == nil || b.Building.Level > second.Building.Level:
			second = b
		}
	}
	var out []*VillageBuilding
	if first != nil {
		out = append(out, first)
	}
	if second != nil {
		out = append(out, second)
	}
	return out
}

// resolveBounty 胜方按幸存运载量掠夺，按库存比例分摊到四种资源。
func resolveBounty(report *BattleReport, attacker *Army, defender *Village) {
	survivorArmy := &Army{Tribe: attacker.Tribe, Units: report.Attacker.Survivors}
	carry := survivorArmy.BountyCapacity()
	if carry == 0 {
		return
	}

	lootable := defender.LootableResources()
	total := lootable.Total()
	if total == 0 {
		return
	}
	if carry > total {
		carry = total
	}

	f := float64(carry) / float64(total)
	bounty := lootable.MulScalar(f)
	report.Bounty = &bounty
}

// resolveLoyalty 歼灭战中幸存的酋长打击忠诚度。
func resolveLoyalty(report *BattleReport, attackType AttackType, attacker *Army) {
	if attackType != AttackNormal {
		return
	}
	chiefs := report.Attacker.Survivors[ChiefSlot]
	if chiefs == 0 {
		return
	}
	// 第一个酋长降 20，之后逐个递增 5
	var drop uint32
	for i := uint32(0); i < chiefs; i++ {
		drop += 20 + i*5
	}
	if drop >= uint32(report.LoyaltyAfter) {
		report.LoyaltyAfter = 0
	} else {
		report.LoyaltyAfter -= uint8(drop)
	}
}

// CalculateScoutBattle 侦察结算。防守方没有侦察兵时进攻方零伤亡且不被发现。
// 防守方侦察兵不承受伤亡。
func CalculateScoutBattle(attacker *Army, defender *Village) *BattleReport {
	report := &BattleReport{
		AttackType: AttackRaid,
		Attacker: BattleParty{
			ArmyID:   attacker.ID,
			PlayerID: attacker.PlayerID,
			Tribe:    attacker.Tribe,
			Before:   attacker.Units,
		},
		LoyaltyAfter: defender.Loyalty,
	}

	atkPower := float64(attacker.ScoutingAttackPoints())

	var defPower float64
	defenderHasScouts := false
	if defender.Army != nil {
		defPower += float64(defender.Army.ScoutingDefensePoints())
		defenderHasScouts = defenderHasScouts || defender.Army.HasScouts()
	}
	for _, r := range defender.Reinforcements {
		defPower += float64(r.ScoutingDefensePoints())
		defenderHasScouts = defenderHasScouts || r.HasScouts()
	}
	defPower *= math.Pow(defender.Tribe.WallFactor(), float64(defender.WallLevel()))
	if defenderHasScouts {
		defPower += 10
	}

	report.WasDetected = defenderHasScouts

	var lossPct float64
	if defenderHasScouts && atkPower > 0 {
		m := mFactor(attacker.Units.Total() + defenderTotalUnits(defender))
		lossPct = math.Pow(defPower/atkPower, m)
		if lossPct > 1 {
			lossPct = 1
		}
	}

	report.Attacker.Survivors, report.Attacker.Losses = applyLossRatio(attacker.Units, lossPct)
	report.AttackerWon = report.Attacker.Survivors.Total() > 0

	if report.AttackerWon {
		report.Scouting = &ScoutingIntel{
			Resources: defender.LootableResources(),
			Troops:    defenderTroopsSnapshot(defender),
			WallLevel: defender.WallLevel(),
		}
	}
	return report
}

func defenderTroopsSnapshot(v *Village) TroopSet {
	var t TroopSet
	if v.Army != nil {
		t = t.Add(v.Army.Units)
	}
	for _, r := range v.Reinforcements {
		t = t.Add(r.Units)
	}
	return t
}

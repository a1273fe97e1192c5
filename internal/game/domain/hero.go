package domain

import "math"

// Hero 玩家英雄。生命值归零视为阵亡，需在村庄中复活。
type Hero struct {
	ID            int64  `json:"id"`
	PlayerID      int64  `json:"player_id"`
	VillageID     int64  `json:"village_id"`
	Health        uint16 `json:"health"`
	Experience    uint64 `json:"experience"`
	AttackPoints  uint32 `json:"attack_points"`
	DefensePoints uint32 `json:"defense_points"`
	OffBonus      uint32 `json:"off_bonus"`
	DefBonus      uint32 `json:"def_bonus"`
}

func NewHero(id, playerID, villageID int64) *Hero {
	return &Hero{ID: id, PlayerID: playerID, VillageID: villageID, Health: 100}
}

func (h *Hero) IsDead() bool {
	return h.Health == 0
}

// bonusByPoints 每点属性带来的复利加成。
func bonusByPoints(points uint32) float64 {
	return math.Pow(1.008, float64(points)) - 1
}

// FightingStrength 英雄随军进攻时贡献的基础攻击力。
func (h *Hero) FightingStrength() uint32 {
	return uint32(100 * (1 + bonusByPoints(h.AttackPoints)))
}

// OffBonusPct 全军进攻加成百分比。
func (h *Hero) OffBonusPct() float64 {
	return bonusByPoints(h.OffBonus) * 100
}

// DefBonusPct 全军防御加成百分比。
func (h *Hero) DefBonusPct() float64 {
	return bonusByPoints(h.DefBonus) * 100
}

// DefenseStrength 英雄驻防时贡献的基础防御力。
func (h *Hero) DefenseStrength() uint32 {
	return uint32(100 * (1 + bonusByPoints(h.DefensePoints)))
}

// TakeDamage 扣减生命值，下限 0。
func (h *Hero) TakeDamage(dmg uint16) {
	if dmg >= h.Health {
		h.Health = 0
		return
	}
	h.Health -= dmg
}

func (h *Hero) GainExperience(exp uint64) {
	h.Experience += exp
}

// ResurrectionCost 复活成本随经验增长。
func (h *Hero) ResurrectionCost() (ResourceGroup, uint32) {
	level := h.Experience / 100
	f := 1 + float64(level)*0.33
	base := rg(130, 115, 180, 75)
	timeSecs := uint32(900 * (1 + float64(level)*0.25))
	return base.MulScalar(f), timeSecs
}

// Resurrect 在指定村庄复活。reset 为真时清空经验与属性点。
func (h *Hero) Resurrect(villageID int64, reset bool) error {
	if !h.IsDead() {
		return ErrHeroNotDead
	}
	h.Health = 100
	h.VillageID = villageID
	if reset {
		h.Experience = 0
		h.AttackPoints = 0
		h.DefensePoints = 0
		h.OffBonus = 0
		h.DefBonus = 0
	}
	return nil
}

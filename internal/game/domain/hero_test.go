package domain

import (
	"errors"
	"testing"
)

func TestHeroResurrect(t *testing.T) {
	h := NewHero(1, 2, 3)
	if err := h.Resurrect(4, false); !errors.Is(err, ErrHeroNotDead) {
		t.Fatalf("err = %v, want ErrHeroNotDead", err)
	}

	h.TakeDamage(200)
	if !h.IsDead() {
		t.Fatal("hero must be dead after lethal damage")
	}

	h.Experience = 500
	if err := h.Resurrect(4, false); err != nil {
		t.Fatalf("resurrect: %v", err)
	}
	if h.Health != 100 || h.VillageID != 4 {
		t.Fatalf("health=%d village=%d", h.Health, h.VillageID)
	}
	if h.Experience != 500 {
		t.Fatal("resurrect without reset keeps experience")
	}
}

func TestHeroResurrectReset(t *testing.T) {
	h := NewHero(1, 2, 3)
	h.Experience = 900
	h.AttackPoints = 12
	h.TakeDamage(100)

	if err := h.Resurrect(3, true); err != nil {
		t.Fatalf("resurrect: %v", err)
	}
	if h.Experience != 0 || h.AttackPoints != 0 {
		t.Fatal("reset must clear experience and points")
	}
}

func TestHeroBonuses(t *testing.T) {
	h := NewHero(1, 1, 1)
	if h.FightingStrength() != 100 {
		t.Fatalf("base strength = %d, want 100", h.FightingStrength())
	}
	h.AttackPoints = 50
	if h.FightingStrength() <= 100 {
		t.Fatal("attack points must raise strength")
	}
	if h.OffBonusPct() != 0 {
		t.Fatalf("off bonus = %f, want 0", h.OffBonusPct())
	}
	h.OffBonus = 10
	if h.OffBonusPct() <= 0 {
		t.Fatal("off bonus points must raise the bonus")
	}
}

func TestHeroResurrectionCostGrows(t *testing.T) {
	young := NewHero(1, 1, 1)
	veteran := NewHero(2, 1, 1)
	veteran.Experience = 2000

	cheapCost, cheapTime := young.ResurrectionCost()
	richCost, richTime := veteran.ResurrectionCost()
	if richCost.Total() <= cheapCost.Total() {
		t.Fatal("resurrection cost must grow with experience")
	}
	if richTime <= cheapTime {
		t.Fatal("resurrection time must grow with experience")
	}
}

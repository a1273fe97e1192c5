package domain

import (
	"errors"
	"testing"
)

func TestGetBuildingLevels(t *testing.T) {
	b, err := GetBuilding(BuildingMainBuilding, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Value != 1000 {
		t.Fatalf("main building value = %d, want 1000", b.Value)
	}

	if _, err := GetBuilding(BuildingMainBuilding, 21); !errors.Is(err, ErrBuildingMaxLevel) {
		t.Fatalf("err = %v, want ErrBuildingMaxLevel", err)
	}
	if _, err := GetBuilding("Ziggurat", 1); !errors.Is(err, ErrUnknownBuilding) {
		t.Fatalf("err = %v, want ErrUnknownBuilding", err)
	}
}

func TestBuildingCostGrows(t *testing.T) {
	b, _ := GetBuilding(BuildingWarehouse, 1)
	c1, err := b.NextLevelCost()
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	b, _ = GetBuilding(BuildingWarehouse, 10)
	c10, _ := b.NextLevelCost()
	if c10.Lumber <= c1.Lumber {
		t.Fatalf("cost must grow with level: %d vs %d", c1.Lumber, c10.Lumber)
	}

	b, _ = GetBuilding(BuildingWarehouse, 20)
	if _, err := b.NextLevelCost(); !errors.Is(err, ErrBuildingMaxLevel) {
		t.Fatalf("err = %v, want ErrBuildingMaxLevel", err)
	}
}

func TestBuildTimeShrinksWithMainBuilding(t *testing.T) {
	b, _ := GetBuilding(BuildingBarracks, 0)
	slow := b.BuildTimeSecs(1, 1)
	fast := b.BuildTimeSecs(20, 1)
	if fast >= slow {
		t.Fatalf("main building must speed up construction: %d vs %d", fast, slow)
	}

	speedy := b.BuildTimeSecs(1, 3)
	if speedy >= slow {
		t.Fatalf("server speed must shorten construction: %d vs %d", speedy, slow)
	}
	if speedy == 0 {
		t.Fatal("build time is at least one second")
	}
}

func TestResourceFieldValueLadder(t *testing.T) {
	b, _ := GetBuilding(BuildingWoodcutter, 0)
	if b.Value != 2 {
		t.Fatalf("level 0 production = %d, want 2", b.Value)
	}
	b, _ = GetBuilding(BuildingWoodcutter, 5)
	if b.Value != 33 {
		t.Fatalf("level 5 production = %d, want 33", b.Value)
	}
	if b.EffectiveValue(3) != 99 {
		t.Fatalf("3x production = %d, want 99", b.EffectiveValue(3))
	}
}

func TestStorageValueLadder(t *testing.T) {
	b, _ := GetBuilding(BuildingGranary, 1)
	if b.Value != 1200 {
		t.Fatalf("level 1 capacity = %d, want 1200", b.Value)
	}
	b, _ = GetBuilding(BuildingGranary, 20)
	if b.Value != 80000 {
		t.Fatalf("level 20 capacity = %d, want 80000", b.Value)
	}
}

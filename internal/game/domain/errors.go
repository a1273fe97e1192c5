package domain

import (
	"errors"
	"fmt"
)

// 游戏内业务错误：由玩家操作触发，属于可预期错误，调用方据此返回提示。
var (
	ErrNotEnoughResources   = errors.New("not enough resources")
	ErrNotEnoughMerchants   = errors.New("not enough merchants")
	ErrVillageSlotsFull     = errors.New("village has no free building slots")
	ErrBuildingMaxLevel     = errors.New("building max level reached")
	ErrTribeMismatch        = errors.New("armies belong to different tribes")
	ErrNotEnoughUnits       = errors.New("not enough units")
	ErrNoUnitsSelected      = errors.New("no units selected")
	ErrOnlyScoutUnits       = errors.New("only scout units allowed for scouting")
	ErrUnitNotResearched    = errors.New("unit not researched")
	ErrUnitAlreadyKnown     = errors.New("unit already researched")
	ErrSmithyMaxLevel       = errors.New("smithy max level reached")
	ErrHeroNotDead          = errors.New("hero is not dead")
	ErrNoArmyInVillage      = errors.New("village has no army")
	ErrVillageNotFound      = errors.New("village not found")
	ErrArmyNotFound         = errors.New("army not found")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrHeroNotFound         = errors.New("hero not found")
	ErrMapFieldNotFound     = errors.New("map field not found")
	ErrJobNotFound          = errors.New("job not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrTargetOccupied       = errors.New("target field already occupied")
	ErrInvalidValley        = errors.New("map field is not a valley")
	ErrInsufficientSettlers = errors.New("not enough settlers to found a village")
	ErrInsufficientCulture  = errors.New("not enough culture points")
	ErrUnknownBuilding      = errors.New("unknown building")
	ErrInvalidBuildingLevel = errors.New("invalid building level")
)

// SlotOccupiedError 指定槽位已有建筑。
type SlotOccupiedError struct {
	SlotID uint8
}

func (e *SlotOccupiedError) Error() string {
	return fmt.Sprintf("building slot %d is occupied", e.SlotID)
}

// EmptySlotError 指定槽位没有建筑。
type EmptySlotError struct {
	SlotID uint8
}

func (e *EmptySlotError) Error() string {
	return fmt.Sprintf("building slot %d is empty", e.SlotID)
}

type BuildingRequirementError struct {
	Building BuildingName
	Level    uint8
}

func (e *BuildingRequirementError) Error() string {
	return fmt.Sprintf("requires %s at level %d", e.Building, e.Level)
}

type InvalidUnitIndexError struct {
	Index uint8
}

func (e *InvalidUnitIndexError) Error() string {
	return fmt.Sprintf("invalid unit index %d", e.Index)
}

type InvalidTrainingBuildingError struct {
	Building BuildingName
	Unit     UnitName
}

func (e *InvalidTrainingBuildingError) Error() string {
	return fmt.Sprintf("%s cannot train %s", e.Building, e.Unit)
}

type HeroNotAtHomeError struct {
	HeroID    int64
	VillageID int64
}

func (e *HeroNotAtHomeError) Error() string {
	return fmt.Sprintf("hero %d is not at home in village %d", e.HeroID, e.VillageID)
}

type HeroNotOwnedError struct {
	HeroID   int64
	PlayerID int64
}

func (e *HeroNotOwnedError) Error() string {
	return fmt.Sprintf("hero %d does not belong to player %d", e.HeroID, e.PlayerID)
}

type VillageNotOwnedError struct {
	VillageID int64
	PlayerID  int64
}

func (e *VillageNotOwnedError) Error() string {
	return fmt.Sprintf("village %d does not belong to player %d", e.VillageID, e.PlayerID)
}

type UnitNotFoundError struct {
	Unit UnitName
}

func (e *UnitNotFoundError) Error() string {
	return fmt.Sprintf("unit %s not found in tribe roster", e.Unit)
}

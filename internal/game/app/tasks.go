package app

import "parabellum/internal/game/domain"

// 任务类型标识，持久化在任务负载里。
const (
	TaskAttack            = "Attack"
	TaskScout             = "Scout"
	TaskArmyReturn        = "ArmyReturn"
	TaskReinforcement     = "Reinforcement"
	TaskTrainUnits        = "TrainUnits"
	TaskResearchAcademy   = "ResearchAcademy"
	TaskResearchSmithy    = "ResearchSmithy"
	TaskAddBuilding       = "AddBuilding"
	TaskBuildingUpgrade   = "BuildingUpgrade"
	TaskBuildingDowngrade = "BuildingDowngrade"
	TaskMerchantGoing     = "MerchantGoing"
	TaskMerchantReturn    = "MerchantReturn"
	TaskHeroRevival       = "HeroRevival"
	TaskFoundVillage      = "FoundVillage"
)

// AttackTask 军队抵达目标村庄并结算战斗。
type AttackTask struct {
	ArmyID            int64                 `json:"army_id"`
	AttackerVillageID int64                 `json:"attacker_village_id"`
	AttackerPlayerID  int64                 `json:"attacker_player_id"`
	TargetVillageID   int64                 `json:"target_village_id"`
	TargetPlayerID    int64                 `json:"target_player_id"`
	CatapultTargets   []domain.BuildingName `json:"catapult_targets,omitempty"`
	AttackType        domain.AttackType     `json:"attack_type"`
}

// ScoutTask 侦察任务抵达目标。
type ScoutTask struct {
	ArmyID            int64 `json:"army_id"`
	AttackerVillageID int64 `json:"attacker_village_id"`
	AttackerPlayerID  int64 `json:"attacker_player_id"`
	TargetVillageID   int64 `json:"target_village_id"`
	TargetPlayerID    int64 `json:"target_player_id"`
}

// ArmyReturnTask 军队携战利品返回出发村庄。
type ArmyReturnTask struct {
	ArmyID               int64                `json:"army_id"`
	Resources            domain.ResourceGroup `json:"resources"`
	DestinationPlayerID  int64                `json:"destination_player_id"`
	DestinationVillageID int64                `json:"destination_village_id"`
	FromVillageID        int64                `json:"from_village_id"`
}

// ReinforcementTask 援军抵达友方村庄驻防。
type ReinforcementTask struct {
	ArmyID    int64 `json:"army_id"`
	VillageID int64 `json:"village_id"`
	PlayerID  int64 `json:"player_id"`
}

// TrainUnitsTask 训练队列，每个单位完成时重新入队剩余数量。
type TrainUnitsTask struct {
	SlotID      uint8           `json:"slot_id"`
	UnitName    domain.UnitName `json:"unit_name"`
	Quantity    uint32          `json:"quantity"`
	TimePerUnit uint32          `json:"time_per_unit"`
}

// ResearchAcademyTask 研究院研究完成。
type ResearchAcademyTask struct {
	UnitIdx uint8 `json:"unit_idx"`
}

// ResearchSmithyTask 铁匠铺强化完成。
type ResearchSmithyTask struct {
	UnitIdx uint8 `json:"unit_idx"`
}

// AddBuildingTask 新建筑落成。
type AddBuildingTask struct {
	SlotID       uint8               `json:"slot_id"`
	BuildingName domain.BuildingName `json:"building_name"`
}

// BuildingUpgradeTask 建筑升级完成。
type BuildingUpgradeTask struct {
	SlotID       uint8               `json:"slot_id"`
	BuildingName domain.BuildingName `json:"building_name"`
	Level        uint8               `json:"level"`
}

// BuildingDowngradeTask 建筑降级完成。
type BuildingDowngradeTask struct {
	SlotID uint8 `json:"slot_id"`
	Level  uint8 `json:"level"`
}

// MerchantGoingTask 商队抵达目的地卸货。
type MerchantGoingTask struct {
	OriginVillageID      int64                `json:"origin_village_id"`
	DestinationVillageID int64                `json:"destination_village_id"`
	Resources            domain.ResourceGroup `json:"resources"`
	MerchantsUsed        uint32               `json:"merchants_used"`
	TravelTimeSecs       uint32               `json:"travel_time_secs"`
}

// MerchantReturnTask 商队空载返程。返程完成即释放商人。
type MerchantReturnTask struct {
	OriginVillageID      int64  `json:"origin_village_id"`
	DestinationVillageID int64  `json:"destination_village_id"`
	MerchantsUsed        uint32 `json:"merchants_used"`
	TravelTimeSecs       uint32 `json:"travel_time_secs"`
}

// HeroRevivalTask 英雄复活完成。
type HeroRevivalTask struct {
	HeroID int64 `json:"hero_id"`
	Reset  bool  `json:"reset"`
}

// FoundVillageTask 移民抵达目标山谷建立新村。
type FoundVillageTask struct {
	ArmyID        int64           `json:"army_id"`
	Position      domain.Position `json:"position"`
	FromVillageID int64           `json:"from_village_id"`
}

// Package model 定义 MySQL 表结构。复杂嵌套结构（建筑、兵种、库存）
// 以 JSON 列落库，由 mapper 负责与领域对象互转。
package model

import "time"

type Player struct {
	ID            int64     `gorm:"column:id;primaryKey;not null;" json:"id"`
	Username      string    `gorm:"column:username;type:varchar(100);uniqueIndex;not null;" json:"username"`
	Tribe         string    `gorm:"column:tribe;type:varchar(20);not null;" json:"tribe"`
	CulturePoints uint64    `gorm:"column:culture_points;not null;default:0;" json:"culture_points"`
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"created_at"`
}

func (Player) TableName() string {
	return "players"
}

type Village struct {
	ID              int64     `gorm:"column:id;primaryKey;not null;" json:"id"`
	Name            string    `gorm:"column:name;type:varchar(100);not null;" json:"name"`
	PlayerID        int64     `gorm:"column:player_id;index;not null;" json:"player_id"`
	ParentVillageID *int64    `gorm:"column:parent_village_id;" json:"parent_village_id"`
	X               int32     `gorm:"column:x;not null;" json:"x"`
	Y               int32     `gorm:"column:y;not null;" json:"y"`
	Tribe           string    `gorm:"column:tribe;type:varchar(20);not null;" json:"tribe"`
	IsCapital       bool      `gorm:"column:is_capital;not null;default:0;" json:"is_capital"`
	Loyalty         uint8     `gorm:"column:loyalty;not null;default:100;" json:"loyalty"`
	Population      uint32    `gorm:"column:population;not null;default:0;" json:"population"`
	Buildings       []byte    `gorm:"column:buildings;type:json;" json:"buildings"`
	Smithy          []byte    `gorm:"column:smithy;type:json;" json:"smithy"`
	AcademyResearch []byte    `gorm:"column:academy_research;type:json;" json:"academy_research"`
	Stocks          []byte    `gorm:"column:stocks;type:json;" json:"stocks"`
	Production      []byte    `gorm:"column:production;type:json;" json:"production"`
	TotalMerchants  uint32    `gorm:"column:total_merchants;not null;default:0;" json:"total_merchants"`
	BusyMerchants   uint32    `gorm:"column:busy_merchants;not null;default:0;" json:"busy_merchants"`
	UpdatedAt       time.Time `gorm:"column:updated_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"updated_at"`
}

func (Village) TableName() string {
	return "villages"
}

type Army struct {
	ID                int64  `gorm:"column:id;primaryKey;not null;" json:"id"`
	PlayerID          int64  `gorm:"column:player_id;index;not null;" json:"player_id"`
	VillageID         int64  `gorm:"column:village_id;index;not null;" json:"village_id"`
	Tribe             string `gorm:"column:tribe;type:varchar(20);not null;" json:"tribe"`
	Units             []byte `gorm:"column:units;type:json;" json:"units"`
	Smithy            []byte `gorm:"column:smithy;type:json;" json:"smithy"`
	CurrentMapFieldID *int64 `gorm:"column:current_map_field_id;index;" json:"current_map_field_id"`
	HeroID            *int64 `gorm:"column:hero_id;" json:"hero_id"`
}

func (Army) TableName() string {
	return "armies"
}

type Hero struct {
	ID            int64  `gorm:"column:id;primaryKey;not null;" json:"id"`
	PlayerID      int64  `gorm:"column:player_id;index;not null;" json:"player_id"`
	VillageID     int64  `gorm:"column:village_id;not null;" json:"village_id"`
	Health        uint16 `gorm:"column:health;not null;default:100;" json:"health"`
	Experience    uint64 `gorm:"column:experience;not null;default:0;" json:"experience"`
	AttackPoints  uint32 `gorm:"column:attack_points;not null;default:0;" json:"attack_points"`
	DefensePoints uint32 `gorm:"column:defense_points;not null;default:0;" json:"defense_points"`
	OffBonus      uint32 `gorm:"column:off_bonus;not null;default:0;" json:"off_bonus"`
	DefBonus      uint32 `gorm:"column:def_bonus;not null;default:0;" json:"def_bonus"`
}

func (Hero) TableName() string {
	return "heroes"
}

type MapField struct {
	ID        int64  `gorm:"column:id;primaryKey;not null;" json:"id"`
	X         int32  `gorm:"column:x;not null;" json:"x"`
	Y         int32  `gorm:"column:y;not null;" json:"y"`
	Kind      string `gorm:"column:kind;type:varchar(20);not null;" json:"kind"`
	Lumber    uint8  `gorm:"column:lumber;not null;default:0;" json:"lumber"`
	Clay      uint8  `gorm:"column:clay;not null;default:0;" json:"clay"`
	Iron      uint8  `gorm:"column:iron;not null;default:0;" json:"iron"`
	Crop      uint8  `gorm:"column:crop;not null;default:0;" json:"crop"`
	Oasis     string `gorm:"column:oasis;type:varchar(20);" json:"oasis"`
	VillageID *int64 `gorm:"column:village_id;index;" json:"village_id"`
	PlayerID  *int64 `gorm:"column:player_id;index;" json:"player_id"`
}

func (MapField) TableName() string {
	return "map_fields"
}

type Job struct {
	ID          int64     `gorm:"column:id;primaryKey;not null;" json:"id"`
	PlayerID    int64     `gorm:"column:player_id;index;not null;" json:"player_id"`
	VillageID   int64     `gorm:"column:village_id;index:idx_village_task;not null;" json:"village_id"`
	TaskType    string    `gorm:"column:task_type;type:varchar(40);index:idx_village_task;not null;" json:"task_type"`
	Data        []byte    `gorm:"column:data;type:json;" json:"data"`
	Status      string    `gorm:"column:status;type:varchar(20);index:idx_status_due;not null;" json:"status"`
	FailReason  string    `gorm:"column:fail_reason;type:varchar(500);" json:"fail_reason"`
	CompletedAt time.Time `gorm:"column:completed_at;type:timestamp;index:idx_status_due;not null;" json:"completed_at"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

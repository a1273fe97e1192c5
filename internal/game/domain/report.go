package domain

import "time"

const ReportTypeBattle = "battle"

// ReportAudience 战报的一个收件人。ReadAt 为 nil 表示未读。
type ReportAudience struct {
	PlayerID int64      `json:"player_id" bson:"player_id"`
	ReadAt   *time.Time `json:"read_at,omitempty" bson:"read_at,omitempty"`
}

// Report 投递给玩家的战报。Payload 为具体类型的战报内容。
type Report struct {
	ID              int64            `json:"id" bson:"_id"`
	Type            string           `json:"type" bson:"type"`
	Payload         *BattleReport    `json:"payload" bson:"payload"`
	ActorPlayerID   int64            `json:"actor_player_id" bson:"actor_player_id"`
	ActorVillageID  int64            `json:"actor_village_id" bson:"actor_village_id"`
	TargetPlayerID  int64            `json:"target_player_id" bson:"target_player_id"`
	TargetVillageID int64            `json:"target_village_id" bson:"target_village_id"`
	Audiences       []ReportAudience `json:"audiences" bson:"audiences"`
	CreatedAt       time.Time        `json:"created_at" bson:"created_at"`
}

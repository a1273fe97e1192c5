package app

import (
	"encoding/json"
	"time"

	"parabellum/internal/shared/utils"
)

// JobStatus 任务生命周期：Pending 等待到期，Processing 已被 worker 认领，
// 终态为 Completed 或 Failed。
type JobStatus string

const (
	JobPending    JobStatus = "Pending"
	JobProcessing JobStatus = "Processing"
	JobCompleted  JobStatus = "Completed"
	JobFailed     JobStatus = "Failed"
)

// JobPayload 任务类型与类型化数据。
type JobPayload struct {
	TaskType string          `json:"task_type"`
	Data     json.RawMessage `json:"data"`
}

// Job 延时任务。CompletedAt 是到期时间，到期后才会被 worker 领取执行。
type Job struct {
	ID          int64      `json:"id"`
	PlayerID    int64      `json:"player_id"`
	VillageID   int64      `json:"village_id"`
	Payload     JobPayload `json:"task"`
	Status      JobStatus  `json:"status"`
	FailReason  string     `json:"fail_reason,omitempty"`
	CompletedAt time.Time  `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewJob 创建 durationSecs 秒后到期的任务。时长为 0 时立即到期。
func NewJob(playerID, villageID int64, durationSecs uint32, taskType string, data any) (*Job, error) {
	now := time.Now()
	return newJobAt(playerID, villageID, now, now.Add(time.Duration(durationSecs)*time.Second), taskType, data)
}

// NewJobWithDeadline 创建在指定时刻到期的任务，用于排队串联的场景。
func NewJobWithDeadline(playerID, villageID int64, deadline time.Time, taskType string, data any) (*Job, error) {
	return newJobAt(playerID, villageID, time.Now(), deadline, taskType, data)
}

func newJobAt(playerID, villageID int64, now, deadline time.Time, taskType string, data any) (*Job, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Job{
		ID:          utils.GenID(),
		PlayerID:    playerID,
		VillageID:   villageID,
		Payload:     JobPayload{TaskType: taskType, Data: raw},
		Status:      JobPending,
		CompletedAt: deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// DecodeData 把任务数据反序列化到目标类型。
func (j *Job) DecodeData(dst any) error {
	return json.Unmarshal(j.Payload.Data, dst)
}

// IsDue 是否已到期。
func (j *Job) IsDue(now time.Time) bool {
	return !j.CompletedAt.After(now)
}

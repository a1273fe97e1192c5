package app_test

import (
	"errors"
	"testing"
	"time"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
)

func TestNewJobZeroDurationDueImmediately(t *testing.T) {
	job, err := app.NewJob(1, 2, 0, app.TaskBuildingUpgrade, app.BuildingUpgradeTask{SlotID: 20, Level: 2})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	if job.ID == 0 {
		t.Fatalf("job has no id")
	}
	if job.Status != app.JobPending {
		t.Fatalf("status = %s, want Pending", job.Status)
	}
	if !job.IsDue(time.Now()) {
		t.Fatalf("zero duration job must be due immediately")
	}
	if !job.CreatedAt.Equal(job.UpdatedAt) {
		t.Fatalf("created/updated mismatch on fresh job")
	}
}

func TestNewJobWithDeadline(t *testing.T) {
	deadline := time.Now().Add(90 * time.Second)
	job, err := app.NewJobWithDeadline(1, 2, deadline, app.TaskResearchSmithy, app.ResearchSmithyTask{UnitIdx: 1})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	if !job.CompletedAt.Equal(deadline) {
		t.Fatalf("deadline = %v, want %v", job.CompletedAt, deadline)
	}
	if job.IsDue(time.Now()) {
		t.Fatalf("future job must not be due")
	}
}

func TestJobDecodeData(t *testing.T) {
	task := app.AttackTask{
		ArmyID:          7,
		TargetVillageID: 9,
		CatapultTargets: []domain.BuildingName{domain.BuildingGranary},
		AttackType:      domain.AttackRaid,
	}
	job, err := app.NewJob(1, 2, 60, app.TaskAttack, task)
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	var got app.AttackTask
	if err := job.DecodeData(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ArmyID != 7 || got.TargetVillageID != 9 || got.AttackType != domain.AttackRaid {
		t.Fatalf("decoded task mismatch: %+v", got)
	}
	if len(got.CatapultTargets) != 1 || got.CatapultTargets[0] != domain.BuildingGranary {
		t.Fatalf("catapult targets lost: %+v", got.CatapultTargets)
	}
}

func TestRegistryUnknownTaskType(t *testing.T) {
	r := app.NewRegistry()
	var noHandler *app.NoJobHandlerError
	if _, err := r.Resolve("Teleport"); !errors.As(err, &noHandler) {
		t.Fatalf("err = %v, want NoJobHandlerError", err)
	}
}

func TestDefaultRegistryCoversAllTaskTypes(t *testing.T) {
	r := app.DefaultRegistry()
	for _, taskType := range []string{
		app.TaskAttack, app.TaskScout, app.TaskArmyReturn, app.TaskReinforcement,
		app.TaskTrainUnits, app.TaskResearchAcademy, app.TaskResearchSmithy,
		app.TaskAddBuilding, app.TaskBuildingUpgrade, app.TaskBuildingDowngrade,
		app.TaskMerchantGoing, app.TaskMerchantReturn, app.TaskHeroRevival,
		app.TaskFoundVillage,
	} {
		if _, err := r.Resolve(taskType); err != nil {
			t.Fatalf("task type %s not registered: %v", taskType, err)
		}
	}
}

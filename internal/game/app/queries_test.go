package app_test

import (
	"context"
	"errors"
	"testing"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
)

func TestGetVillageSettlesResources(t *testing.T) {
	store, atk, _ := seedWorld(t)

	var view *app.VillageView
	err := app.NewBus(store, testCfg).Query(context.Background(),
		func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
			var err error
			view, err = app.GetVillage(ctx, uow, cfg, atk.ID)
			return err
		})
	if err != nil {
		t.Fatalf("get village: %v", err)
	}
	if view.Village.ID != atk.ID {
		t.Fatalf("wrong village: got=%d want=%d", view.Village.ID, atk.ID)
	}
	if view.Upkeep == 0 {
		t.Fatal("garrisoned village should have upkeep")
	}
}

func TestGetUnoccupiedValleyFindsNearestFree(t *testing.T) {
	store, _, _ := seedWorld(t)

	var field *domain.MapField
	err := app.NewBus(store, testCfg).Query(context.Background(),
		func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
			var err error
			field, err = app.GetUnoccupiedValley(ctx, uow, cfg, domain.Position{X: 9, Y: 9})
			return err
		})
	if err != nil {
		t.Fatalf("get unoccupied valley: %v", err)
	}
	// (0,0) 和 (5,3) 已被占，唯一的空山谷在 (10,10)
	if field.Position.X != 10 || field.Position.Y != 10 {
		t.Fatalf("unexpected valley: %+v", field.Position)
	}
}

func TestGetUnoccupiedValleySkipsOccupied(t *testing.T) {
	store, atk, _ := seedWorld(t)

	var field *domain.MapField
	err := app.NewBus(store, testCfg).Query(context.Background(),
		func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
			var err error
			field, err = app.GetUnoccupiedValley(ctx, uow, cfg, atk.Position)
			return err
		})
	if err != nil {
		t.Fatalf("get unoccupied valley: %v", err)
	}
	if field.IsOccupied() {
		t.Fatalf("returned occupied field %d", field.ID)
	}
}

func TestGetUnoccupiedValleyEmptyWorld(t *testing.T) {
	store, _, _ := seedWorld(t)

	// 把唯一的空山谷也占掉
	err := execute(t, store, func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
		pos := domain.Position{X: 10, Y: 10}
		f, err := uow.Map().GetFieldByID(ctx, pos.ToFieldID(cfg.WorldSize))
		if err != nil {
			return err
		}
		villageID := int64(777)
		f.VillageID = &villageID
		return uow.Map().SaveField(ctx, f)
	})
	if err != nil {
		t.Fatalf("occupy valley: %v", err)
	}

	qErr := app.NewBus(store, testCfg).Query(context.Background(),
		func(ctx context.Context, uow app.UnitOfWork, cfg app.Config) error {
			_, err := app.GetUnoccupiedValley(ctx, uow, cfg, domain.Position{X: 0, Y: 0})
			return err
		})
	if !errors.Is(qErr, domain.ErrMapFieldNotFound) {
		t.Fatalf("expected ErrMapFieldNotFound, got %v", qErr)
	}
}

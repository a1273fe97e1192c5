package app

import (
	"context"
	"errors"
	"time"

	"parabellum/internal/game/domain"
)

// VillageView 查询返回的村庄快照，资源结算到当前时刻。
type VillageView struct {
	Village        *domain.Village `json:"village"`
	Upkeep         uint64          `json:"upkeep"`
	Reinforcements int             `json:"reinforcements"`
}

// GetVillage 读取村庄当前状态。查询事务一律回滚，结算结果不落库。
func GetVillage(ctx context.Context, uow UnitOfWork, cfg Config, villageID int64) (*VillageView, error) {
	village, err := uow.Villages().GetByID(ctx, villageID)
	if err != nil {
		return nil, err
	}
	village.UpdateState(time.Now(), cfg.Speed)
	return &VillageView{
		Village:        village,
		Upkeep:         village.Upkeep(),
		Reinforcements: len(village.Reinforcements),
	}, nil
}

// GetUnoccupiedValley 以 origin 为中心按切比雪夫环逐圈外扩，返回最近的
// 空山谷。整张地图都没有空山谷时返回 ErrMapFieldNotFound。
func GetUnoccupiedValley(ctx context.Context, uow UnitOfWork, cfg Config, origin domain.Position) (*domain.MapField, error) {
	check := func(x, y int32) (*domain.MapField, error) {
		if x < -cfg.WorldSize || x > cfg.WorldSize || y < -cfg.WorldSize || y > cfg.WorldSize {
			return nil, nil
		}
		pos := domain.Position{X: x, Y: y}
		f, err := uow.Map().GetFieldByID(ctx, pos.ToFieldID(cfg.WorldSize))
		if errors.Is(err, domain.ErrMapFieldNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if f.Kind == domain.FieldValley && !f.IsOccupied() {
			return f, nil
		}
		return nil, nil
	}

	for r := int32(0); r <= cfg.WorldSize*2; r++ {
		for x := origin.X - r; x <= origin.X+r; x++ {
			for _, y := range [2]int32{origin.Y - r, origin.Y + r} {
				if f, err := check(x, y); err != nil || f != nil {
					return f, err
				}
			}
		}
		for y := origin.Y - r + 1; y <= origin.Y+r-1; y++ {
			for _, x := range [2]int32{origin.X - r, origin.X + r} {
				if f, err := check(x, y); err != nil || f != nil {
					return f, err
				}
			}
		}
	}
	return nil, domain.ErrMapFieldNotFound
}

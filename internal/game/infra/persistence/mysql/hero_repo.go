package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parabellum/internal/game/domain"
	"parabellum/internal/game/infra/persistence/model"
	"parabellum/internal/shared/errs"
)

type HeroRepo struct {
	db *gorm.DB
}

func NewHeroRepo(db *gorm.DB) *HeroRepo {
	return &HeroRepo{db: db}
}

func (r *HeroRepo) WithTx(tx *gorm.DB) *HeroRepo {
	return &HeroRepo{db: tx}
}

const OpGetHeroByID = "repo.hero.GetByID"

func (r *HeroRepo) GetByID(ctx context.Context, id int64) (*domain.Hero, error) {
	var m model.Hero
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error

	switch {
	case err == nil:
		return model.HeroToDomain(&m), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrHeroNotFound
	default:
		return nil, errs.Wrap(OpGetHeroByID, errs.KindInfra, err, map[string]any{"hero_id": id})
	}
}

const OpGetHeroByPlayer = "repo.hero.GetByPlayer"

func (r *HeroRepo) GetByPlayer(ctx context.Context, playerID int64) (*domain.Hero, error) {
	var m model.Hero
	err := r.db.WithContext(ctx).Where("player_id = ?", playerID).First(&m).Error

	switch {
	case err == nil:
		return model.HeroToDomain(&m), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrHeroNotFound
	default:
		return nil, errs.Wrap(OpGetHeroByPlayer, errs.KindInfra, err, map[string]any{"player_id": playerID})
	}
}

const OpSaveHero = "repo.hero.Save"

func (r *HeroRepo) Save(ctx context.Context, h *domain.Hero) error {
	if err := r.db.WithContext(ctx).Save(model.HeroToModel(h)).Error; err != nil {
		return errs.Wrap(OpSaveHero, errs.KindInfra, err, map[string]any{"hero_id": h.ID})
	}
	return nil
}

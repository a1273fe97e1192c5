package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parabellum/internal/game/domain"
	"parabellum/internal/game/infra/persistence/model"
	"parabellum/internal/shared/errs"
)

type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

func (r *PlayerRepo) WithTx(tx *gorm.DB) *PlayerRepo {
	return &PlayerRepo{db: tx}
}

const OpGetPlayerByID = "repo.player.GetByID"

func (r *PlayerRepo) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	var m model.Player
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error

	switch {
	case err == nil:
		return model.PlayerToDomain(&m), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrPlayerNotFound
	default:
		return nil, errs.Wrap(OpGetPlayerByID, errs.KindInfra, err, map[string]any{"player_id": id})
	}
}

const OpGetPlayerByUsername = "repo.player.GetByUsername"

func (r *PlayerRepo) GetByUsername(ctx context.Context, username string) (*domain.Player, error) {
	var m model.Player
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error

	switch {
	case err == nil:
		return model.PlayerToDomain(&m), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrPlayerNotFound
	default:
		return nil, errs.Wrap(OpGetPlayerByUsername, errs.KindInfra, err, map[string]any{"username": username})
	}
}

const OpSavePlayer = "repo.player.Save"

func (r *PlayerRepo) Save(ctx context.Context, p *domain.Player) error {
	if err := r.db.WithContext(ctx).Save(model.PlayerToModel(p)).Error; err != nil {
		return errs.Wrap(OpSavePlayer, errs.KindInfra, err, map[string]any{"player_id": p.ID})
	}
	return nil
}

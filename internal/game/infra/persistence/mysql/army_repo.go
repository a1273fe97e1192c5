package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parabellum/internal/game/domain"
	"parabellum/internal/game/infra/persistence/model"
	"parabellum/internal/shared/errs"
)

type ArmyRepo struct {
	db *gorm.DB
}

func NewArmyRepo(db *gorm.DB) *ArmyRepo {
	return &ArmyRepo{db: db}
}

func (r *ArmyRepo) WithTx(tx *gorm.DB) *ArmyRepo {
	return &ArmyRepo{db: tx}
}

const OpGetArmyByID = "repo.army.GetByID"

func (r *ArmyRepo) GetByID(ctx context.Context, id int64) (*domain.Army, error) {
	var m model.Army
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error

	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrArmyNotFound
	default:
		return nil, errs.Wrap(OpGetArmyByID, errs.KindInfra, err, map[string]any{"army_id": id})
	}
	return r.toDomain(ctx, &m)
}

func (r *ArmyRepo) toDomain(ctx context.Context, m *model.Army) (*domain.Army, error) {
	a, err := model.ArmyToDomain(m)
	if err != nil {
		return nil, errs.Wrap(OpGetArmyByID, errs.KindInfra, err, map[string]any{"army_id": m.ID})
	}
	if m.HeroID != nil {
		h, err := NewHeroRepo(r.db).GetByID(ctx, *m.HeroID)
		if err != nil {
			return nil, err
		}
		a.Hero = h
	}
	return a, nil
}

const OpListArmiesByMapField = "repo.army.ListByMapField"

func (r *ArmyRepo) ListByMapField(ctx context.Context, fieldID int64) ([]*domain.Army, error) {
	var rows []model.Army
	err := r.db.WithContext(ctx).
		Where("current_map_field_id = ?", fieldID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Wrap(OpListArmiesByMapField, errs.KindInfra, err, map[string]any{"field_id": fieldID})
	}

	out := make([]*domain.Army, 0, len(rows))
	for i := range rows {
		a, err := r.toDomain(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

const OpSaveArmy = "repo.army.Save"

func (r *ArmyRepo) Save(ctx context.Context, a *domain.Army) error {
	m, err := model.ArmyToModel(a)
	if err != nil {
		return errs.Wrap(OpSaveArmy, errs.KindInfra, err, map[string]any{"army_id": a.ID})
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return errs.Wrap(OpSaveArmy, errs.KindInfra, err, map[string]any{"army_id": a.ID})
	}
	return nil
}

const OpDeleteArmy = "repo.army.Delete"

func (r *ArmyRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&model.Army{}, id).Error; err != nil {
		return errs.Wrap(OpDeleteArmy, errs.KindInfra, err, map[string]any{"army_id": id})
	}
	return nil
}

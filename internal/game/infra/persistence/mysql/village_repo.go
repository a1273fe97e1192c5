package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parabellum/internal/game/domain"
	"parabellum/internal/game/infra/persistence/model"
	"parabellum/internal/shared/errs"
)

type VillageRepo struct {
	db *gorm.DB
}

func NewVillageRepo(db *gorm.DB) *VillageRepo {
	return &VillageRepo{db: db}
}

func (r *VillageRepo) WithTx(tx *gorm.DB) *VillageRepo {
	return &VillageRepo{db: tx}
}

const OpGetVillageByID = "repo.village.GetByID"

func (r *VillageRepo) GetByID(ctx context.Context, id int64) (*domain.Village, error) {
	var m model.Village
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error

	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrVillageNotFound
	default:
		return nil, errs.Wrap(OpGetVillageByID, errs.KindInfra, err, map[string]any{"village_id": id})
	}

	v, err := model.VillageToDomain(&m)
	if err != nil {
		return nil, errs.Wrap(OpGetVillageByID, errs.KindInfra, err, map[string]any{"village_id": id})
	}
	if err := r.attachArmies(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// attachArmies 按当前驻扎格子还原驻军与援军。
func (r *VillageRepo) attachArmies(ctx context.Context, v *domain.Village) error {
	armies, err := NewArmyRepo(r.db).ListByMapField(ctx, v.ID)
	if err != nil {
		return err
	}
	for _, a := range armies {
		if a.VillageID == v.ID {
			v.Army = a
		} else {
			v.Reinforcements = append(v.Reinforcements, a)
		}
	}
	return nil
}

const OpListVillagesByPlayer = "repo.village.ListByPlayer"

func (r *VillageRepo) ListByPlayer(ctx context.Context, playerID int64) ([]*domain.Village, error) {
	var rows []model.Village
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Wrap(OpListVillagesByPlayer, errs.KindInfra, err, map[string]any{"player_id": playerID})
	}

	out := make([]*domain.Village, 0, len(rows))
	for i := range rows {
		v, err := model.VillageToDomain(&rows[i])
		if err != nil {
			return nil, errs.Wrap(OpListVillagesByPlayer, errs.KindInfra, err, map[string]any{"village_id": rows[i].ID})
		}
		if err := r.attachArmies(ctx, v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

const OpSaveVillage = "repo.village.Save"

func (r *VillageRepo) Save(ctx context.Context, v *domain.Village) error {
	m, err := model.VillageToModel(v)
	if err != nil {
		return errs.Wrap(OpSaveVillage, errs.KindInfra, err, map[string]any{"village_id": v.ID})
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return errs.Wrap(OpSaveVillage, errs.KindInfra, err, map[string]any{"village_id": v.ID})
	}
	return nil
}

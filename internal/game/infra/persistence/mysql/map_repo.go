package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parabellum/internal/game/domain"
	"parabellum/internal/game/infra/persistence/model"
	"parabellum/internal/shared/errs"
)

type MapRepo struct {
	db *gorm.DB
}

func NewMapRepo(db *gorm.DB) *MapRepo {
	return &MapRepo{db: db}
}

func (r *MapRepo) WithTx(tx *gorm.DB) *MapRepo {
	return &MapRepo{db: tx}
}

const OpGetFieldByID = "repo.map.GetFieldByID"

func (r *MapRepo) GetFieldByID(ctx context.Context, id int64) (*domain.MapField, error) {
	var m model.MapField
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error

	switch {
	case err == nil:
		return model.MapFieldToDomain(&m), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrMapFieldNotFound
	default:
		return nil, errs.Wrap(OpGetFieldByID, errs.KindInfra, err, map[string]any{"field_id": id})
	}
}

const OpSaveField = "repo.map.SaveField"

func (r *MapRepo) SaveField(ctx context.Context, f *domain.MapField) error {
	if err := r.db.WithContext(ctx).Save(model.MapFieldToModel(f)).Error; err != nil {
		return errs.Wrap(OpSaveField, errs.KindInfra, err, map[string]any{"field_id": f.ID})
	}
	return nil
}

const OpBulkSaveFields = "repo.map.BulkSaveFields"

// BulkSaveFields 开服生成地图用，分批落库，冲突时整行覆盖。
func (r *MapRepo) BulkSaveFields(ctx context.Context, fields []domain.MapField) error {
	if len(fields) == 0 {
		return nil
	}
	rows := make([]*model.MapField, 0, len(fields))
	for i := range fields {
		rows = append(rows, model.MapFieldToModel(&fields[i]))
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(rows, 500).Error
	if err != nil {
		return errs.Wrap(OpBulkSaveFields, errs.KindInfra, err, map[string]any{"count": len(fields)})
	}
	return nil
}

const OpCountFields = "repo.map.CountFields"

func (r *MapRepo) CountFields(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.MapField{}).Count(&count).Error; err != nil {
		return 0, errs.Wrap(OpCountFields, errs.KindInfra, err, nil)
	}
	return count, nil
}

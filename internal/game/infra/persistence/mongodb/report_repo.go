// Package mongodb 战报仓储。战报一经生成不再修改（已读标记除外），
// 存 MongoDB 文档最省事。
package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"parabellum/internal/game/domain"
	"parabellum/internal/shared/errs"
)

const defaultReportCollectionName = "reports"

const (
	OpSaveReport          = "repo.report.Save"
	OpListReportsByPlayer = "repo.report.ListByPlayer"
	OpMarkReportRead      = "repo.report.MarkRead"
)

type ReportRepo struct {
	coll *mongo.Collection
}

func NewReportRepo(db *mongo.Database) *ReportRepo {
	if db == nil {
		return &ReportRepo{}
	}
	return &ReportRepo{coll: db.Collection(defaultReportCollectionName)}
}

func (r *ReportRepo) Save(ctx context.Context, rep *domain.Report) error {
	if r == nil || r.coll == nil {
		return errs.Wrap(OpSaveReport, errs.KindInfra, errors.New("mongodb report collection is nil"), nil)
	}

	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": rep.ID},
		rep,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errs.Wrap(OpSaveReport, errs.KindInfra, err, map[string]any{"report_id": rep.ID})
	}
	return nil
}

func (r *ReportRepo) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]*domain.Report, error) {
	if r == nil || r.coll == nil {
		return nil, errs.Wrap(OpListReportsByPlayer, errs.KindInfra, errors.New("mongodb report collection is nil"), nil)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, bson.M{"audiences.player_id": playerID}, opts)
	if err != nil {
		return nil, errs.Wrap(OpListReportsByPlayer, errs.KindInfra, err, map[string]any{"player_id": playerID})
	}
	defer cur.Close(ctx)

	var out []*domain.Report
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.Wrap(OpListReportsByPlayer, errs.KindInfra, err, map[string]any{"player_id": playerID})
	}
	return out, nil
}

func (r *ReportRepo) MarkRead(ctx context.Context, reportID, playerID int64) error {
	if r == nil || r.coll == nil {
		return errs.Wrap(OpMarkReportRead, errs.KindInfra, errors.New("mongodb report collection is nil"), nil)
	}

	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": reportID, "audiences.player_id": playerID},
		bson.M{"$set": bson.M{"audiences.$.read_at": time.Now()}},
	)
	if err != nil {
		return errs.Wrap(OpMarkReportRead, errs.KindInfra, err, map[string]any{"report_id": reportID})
	}
	if res.MatchedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	"github.com/riii111/DevTrackr-sub000/internal/domain"
)

type WorkLogRepository struct {
	coll *mongo.Collection
}

func NewWorkLogRepository(db *mongo.Database) *WorkLogRepository {
	return &WorkLogRepository{coll: db.Collection(collWorkLogs)}
}

func (r *WorkLogRepository) Create(ctx context.Context, log *domain.WorkLog) (string, error) {
	if log.ID.IsZero() {
		log.ID = bson.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, log); err != nil {
		return "", err
	}
	return log.ID.Hex(), nil
}

func (r *WorkLogRepository) GetByID(ctx context.Context, id string) (*domain.WorkLog, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var log domain.WorkLog
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&log); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (r *WorkLogRepository) Update(ctx context.Context, log *domain.WorkLog) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": log.ID}, log)
	return err
}

// SumActualMinutesByProject recomputes the project's contribution total; the
// reconciliation worker multiplies by 60 before writing it back.
func (r *WorkLogRepository) SumActualMinutesByProject(ctx context.Context, projectID string) (int64, error) {
	oid, err := bson.ObjectIDFromHex(projectID)
	if err != nil {
		return 0, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "project_id", Value: oid}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$actual_work_minutes", 0}}}}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)
	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

var _ ports.WorkLogRepository = (*WorkLogRepository)(nil)

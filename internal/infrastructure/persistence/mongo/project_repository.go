package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	"github.com/riii111/DevTrackr-sub000/internal/domain"
)

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(collProjects)}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if project.ID.IsZero() {
		project.ID = bson.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, project)
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var project domain.Project
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&project); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// IncrementTotalWorkingTime uses $inc so concurrent work-log writers on the
// same project cannot lose updates to a read-modify-write race.
func (r *ProjectRepository) IncrementTotalWorkingTime(ctx context.Context, id string, deltaSeconds int64) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$inc": bson.M{"total_working_time": deltaSeconds},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("project not found for aggregate update")
	}
	return nil
}

func (r *ProjectRepository) SetTotalWorkingTime(ctx context.Context, id string, seconds int64) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"total_working_time": seconds, "updated_at": time.Now()},
	})
	return err
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

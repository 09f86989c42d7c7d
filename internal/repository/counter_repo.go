package repository

import (
	"context"
	"errors"

	"devfolio/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// VisitorCounter is the document id of the site visitor counter.
const VisitorCounter = "visitors"

type CounterRepository interface {
	// Get returns 0 when the counter document does not exist.
	Get(ctx context.Context, name string) (int64, error)
}

type mongoCounterRepo struct {
	collection *mongo.Collection
}

func NewMongoCounterRepo(db *mongo.Database) CounterRepository {
	return &mongoCounterRepo{
		collection: db.Collection(domain.CollectionCounters),
	}
}

func (r *mongoCounterRepo) Get(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Count int64 `bson:"count"`
	}
	err := r.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, wrapErr("get", domain.CollectionCounters, err)
	}
	return doc.Count, nil
}

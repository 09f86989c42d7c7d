package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Unsubscribe releases a subscription. Safe to call more than once.
type Unsubscribe func()

// RecordStore is the document store seen by the rest of the service.
// Every error returned is a *domain.StoreError.
type RecordStore[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	// FetchOne returns nil, nil when the record does not exist.
	FetchOne(ctx context.Context, id string) (*T, error)
	FetchByField(ctx context.Context, field string, value any) ([]T, error)
	Create(ctx context.Context, record T) (string, error)
	Increment(ctx context.Context, id, field string, delta int) error
	// Subscribe delivers the full current collection once and then again after
	// every change, until unsubscribed or until onError is called.
	Subscribe(ctx context.Context, onSnapshot func([]T), onError func(error)) Unsubscribe
	Name() string
}

type mongoRecordStore[T any] struct {
	collection *mongo.Collection
}

func NewMongoRecordStore[T any](db *mongo.Database, name string) RecordStore[T] {
	return &mongoRecordStore[T]{
		collection: db.Collection(name),
	}
}

func (r *mongoRecordStore[T]) Name() string {
	return r.collection.Name()
}

func (r *mongoRecordStore[T]) FetchAll(ctx context.Context) ([]T, error) {
	return r.find(ctx, "fetchAll", bson.M{})
}

func (r *mongoRecordStore[T]) FetchByField(ctx context.Context, field string, value any) ([]T, error) {
	return r.find(ctx, "fetchByField", bson.M{field: value})
}

func (r *mongoRecordStore[T]) find(ctx context.Context, op string, filter bson.M) ([]T, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, wrapErr(op, r.Name(), err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err = cursor.All(ctx, &results); err != nil {
		return nil, wrapErr(op, r.Name(), err)
	}
	return results, nil
}

func (r *mongoRecordStore[T]) FetchOne(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// 無效的 ID 視為不存在
		return nil, nil
	}

	var record T
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("fetchOne", r.Name(), err)
	}
	return &record, nil
}

func (r *mongoRecordStore[T]) Create(ctx context.Context, record T) (string, error) {
	res, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return "", wrapErr("create", r.Name(), err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (r *mongoRecordStore[T]) Increment(ctx context.Context, id, field string, delta int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return wrapErr("increment", r.Name(), fmt.Errorf("invalid id %q: %w", id, err))
	}
	update := bson.M{"$inc": bson.M{field: delta}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return wrapErr("increment", r.Name(), err)
}

// Subscribe opens a change stream (requires a replica set) and re-reads the
// whole collection on each event, so callers always see full snapshots.
func (r *mongoRecordStore[T]) Subscribe(ctx context.Context, onSnapshot func([]T), onError func(error)) Unsubscribe {
	subCtx, cancel := context.WithCancel(ctx)
	var once sync.Once

	go func() {
		defer cancel()

		// Watch first so that no change between the initial read and the
		// stream start is lost.
		stream, err := r.collection.Watch(subCtx, mongo.Pipeline{})
		if err != nil {
			if subCtx.Err() == nil {
				onError(wrapErr("subscribe", r.Name(), err))
			}
			return
		}
		defer stream.Close(context.Background())

		if !r.deliver(subCtx, onSnapshot, onError) {
			return
		}
		for stream.Next(subCtx) {
			if !r.deliver(subCtx, onSnapshot, onError) {
				return
			}
		}

		if subCtx.Err() != nil {
			return
		}
		err = stream.Err()
		if err == nil {
			err = errors.New("change stream closed by server")
		}
		onError(wrapErr("subscribe", r.Name(), err))
	}()

	return func() {
		once.Do(func() {
			logrus.Debugf("[Store] 取消訂閱 %s", r.Name())
			cancel()
		})
	}
}

func (r *mongoRecordStore[T]) deliver(ctx context.Context, onSnapshot func([]T), onError func(error)) bool {
	records, err := r.FetchAll(ctx)
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		onError(err)
		return false
	}
	onSnapshot(records)
	return true
}

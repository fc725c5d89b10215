package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Query describes a filtered, sorted and optionally windowed read.
// A zero Limit means no limit.
type Query struct {
	Filter bson.M
	Sort   bson.D
	Skip   int64
	Limit  int64
}

// Repository is the document store seen by the handlers. Every method touches a
// single document (or a read-only set), so no multi-document transaction is needed.
type Repository[T any] interface {
	Find(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*T, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)

	// Insert stores doc as is; callers assign the id and timestamps.
	Insert(ctx context.Context, doc *T) error

	// UpdateByID applies set as a $set and returns the document after the update.
	UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*T, error)

	// Toggle atomically flips a boolean field. Every implied field is forced
	// to true when field ends up true.
	Toggle(ctx context.Context, id bson.ObjectID, field string, implied ...string) (*T, error)

	// Increment atomically adds by to a numeric field.
	Increment(ctx context.Context, id bson.ObjectID, field string, by int) (*T, error)

	DeleteByID(ctx context.Context, id bson.ObjectID) error

	// FindOneOrInsert returns the first document matching filter, inserting
	// defaults when there is none.
	FindOneOrInsert(ctx context.Context, filter bson.M, defaults *T) (*T, error)
}

func filterOrAll(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return filter
}

var (
	_ Repository[bson.M] = (*MongoRepository[bson.M])(nil)
	_ Repository[bson.M] = (*MemoryRepository[bson.M])(nil)
)

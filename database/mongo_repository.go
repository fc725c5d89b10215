package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoRepository implements Repository on top of a mongo collection.
type MongoRepository[T any] struct {
	col *mongo.Collection
}

func NewMongoRepository[T any](col *mongo.Collection) *MongoRepository[T] {
	return &MongoRepository[T]{col: col}
}

func (r *MongoRepository[T]) Find(ctx context.Context, q Query) ([]T, error) {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := r.col.Find(ctx, filterOrAll(q.Filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoRepository[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.col.CountDocuments(ctx, filterOrAll(filter))
}

func (r *MongoRepository[T]) FindByID(ctx context.Context, id bson.ObjectID) (*T, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	return decodeSingle[T](r.col.FindOne(ctx, filterOrAll(filter)))
}

func (r *MongoRepository[T]) Insert(ctx context.Context, doc *T) error {
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Join(ErrDuplicateKey, err)
		}
		return err
	}
	return nil
}

func (r *MongoRepository[T]) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*T, error) {
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}
	doc, err := r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return nil, errors.Join(ErrDuplicateKey, err)
	}
	return doc, err
}

func (r *MongoRepository[T]) Toggle(ctx context.Context, id bson.ObjectID, field string, implied ...string) (*T, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: field, Value: bson.D{{Key: "$not", Value: bson.A{"$" + field}}}}}}},
	}
	for _, f := range implied {
		pipeline = append(pipeline, bson.D{{Key: "$set", Value: bson.D{
			{Key: f, Value: bson.D{{Key: "$or", Value: bson.A{"$" + f, "$" + field}}}},
		}}})
	}
	return r.findOneAndUpdate(ctx, id, pipeline)
}

func (r *MongoRepository[T]) Increment(ctx context.Context, id bson.ObjectID, field string, by int) (*T, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$inc": bson.M{field: by}})
}

func (r *MongoRepository[T]) DeleteByID(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository[T]) FindOneOrInsert(ctx context.Context, filter bson.M, defaults *T) (*T, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	res := r.col.FindOneAndUpdate(ctx, filterOrAll(filter), bson.M{"$setOnInsert": defaults}, opts)
	return decodeSingle[T](res)
}

func (r *MongoRepository[T]) findOneAndUpdate(ctx context.Context, id bson.ObjectID, update any) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeSingle[T](r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts))
}

func decodeSingle[T any](res *mongo.SingleResult) (*T, error) {
	var doc T
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

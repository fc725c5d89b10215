package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes backing the list sort orders and the
// username uniqueness constraint. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionsCollection: {
			{Keys: bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		ExpertiseCollection: {
			{Keys: bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		TeamCollection: {
			{Keys: bson.D{{Key: "order", Value: 1}}},
		},
		ProjectsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		TestimonialsCollection: {
			{Keys: bson.D{{Key: "isApproved", Value: 1}, {Key: "isFeatured", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		MessagesCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

package database

import (
	"context"
	"time"

	"github.com/princinho/stonevitrine/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// GetOrCreateSettings returns the settings singleton, creating it with the
// defaults on first access. Concurrent first reads still yield one document.
func GetOrCreateSettings(ctx context.Context, repo Repository[models.Settings]) (*models.Settings, error) {
	defaults := models.DefaultSettings(time.Now().UTC())
	return repo.FindOneOrInsert(ctx, bson.M{}, &defaults)
}

package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/logger"
	"github.com/princinho/stonevitrine/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// SyncAdminUser makes sure the configured admin account exists. With overwrite set,
// an existing account gets its password hash replaced by the configured password.
// An admin renamed in the back office is still recognised by its role, so a
// restart does not create a second account.
func SyncAdminUser(ctx context.Context, users database.Repository[models.User], username, password string, overwrite bool) (created bool, err error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, fmt.Errorf("missing ADMIN_USER or ADMIN_PASS")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	log := logger.App().WithField("username", username)
	now := time.Now().UTC()

	existing, err := users.FindOne(ctx, bson.M{"username": username})
	if errors.Is(err, database.ErrNotFound) {
		existing, err = users.FindOne(ctx, bson.M{"role": string(models.RoleAdmin)})
		if err == nil {
			log = log.WithField("storedUsername", existing.Username)
			log.Info("admin account was renamed, keeping the stored username")
		}
	}
	switch {
	case errors.Is(err, database.ErrNotFound):
		user := &models.User{
			ID:           bson.NewObjectID(),
			Username:     username,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Insert(ctx, user); err != nil {
			if IsDuplicateKey(err) {
				// another instance won the race
				return false, nil
			}
			return false, fmt.Errorf("seed admin insert failed: %w", err)
		}
		log.Info("admin user created")
		return true, nil
	case err != nil:
		return false, fmt.Errorf("lookup admin user: %w", err)
	}

	if !overwrite {
		log.Info("admin user already exists")
		return false, nil
	}
	if _, err := users.UpdateByID(ctx, existing.ID, bson.M{"passwordHash": hash, "updatedAt": now}); err != nil {
		return false, fmt.Errorf("sync admin password: %w", err)
	}
	log.Info("admin password synced from configuration")
	return false, nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/princinho/stonevitrine/logger"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names.
const (
	UsersCollection        = "users"
	CollectionsCollection  = "collections"
	ProjectsCollection     = "projects"
	TeamCollection         = "teammembers"
	TestimonialsCollection = "testimonials"
	ExpertiseCollection    = "expertises"
	MessagesCollection     = "messages"
	SettingsCollection     = "settings"
)

// Connect opens a client and pings the primary before handing it out.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.App().Info("Pinged your deployment. You successfully connected to MongoDB!")
	return client, nil
}

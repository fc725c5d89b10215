package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Expertise is one of the services advertised on the home page.
type Expertise struct {
	Id          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Icon        string        `bson:"icon" json:"icon"`
	Order       int           `bson:"order" json:"order"`
	IsActive    bool          `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}

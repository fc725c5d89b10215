package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Collection is a catalog line (granite, marble, ...) shown on the public site.
type Collection struct {
	Id                bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string        `bson:"name" json:"name"`
	Description       string        `bson:"description" json:"description"`
	ExpertDescription string        `bson:"expertDescription" json:"expertDescription"`
	Features          []string      `bson:"features" json:"features"`
	ImageUrl          string        `bson:"imageUrl" json:"imageUrl"`
	Order             int           `bson:"order" json:"order"`
	IsActive          bool          `bson:"isActive" json:"isActive"`
	IsAvailable       bool          `bson:"isAvailable" json:"isAvailable"`
	PricePerM2        float64       `bson:"pricePerM2" json:"pricePerM2"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
}

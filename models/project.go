package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const DefaultProjectCategory = "Général"

type Project struct {
	Id          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	ImageUrl    string        `bson:"imageUrl" json:"imageUrl"`
	Category    string        `bson:"category" json:"category"`
	Materials   []string      `bson:"materials" json:"materials"`
	TotalPrice  float64       `bson:"totalPrice" json:"totalPrice"`
	Dimensions  string        `bson:"dimensions" json:"dimensions"`
	Likes       int           `bson:"likes" json:"likes"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}

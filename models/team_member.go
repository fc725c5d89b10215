package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TeamMember struct {
	Id        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Role      string        `bson:"role" json:"role"`
	ImageUrl  string        `bson:"imageUrl" json:"imageUrl"`
	Bio       string        `bson:"bio" json:"bio"`
	Order     int           `bson:"order" json:"order"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

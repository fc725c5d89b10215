package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Testimonial is a customer review. Only approved ones are public and
// featuring one approves it as well.
type Testimonial struct {
	Id         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string        `bson:"name" json:"name"`
	Email      string        `bson:"email" json:"email"`
	Company    string        `bson:"company" json:"company"`
	Job        string        `bson:"job" json:"job"`
	Rating     int           `bson:"rating" json:"rating"`
	Message    string        `bson:"message" json:"message"`
	ImageUrl   string        `bson:"imageUrl" json:"imageUrl"`
	IsApproved bool          `bson:"isApproved" json:"isApproved"`
	IsFeatured bool          `bson:"isFeatured" json:"isFeatured"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Message is a contact form submission.
type Message struct {
	Id        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Email     string        `bson:"email" json:"email"`
	Subject   string        `bson:"subject" json:"subject"`
	Message   string        `bson:"message" json:"message"`
	Read      bool          `bson:"read" json:"read"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Category groups artworks.
type Category struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Name        string        `bson:"name"`
	Description string        `bson:"description,omitempty"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Food struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Price float64            `bson:"price" json:"price"`
	Image string             `bson:"image" json:"image"`
}

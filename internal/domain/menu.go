package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Menu is a timestamped selection of food IDs. The record with the maximum
// date is the current menu; under the in-place update strategy there is at
// most one record in the collection.
type Menu struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date    time.Time          `bson:"date" json:"date"`
	FoodIDs []string           `bson:"foodIds" json:"foodIds"`
}

func (m *Menu) References(foodID string) bool {
	for _, id := range m.FoodIDs {
		if id == foodID {
			return true
		}
	}
	return false
}

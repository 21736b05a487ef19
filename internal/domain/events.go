package domain

import "time"

type MenuUpdatedEvent struct {
	EventType string    `json:"event_type"`
	MenuID    string    `json:"menu_id"`
	FoodIDs   []string  `json:"food_ids"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventMenuUpdated = "menu.updated"
	EventMenuPruned  = "menu.pruned"
)

package repo

import (
	"context"
	"time"

	"github.com/foodcanteen/foodmenu/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuRepository interface {
	// GetCurrent returns the menu record with the maximum date, or
	// domain.ErrNotFound when no record exists.
	GetCurrent(ctx context.Context) (*domain.Menu, error)
	Create(ctx context.Context, menu *domain.Menu) error
	// UpdateFoodIDs rewrites an existing record's selection and date in place.
	UpdateFoodIDs(ctx context.Context, id primitive.ObjectID, foodIDs []string, date time.Time) error
	// PullFood removes a single food ID from a record without touching its date.
	PullFood(ctx context.Context, id primitive.ObjectID, foodID string) error
}

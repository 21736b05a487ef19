package repo

import (
	"context"

	"github.com/foodcanteen/foodmenu/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodUpdate carries the fields of a partial update; nil fields are left
// untouched.
type FoodUpdate struct {
	Name  *string
	Price *float64
	Image *string
}

func (u FoodUpdate) Empty() bool {
	return u.Name == nil && u.Price == nil && u.Image == nil
}

type FoodRepository interface {
	Create(ctx context.Context, food *domain.Food) error
	GetAll(ctx context.Context) ([]domain.Food, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Food, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Food, error)
	Update(ctx context.Context, id primitive.ObjectID, update FoodUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/foodcanteen/foodmenu/internal/domain"
	"github.com/foodcanteen/foodmenu/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrMenuPrune marks a delete that committed but whose menu cleanup failed.
// The food is gone; the caller decides how to surface the partial success.
var ErrMenuPrune = errors.New("menu prune failed")

// FoodPatch carries a partial update; nil fields are left untouched.
type FoodPatch struct {
	Name  *string
	Price *string
	Image *string
}

type FoodService struct {
	foodRepo repo.FoodRepository
	menu     *MenuService
	logger   *zap.SugaredLogger
}

func NewFoodService(
	foodRepo repo.FoodRepository,
	menu *MenuService,
	logger *zap.SugaredLogger,
) *FoodService {
	return &FoodService{
		foodRepo: foodRepo,
		menu:     menu,
		logger:   logger,
	}
}

func (s *FoodService) AddFood(ctx context.Context, name, price, image string) (*domain.Food, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(price) == "" || strings.TrimSpace(image) == "" {
		return nil, fmt.Errorf("%w: name, price and image are required", domain.ErrValidation)
	}

	parsedPrice, err := parsePrice(price)
	if err != nil {
		return nil, err
	}

	food := &domain.Food{
		Name:  name,
		Price: parsedPrice,
		Image: image,
	}

	if err := s.foodRepo.Create(ctx, food); err != nil {
		return nil, fmt.Errorf("failed to add food: %w", err)
	}

	s.logger.Infow("food added", "food_id", food.ID.Hex(), "name", food.Name)

	return food, nil
}

func (s *FoodService) ListFoods(ctx context.Context) ([]domain.Food, error) {
	foods, err := s.foodRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	if foods == nil {
		foods = []domain.Food{}
	}

	return foods, nil
}

// UpdateFood applies any non-empty subset of {name, price, image} to an
// existing food. An empty patch is rejected rather than treated as a no-op.
func (s *FoodService) UpdateFood(ctx context.Context, id primitive.ObjectID, patch FoodPatch) error {
	update := repo.FoodUpdate{Name: patch.Name, Image: patch.Image}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
	}

	if patch.Image != nil && strings.TrimSpace(*patch.Image) == "" {
		return fmt.Errorf("%w: image must not be empty", domain.ErrValidation)
	}

	if patch.Price != nil {
		parsedPrice, err := parsePrice(*patch.Price)
		if err != nil {
			return err
		}
		update.Price = &parsedPrice
	}

	if update.Empty() {
		return fmt.Errorf("%w: at least one of name, price or image is required", domain.ErrValidation)
	}

	// surface an unknown id instead of writing blindly
	if _, err := s.foodRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to check food: %w", err)
	}

	if err := s.foodRepo.Update(ctx, id, update); err != nil {
		return fmt.Errorf("failed to update food: %w", err)
	}

	s.logger.Infow("food updated", "food_id", id.Hex())

	return nil
}

// DeleteFood removes a food and then prunes it from the current menu. The
// prune runs after the delete commits and is never rolled back into it: on
// prune failure the food stays deleted and ErrMenuPrune is returned.
func (s *FoodService) DeleteFood(ctx context.Context, id primitive.ObjectID) error {
	if err := s.foodRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete food: %w", err)
	}

	s.logger.Infow("food deleted", "food_id", id.Hex())

	if err := s.menu.PruneFood(ctx, id.Hex()); err != nil {
		s.logger.Errorw("failed to prune deleted food from menu", "food_id", id.Hex(), "error", err)
		return fmt.Errorf("%w: %s", ErrMenuPrune, id.Hex())
	}

	return nil
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: price must be a number", domain.ErrValidation)
	}
	if price < 0 {
		return 0, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}

	return price, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/foodcanteen/foodmenu/internal/domain"
	"github.com/foodcanteen/foodmenu/internal/queue"
	"github.com/foodcanteen/foodmenu/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MenuService struct {
	menuRepo repo.MenuRepository
	foodRepo repo.FoodRepository
	broker   queue.Broker
	logger   *zap.SugaredLogger
}

func NewMenuService(
	menuRepo repo.MenuRepository,
	foodRepo repo.FoodRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *MenuService {
	return &MenuService{
		menuRepo: menuRepo,
		foodRepo: foodRepo,
		broker:   broker,
		logger:   logger,
	}
}

// SetMenu validates the candidate selection and commits it as the current
// menu. Validation is reject-any-invalid: every candidate ID must resolve to
// an existing food. The commit is in place: the current record is rewritten
// rather than a new one appended, so no menu history accumulates.
func (s *MenuService) SetMenu(ctx context.Context, foodIDs []string) (*domain.Menu, error) {
	if len(foodIDs) == 0 {
		return nil, fmt.Errorf("%w: menu must be a non-empty array of food ids", domain.ErrValidation)
	}

	objectIDs := make([]primitive.ObjectID, 0, len(foodIDs))
	for _, id := range foodIDs {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid food id %q", domain.ErrValidation, id)
		}
		objectIDs = append(objectIDs, objectID)
	}

	foods, err := s.foodRepo.GetByIDs(ctx, objectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve menu foods: %w", err)
	}

	if len(foods) != len(foodIDs) {
		return nil, fmt.Errorf("%w: menu references unknown food ids", domain.ErrValidation)
	}

	now := time.Now()

	current, err := s.menuRepo.GetCurrent(ctx)
	switch {
	case err == nil:
		if err := s.menuRepo.UpdateFoodIDs(ctx, current.ID, foodIDs, now); err != nil {
			return nil, fmt.Errorf("failed to update menu: %w", err)
		}
		current.FoodIDs = foodIDs
		current.Date = now
	case errors.Is(err, domain.ErrNotFound):
		current = &domain.Menu{Date: now, FoodIDs: foodIDs}
		if err := s.menuRepo.Create(ctx, current); err != nil {
			return nil, fmt.Errorf("failed to create menu: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to get current menu: %w", err)
	}

	s.publishMenuEvent(ctx, domain.EventMenuUpdated, current)

	s.logger.Infow("menu committed", "menu_id", current.ID.Hex(), "foods", len(current.FoodIDs))

	return current, nil
}

// CurrentMenu resolves the current selection to full food records, in
// selection order. No menu yet is a valid steady state and yields an empty
// slice.
func (s *MenuService) CurrentMenu(ctx context.Context) ([]domain.Food, error) {
	current, err := s.menuRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Food{}, nil
		}
		return nil, fmt.Errorf("failed to get current menu: %w", err)
	}

	objectIDs := make([]primitive.ObjectID, 0, len(current.FoodIDs))
	for _, id := range current.FoodIDs {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			s.logger.Warnw("skipping malformed food id in menu", "menu_id", current.ID.Hex(), "food_id", id)
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}

	foods, err := s.foodRepo.GetByIDs(ctx, objectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve menu foods: %w", err)
	}

	byID := make(map[string]domain.Food, len(foods))
	for _, food := range foods {
		byID[food.ID.Hex()] = food
	}

	// referential integrity is enforced at write time only; ids that no
	// longer resolve are skipped on read
	ordered := make([]domain.Food, 0, len(current.FoodIDs))
	for _, id := range current.FoodIDs {
		if food, ok := byID[id]; ok {
			ordered = append(ordered, food)
		}
	}

	return ordered, nil
}

// PruneFood removes a deleted food's id from the current menu. The $pull is
// atomic on the record read here, but a SetMenu landing between the read and
// the pull can still leave the pruned id in the newer selection; that race
// is accepted for lack of a cross-document guard.
func (s *MenuService) PruneFood(ctx context.Context, foodID string) error {
	current, err := s.menuRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get current menu: %w", err)
	}

	if !current.References(foodID) {
		return nil
	}

	if err := s.menuRepo.PullFood(ctx, current.ID, foodID); err != nil {
		return fmt.Errorf("failed to prune food from menu: %w", err)
	}

	remaining := make([]string, 0, len(current.FoodIDs))
	for _, id := range current.FoodIDs {
		if id != foodID {
			remaining = append(remaining, id)
		}
	}
	current.FoodIDs = remaining

	s.publishMenuEvent(ctx, domain.EventMenuPruned, current)

	s.logger.Infow("food pruned from menu", "menu_id", current.ID.Hex(), "food_id", foodID)

	return nil
}

// publishMenuEvent is fire-and-forget: a publish failure is logged and never
// surfaced to the caller, and the committed menu is not rolled back.
func (s *MenuService) publishMenuEvent(ctx context.Context, eventType string, menu *domain.Menu) {
	event := domain.MenuUpdatedEvent{
		EventType: eventType,
		MenuID:    menu.ID.Hex(),
		FoodIDs:   menu.FoodIDs,
		Timestamp: time.Now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal menu event", "menu_id", event.MenuID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueMenuUpdates, eventBytes); err != nil {
		s.logger.Errorw("failed to publish menu event", "menu_id", event.MenuID, "error", err)
	}
}

package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/foodcanteen/foodmenu/internal/domain"
	"github.com/foodcanteen/foodmenu/internal/notifier"
	"github.com/foodcanteen/foodmenu/internal/queue"
	"github.com/foodcanteen/foodmenu/internal/ratelimiter"
	"github.com/foodcanteen/foodmenu/internal/repo"
	"github.com/foodcanteen/foodmenu/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memFoodRepo struct {
	mu    sync.Mutex
	foods map[primitive.ObjectID]domain.Food
	order []primitive.ObjectID
}

func newMemFoodRepo() *memFoodRepo {
	return &memFoodRepo{foods: make(map[primitive.ObjectID]domain.Food)}
}

func (r *memFoodRepo) Create(_ context.Context, food *domain.Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if food.ID.IsZero() {
		food.ID = primitive.NewObjectID()
	}
	r.foods[food.ID] = *food
	r.order = append(r.order, food.ID)
	return nil
}

func (r *memFoodRepo) GetAll(_ context.Context) ([]domain.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	foods := make([]domain.Food, 0, len(r.order))
	for _, id := range r.order {
		foods = append(foods, r.foods[id])
	}
	return foods, nil
}

func (r *memFoodRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	food, ok := r.foods[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &food, nil
}

func (r *memFoodRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[primitive.ObjectID]bool)
	var foods []domain.Food
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if food, ok := r.foods[id]; ok {
			foods = append(foods, food)
		}
	}
	return foods, nil
}

func (r *memFoodRepo) Update(_ context.Context, id primitive.ObjectID, update repo.FoodUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	food, ok := r.foods[id]
	if !ok {
		return domain.ErrNotFound
	}
	if update.Name != nil {
		food.Name = *update.Name
	}
	if update.Price != nil {
		food.Price = *update.Price
	}
	if update.Image != nil {
		food.Image = *update.Image
	}
	r.foods[id] = food
	return nil
}

func (r *memFoodRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.foods[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.foods, id)
	for i, got := range r.order {
		if got == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type memMenuRepo struct {
	mu      sync.Mutex
	records []domain.Menu
}

func (r *memMenuRepo) GetCurrent(_ context.Context) (*domain.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.records) == 0 {
		return nil, domain.ErrNotFound
	}

	current := r.records[0]
	for _, record := range r.records[1:] {
		if !record.Date.Before(current.Date) {
			current = record
		}
	}

	copied := current
	copied.FoodIDs = append([]string(nil), current.FoodIDs...)
	return &copied, nil
}

func (r *memMenuRepo) Create(_ context.Context, menu *domain.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if menu.ID.IsZero() {
		menu.ID = primitive.NewObjectID()
	}
	if menu.Date.IsZero() {
		menu.Date = time.Now()
	}
	r.records = append(r.records, *menu)
	return nil
}

func (r *memMenuRepo) UpdateFoodIDs(_ context.Context, id primitive.ObjectID, foodIDs []string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].FoodIDs = append([]string(nil), foodIDs...)
			r.records[i].Date = date
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memMenuRepo) PullFood(_ context.Context, id primitive.ObjectID, foodID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID != id {
			continue
		}
		kept := r.records[i].FoodIDs[:0]
		for _, got := range r.records[i].FoodIDs {
			if got != foodID {
				kept = append(kept, got)
			}
		}
		r.records[i].FoodIDs = kept
		return nil
	}
	return domain.ErrNotFound
}

type memBroker struct{}

func (memBroker) Publish(context.Context, string, []byte) error { return nil }

func (memBroker) Subscribe(context.Context, string, queue.MessageHandler) error { return nil }

func (memBroker) Close() error { return nil }

func newTestApplication() (*application, http.Handler) {
	logger := zap.NewNop().Sugar()

	foodRepo := newMemFoodRepo()
	menuRepo := &memMenuRepo{}

	menuService := service.NewMenuService(menuRepo, foodRepo, memBroker{}, logger)
	foodService := service.NewFoodService(foodRepo, menuService, logger)

	app := &application{
		config: config{
			addr: ":0",
			env:  "test",
			rateLimiter: ratelimiter.Config{
				RequestsPerTimeFrame: 1000,
				TimeFrame:            time.Second,
				Enabled:              false,
			},
		},
		logger:      logger,
		rateLimiter: ratelimiter.NewFixedWindowLimiter(1000, time.Second),
		foodService: foodService,
		menuService: menuService,
		hub:         notifier.NewHub(logger),
	}

	return app, app.mount()
}

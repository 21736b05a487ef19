package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/foodcanteen/foodmenu/internal/domain"
	"github.com/foodcanteen/foodmenu/internal/queue"
	"github.com/foodcanteen/foodmenu/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

type fakeFoodRepo struct {
	mu    sync.Mutex
	foods map[primitive.ObjectID]domain.Food
	order []primitive.ObjectID
}

func newFakeFoodRepo() *fakeFoodRepo {
	return &fakeFoodRepo{foods: make(map[primitive.ObjectID]domain.Food)}
}

func (r *fakeFoodRepo) Create(_ context.Context, food *domain.Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if food.ID.IsZero() {
		food.ID = primitive.NewObjectID()
	}
	r.foods[food.ID] = *food
	r.order = append(r.order, food.ID)
	return nil
}

func (r *fakeFoodRepo) GetAll(_ context.Context) ([]domain.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	foods := make([]domain.Food, 0, len(r.order))
	for _, id := range r.order {
		foods = append(foods, r.foods[id])
	}
	return foods, nil
}

func (r *fakeFoodRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	food, ok := r.foods[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &food, nil
}

func (r *fakeFoodRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Food, error) {
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
	// store-native order is not the request order
	sort.Slice(foods, func(i, j int) bool { return foods[i].ID.Hex() < foods[j].ID.Hex() })
	return foods, nil
}

func (r *fakeFoodRepo) Update(_ context.Context, id primitive.ObjectID, update repo.FoodUpdate) error {
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

func (r *fakeFoodRepo) Delete(_ context.Context, id primitive.ObjectID) error {
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

type fakeMenuRepo struct {
	mu       sync.Mutex
	records  []domain.Menu
	failPull bool
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{}
}

func (r *fakeMenuRepo) GetCurrent(_ context.Context) (*domain.Menu, error) {
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

func (r *fakeMenuRepo) Create(_ context.Context, menu *domain.Menu) error {
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

func (r *fakeMenuRepo) UpdateFoodIDs(_ context.Context, id primitive.ObjectID, foodIDs []string, date time.Time) error {
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

func (r *fakeMenuRepo) PullFood(_ context.Context, id primitive.ObjectID, foodID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failPull {
		return errors.New("pull failed")
	}

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

func (r *fakeMenuRepo) recordCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.records)
}

type fakeBroker struct {
	mu          sync.Mutex
	published   map[string][][]byte
	failPublish bool
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{published: make(map[string][][]byte)}
}

func (b *fakeBroker) Publish(_ context.Context, queueName string, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failPublish {
		return errors.New("broker down")
	}
	b.published[queueName] = append(b.published[queueName], message)
	return nil
}

func (b *fakeBroker) Subscribe(context.Context, string, queue.MessageHandler) error {
	return nil
}

func (b *fakeBroker) Close() error { return nil }

func (b *fakeBroker) publishedTo(queueName string) [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([][]byte(nil), b.published[queueName]...)
}

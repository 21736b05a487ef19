package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/foodcanteen/foodmenu/internal/domain"
	"github.com/foodcanteen/foodmenu/internal/notifier"
	"github.com/foodcanteen/foodmenu/internal/queue"
	"github.com/foodcanteen/foodmenu/internal/service"
	"go.uber.org/zap"
)

// MenuBroadcastWorker consumes menu update events and pushes the resolved
// current menu to all live connections.
type MenuBroadcastWorker struct {
	menuService *service.MenuService
	broker      queue.Broker
	notifier    notifier.Notifier
	logger      *zap.SugaredLogger
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewMenuBroadcastWorker(
	menuService *service.MenuService,
	broker queue.Broker,
	notifier notifier.Notifier,
	logger *zap.SugaredLogger,
) *MenuBroadcastWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &MenuBroadcastWorker{
		menuService: menuService,
		broker:      broker,
		notifier:    notifier,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (w *MenuBroadcastWorker) Start() error {
	w.logger.Info("starting menu broadcast worker")

	return w.broker.Subscribe(w.ctx, queue.QueueMenuUpdates, w.handleMessage)
}

func (w *MenuBroadcastWorker) Stop() {
	w.logger.Info("stopping menu broadcast worker")
	w.cancel()
}

func (w *MenuBroadcastWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.MenuUpdatedEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal menu event", "error", err)
		return fmt.Errorf("failed to unmarshal menu event: %w", err)
	}

	w.logger.Infow("processing menu event", "menu_id", event.MenuID, "event_type", event.EventType)

	// re-read the menu instead of trusting the event payload so stale or
	// coalesced events still broadcast the latest state
	menu, err := w.menuService.CurrentMenu(ctx)
	if err != nil {
		w.logger.Errorw("failed to resolve current menu", "menu_id", event.MenuID, "error", err)
		return err
	}

	w.notifier.Broadcast(menu)

	return nil
}

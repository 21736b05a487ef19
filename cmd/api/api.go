package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodcanteen/foodmenu/internal/notifier"
	"github.com/foodcanteen/foodmenu/internal/queue"
	"github.com/foodcanteen/foodmenu/internal/ratelimiter"
	"github.com/foodcanteen/foodmenu/internal/service"
	"github.com/foodcanteen/foodmenu/internal/store/mongo"
	"github.com/foodcanteen/foodmenu/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

type application struct {
	config          config
	logger          *zap.SugaredLogger
	rateLimiter     ratelimiter.Limiter
	storage         *mongo.Storage
	broker          queue.Broker
	foodService     *service.FoodService
	menuService     *service.MenuService
	hub             *notifier.Hub
	broadcastWorker *worker.MenuBroadcastWorker
}

type config struct {
	addr        string
	env         string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Get("/", app.livenessHandler)
	r.Get("/health", app.healthCheckHandler)

	r.Post("/food", app.createFoodHandler)
	r.Get("/food", app.listFoodsHandler)
	r.Put("/food/{food_id}", app.updateFoodHandler)
	r.Delete("/food/{food_id}", app.deleteFoodHandler)

	r.Put("/menu", app.setMenuHandler)
	r.Get("/menu", app.getMenuHandler)

	r.Get("/ws", app.liveMenuHandler)

	return r
}

func (app *application) run(mux http.Handler) error {
	// workers
	if app.broadcastWorker != nil {
		if err := app.broadcastWorker.Start(); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.broadcastWorker != nil {
			app.broadcastWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}

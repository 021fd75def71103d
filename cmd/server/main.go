package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sandeepk/magshop/internal/config"
	"github.com/sandeepk/magshop/internal/es"
	"github.com/sandeepk/magshop/internal/handlers"
	"github.com/sandeepk/magshop/internal/logging"
	authmw "github.com/sandeepk/magshop/internal/middleware/auth"
	loggingmw "github.com/sandeepk/magshop/internal/middleware/logging"
	"github.com/sandeepk/magshop/internal/mykafka"
	"github.com/sandeepk/magshop/internal/repo"
	"github.com/sandeepk/magshop/internal/seed"
	"github.com/sandeepk/magshop/internal/service"
	httpserver "github.com/sandeepk/magshop/internal/transport/http"
	"github.com/sandeepk/magshop/internal/validator"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	brokers := []string{configuration.KAFKA_ADDRESS}
	topics := []string{"user_events", "order_events", "product_events"}
	prod, err := mykafka.NewProducer(brokers, topics)
	if err != nil {
		log.Fatal(err)
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		esClient = nil
	}

	store := repo.New(db)
	userSvc := service.NewUserService(store)
	productSvc := service.NewProductService(store, prod)
	orderSvc := service.NewOrderService(store, store, prod)

	seeder := &seed.Seeder{Users: store, Products: store}
	if err := seeder.Run(logging.IntoContext(context.Background(), logger)); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	guard := &authmw.Guard{JWTSecret: jwtSecret}

	deps := httpserver.Deps{
		Guard: guard,
		AuthHandler: &handlers.AuthHandler{
			Users:         userSvc,
			Tokens:        store,
			JWTSecret:     jwtSecret,
			RefreshSecret: refreshSecret,
			Producer:      prod,
		},
		UserHandler:    &handlers.UserHandler{Users: userSvc},
		ProductHandler: &handlers.ProductHandler{Svc: productSvc, ES: esClient, Index: "product"},
		OrderHandler:   &handlers.OrderHandler{Svc: orderSvc, Users: userSvc, Products: productSvc},
		AdminHandler:   &handlers.AdminHandler{Orders: orderSvc, Products: productSvc, Users: userSvc},
	}
	if esClient != nil {
		deps.SearchHandler = &handlers.SearchHandler{ES: esClient, Index: "product"}
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}

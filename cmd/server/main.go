package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shifat0/eshop-server/internal/category"
	"github.com/shifat0/eshop-server/internal/config"
	"github.com/shifat0/eshop-server/internal/db"
	"github.com/shifat0/eshop-server/internal/httpapi"
	"github.com/shifat0/eshop-server/internal/logger"
	"github.com/shifat0/eshop-server/internal/order"
	"github.com/shifat0/eshop-server/internal/product"
	"github.com/shifat0/eshop-server/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	categoryRepo := category.NewRepository(database)
	productRepo := product.NewRepository(database)
	userRepo := user.NewRepository(database)
	orderRepo := order.NewRepository(database)

	categoryService := category.NewService(categoryRepo)
	productService := product.NewService(productRepo, categoryRepo)
	userService := user.NewService(userRepo)

	pricing := order.NewPricingEngine(productRepo)
	orderService := order.NewService(orderRepo, pricing, userRepo)

	router := httpapi.NewRouter(cfg.APIBase, httpapi.Handlers{
		Orders:     httpapi.NewOrderHandler(orderService),
		Products:   httpapi.NewProductHandler(productService),
		Categories: httpapi.NewCategoryHandler(categoryService),
		Users:      httpapi.NewUserHandler(userService),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		logger.L().Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("api_base", cfg.APIBase),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

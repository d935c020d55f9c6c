package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webify-be/internal/cart"
	"webify-be/internal/checkout"
	"webify-be/internal/config"
	"webify-be/internal/db"
	"webify-be/internal/logger"
	"webify-be/internal/metrics"
	"webify-be/internal/middleware"
	"webify-be/internal/order"
	"webify-be/internal/payment"
	"webify-be/internal/product"
	"webify-be/internal/transport"
	"webify-be/internal/user"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)
	productHandler := product.NewHandler(productSvc)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)
	cartHandler := cart.NewHandler(cartSvc)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)
	orderHandler := order.NewHandler(orderSvc, cartSvc)

	gateway := payment.NewPaymobClient(cfg)
	paymentRepo := payment.NewRepository(database)
	paymentSvc := payment.NewService(paymentRepo, gateway, orderSvc, cfg.PaymobIframeID, cfg.FrontendURL)
	paymentHandler := payment.NewHandler(paymentSvc)

	checkoutHandler := checkout.NewHandler(checkout.NewSnapshotStore(redisClient))

	router := setupRouter(userHandler, productHandler, cartHandler, checkoutHandler, orderHandler, paymentHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL, "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})

	// auth runs before the limiter so authenticated requests are keyed by
	// user rather than by IP
	handler := logger.RequestIDMiddleware(
		logger.LoggingMiddleware(
			middleware.AuthMiddleware(
				middleware.RateLimitMiddleware(
					corsHandler.Handler(router),
				),
			),
		),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.L().Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

func setupRouter(
	userHandler *user.Handler,
	productHandler *product.Handler,
	cartHandler *cart.Handler,
	checkoutHandler *checkout.Handler,
	orderHandler *order.Handler,
	paymentHandler *payment.Handler,
) *httprouter.Router {
	router := httprouter.New()

	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		transport.RespondWithJSON(w, http.StatusOK, transport.M{
			"status":  "ok",
			"metrics": metrics.Snapshot(),
		})
	})

	router.POST("/api/auth/register/", userHandler.Register)
	router.POST("/api/auth/login/", userHandler.Login)
	router.POST("/api/auth/refresh/", userHandler.Refresh)
	router.GET("/api/auth/me/", userHandler.Me)

	router.GET("/api/products/", productHandler.List)
	router.GET("/api/products/:id/", productHandler.Get)

	router.GET("/api/cart/", cartHandler.Get)
	router.POST("/api/cart/", cartHandler.Sync)
	router.POST("/api/cart-items/", cartHandler.AddItem)
	router.PATCH("/api/cart-items/:id/", cartHandler.UpdateItem)
	router.DELETE("/api/cart-items/:id/", cartHandler.RemoveItem)

	router.POST("/api/checkout/snapshot/", checkoutHandler.SaveSnapshot)
	router.GET("/api/checkout/snapshot/", checkoutHandler.RestoreSnapshot)

	router.POST("/api/orders/", orderHandler.Create)
	router.GET("/api/orders/", orderHandler.List)
	router.GET("/api/orders/:id/", orderHandler.Get)

	router.POST("/api/payments/create-session/", paymentHandler.CreateSession)
	router.POST("/api/payments/confirm/", paymentHandler.Confirm)
	router.POST("/api/payments/webhook/", paymentHandler.Webhook)
	router.GET("/api/payments/response/", paymentHandler.RedirectResult)

	return router
}

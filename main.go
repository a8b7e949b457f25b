package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/dcode-github/luxury_realty/backend/app"
	"github.com/dcode-github/luxury_realty/backend/auth"
	"github.com/dcode-github/luxury_realty/backend/cache"
	"github.com/dcode-github/luxury_realty/backend/config"
	"github.com/dcode-github/luxury_realty/backend/routes"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

func setupRouter(a *app.App, cfg *config.Config) *mux.Router {
	router := mux.NewRouter()
	routes.Routes(router, a, cfg.APIPrefix, cfg.StaticDir)
	return router
}

func setupCache(ctx context.Context, cfg *config.Config) (cache.Cache, func()) {
	if cfg.RedisAddr == "" {
		utils.Logger.Info("REDIS_ADD not set; list caching disabled")
		return cache.Nop{}, func() {}
	}
	client, err := config.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		utils.Logger.WithError(err).Warn("Redis unavailable; list caching disabled")
		return cache.Nop{}, func() {}
	}
	return cache.NewRedisCache(client, cfg.CacheTTL), func() {
		if err := client.Close(); err != nil {
			utils.Logger.WithError(err).Error("Error closing Redis connection")
		}
	}
}

func main() {
	config.Init()

	cfg, err := config.Load()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	kv, err := config.OpenStore(startCtx, cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to open the key-value store")
	}

	responseCache, closeCache := setupCache(startCtx, cfg)
	defer closeCache()

	a := app.New(kv, responseCache, auth.NewService(kv, cfg.JWTKey, cfg.TokenTTL))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.Close(ctx)
		utils.Logger.Info("Store connection closed")
	}()

	if cfg.SeedOnStart {
		counts, err := a.SeedAll(startCtx)
		if err != nil {
			utils.Logger.WithError(err).Error("Seeding on start failed")
		} else {
			utils.Logger.WithField("seeded", counts).Info("Seed complete")
		}
	}

	router := setupRouter(a, cfg)

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.CombinedLoggingHandler(os.Stdout, corsOptions.Handler(router)),
	)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		utils.Logger.Infof("Server running on port %s (API under %s)", cfg.Port, cfg.APIPrefix)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.WithError(err).Fatal("Error starting server")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	utils.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		utils.Logger.WithError(err).Error("Error during server shutdown")
	}
	utils.Logger.Info("Server gracefully stopped")
}

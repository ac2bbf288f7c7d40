package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Saty-27/IskconJuhuWebsite-sub002/config"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/database"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/logging"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/router"
)

func main() {
	cfg := config.Load()
	log := logging.NewLogger(cfg.Server.Env)
	defer log.Sync()

	ctx := context.Background()
	client, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("database connect", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("database disconnect", zap.Error(err))
		}
	}()
	db := client.Database(cfg.Database.Name)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("database indexes", zap.Error(err))
	}
	database.SeedAdmin(ctx, db, log)

	engine := router.Setup(cfg, db, log)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Yeabkal66/BOTH-BACKEND/configs"
	"github.com/Yeabkal66/BOTH-BACKEND/configs/loader/dotEnvLoader"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/delivery/httpapi"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/delivery/telegram"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/repository/cachedEvents"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/repository/cloudinary"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/repository/mongodb"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/repository/rediscache"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/repository/sessionStore"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/usecase"
	"github.com/Yeabkal66/BOTH-BACKEND/pkg/logger"
	"github.com/Yeabkal66/BOTH-BACKEND/pkg/prometheus"
)

func main() {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	loader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(loader)
	log := logger.NewLogger(cfg)

	prometheus.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := mongodb.Connect(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	eventRepo := mongodb.NewEventRepo(db)
	if err := eventRepo.EnsureIndexes(ctx); err != nil {
		log.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}
	photoRepo := mongodb.NewPhotoRepo(db)

	events := cachedEvents.NewCachedEvents(eventRepo, rediscache.New(cfg), log)
	storage := cloudinary.NewStorage(cfg)
	sessions := sessionStore.NewSessionStore()

	api, err := telegram.NewAPI(cfg)
	if err != nil {
		log.Error("failed to create telegram api", "error", err)
		os.Exit(1)
	}

	engine := usecase.NewCreation(sessions, events, photoRepo, storage,
		telegram.NewFiles(api), cfg.HTTP.PublicBaseURL, log)
	gate := usecase.NewGatekeeper(events, photoRepo, storage, log)
	query := usecase.NewQuery(events, photoRepo)

	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+cfg.HTTP.MetricsPort, nil)
	log.Info("Starting prometheus at port " + cfg.HTTP.MetricsPort)

	server := httpapi.NewServer(query, gate, log)
	go func() {
		if err := server.Listen(cfg.HTTP.Port); err != nil {
			log.Error("http server stopped", "error", err)
		}
	}()
	log.Info("Starting http api at port " + cfg.HTTP.Port)

	bot := telegram.NewBot(api, engine, log)
	log.Info("Starting bot")
	go bot.Run(ctx)

	<-done
	log.Info("Shutting down")

	bot.Stop()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "error", err)
	}
	log.Info("Service stopped")
}

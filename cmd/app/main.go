package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skyburst-games/popmeta/internal/bootstrap"
	"github.com/skyburst-games/popmeta/internal/challenge"
	"github.com/skyburst-games/popmeta/internal/config"
	"github.com/skyburst-games/popmeta/internal/ledger"
	"github.com/skyburst-games/popmeta/internal/reward"
	"github.com/skyburst-games/popmeta/internal/scheduler"
	"github.com/skyburst-games/popmeta/internal/server"
	"github.com/skyburst-games/popmeta/internal/sse"
	"github.com/skyburst-games/popmeta/internal/utils"
	"github.com/skyburst-games/popmeta/internal/worker"
)

const (
	workerPoolSize  = 2
	workerQueueSize = 16
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	gameCfg, err := config.LoadGameConfig(cfg.ConfigDir)
	if err != nil {
		slog.Error("Failed to load game configuration", "error", err, "dir", cfg.ConfigDir)
		os.Exit(1)
	}

	storage, dbPool, err := bootstrap.SetupStorage(cfg)
	if err != nil {
		slog.Error("Failed to set up storage", "error", err)
		os.Exit(1)
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(bootstrap.EventDefaultDeadLetterPath)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	// Live event stream: bridge bus events to connected SSE clients
	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()

	rng := utils.NewRand(time.Now().UnixNano())

	sampler, err := reward.NewService(gameCfg.Rewards, rng)
	if err != nil {
		slog.Error("Failed to initialize reward sampler", "error", err)
		os.Exit(1)
	}

	challengeService := challenge.NewService(gameCfg.Challenges, storage, publisher, rng)

	ledgerService, err := ledger.NewService(gameCfg, storage, publisher, sampler, challengeService, rng)
	if err != nil {
		slog.Error("Failed to initialize ledger", "error", err)
		os.Exit(1)
	}

	// Background jobs: periodic challenge day-boundary sweep
	pool := worker.NewPool(workerPoolSize, workerQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(cfg.ChallengeRefreshInterval, worker.NewChallengeRefreshJob(challengeService))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, ledgerService, challengeService, hub)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:           srv,
		Scheduler:        sched,
		WorkerPool:       pool,
		Hub:              hub,
		LedgerService:    ledgerService,
		ChallengeService: challengeService,
		Publisher:        publisher,
		Storage:          storage,
	})
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sleuth-client/internal/api"
	"sleuth-client/internal/config"
	"sleuth-client/internal/repo"
	"sleuth-client/internal/service"
	"sleuth-client/pkg/auth"
	"sleuth-client/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "path to config file")
	flag.Parse()

	// 1. Load Config
	if err := config.LoadConfig(configPath); err != nil {
		logger.InitLogger("debug")
		logger.Log.Fatal("Failed to load config", zap.String("path", configPath), zap.Error(err))
	}
	cfg := config.GlobalConfig

	// 2. Init Logger
	logger.InitLogger(cfg.Client.Mode)
	defer logger.Log.Sync()

	// 3. Resolve the local player
	playerID, err := resolvePlayer(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to resolve local player", zap.Error(err))
	}
	logger.Log.Info("Starting client...",
		zap.String("mode", cfg.Client.Mode),
		zap.String("sessionID", cfg.Session.ID),
		zap.String("playerID", playerID),
	)

	// 4. Init Journal & Redis
	repo.InitDB()
	repo.InitRedis()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 5. Init Session
	services := service.NewContainer(cfg, playerID, repo.DB, repo.RDB)
	if err := services.Start(ctx); err != nil {
		logger.Log.Fatal("Failed to start session", zap.Error(err))
	}

	// 6. Init Router
	if cfg.Client.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	api.RegisterRoutes(r, services)

	addr := fmt.Sprintf("127.0.0.1:%s", cfg.API.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := services.RunTurns(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Log.Info("Control API listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		select {
		case result := <-services.Ended():
			logger.Log.Info("Game over", zap.String("sessionID", result.SessionID), zap.Any("result", result.Payload))
			cancel()
		case <-gctx.Done():
		}

		services.Stop()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.Error("Client stopped with error", zap.Error(err))
		return
	}
	logger.Log.Info("Client stopped")
}

func resolvePlayer(cfg *config.Config) (string, error) {
	if cfg.Client.PlayerID != "" {
		return cfg.Client.PlayerID, nil
	}
	claims, err := auth.ParsePlayerToken(cfg.Auth.Token, cfg.Auth.Secret)
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	return claims.PlayerID, nil
}

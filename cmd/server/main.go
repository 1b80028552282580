package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"rank-predictor/internal/config"
	"rank-predictor/internal/features"
	"rank-predictor/internal/model"
	"rank-predictor/internal/pipeline"
	"rank-predictor/internal/riot"
	"rank-predictor/internal/server"
	"rank-predictor/internal/store"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var zlog *zap.Logger
	if cfg.Env == "production" {
		zlog, err = zap.NewProduction()
	} else {
		zlog, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	tree, err := model.Load(cfg.ModelPath)
	if err != nil {
		logger.Fatalw("failed to load model", "path", cfg.ModelPath, "error", err)
	}
	// A schema drift between extractor and artifact must stop the
	// process here, not mis-predict later.
	if err := tree.CheckSchema(features.ModelColumns); err != nil {
		logger.Fatalw("model schema mismatch", "path", cfg.ModelPath, "error", err)
	}

	client, err := riot.NewClient()
	if err != nil {
		logger.Fatalw("failed to create Riot client", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if valid, err := riot.NewKeyValidator().ValidateKey(ctx, os.Getenv("RIOT_API_KEY")); err != nil {
		logger.Warnw("could not verify Riot API key", "error", err)
	} else if !valid {
		logger.Fatal("Riot API key rejected; dev keys expire after 24h, renew at https://developer.riotgames.com")
	}

	var st *store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalw("failed to connect to database", "error", err)
		}
		defer st.Close()
		if err := st.EnsureSchema(ctx); err != nil {
			logger.Fatalw("failed to ensure schema", "error", err)
		}
		logger.Info("prediction archive enabled")
	}

	p := pipeline.New(client, tree, logger)
	srv := server.New(p, st, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.Router(cfg.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Infow("server starting", "port", cfg.Port, "region", client.Region())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("shutdown failed", "error", err)
	}
}

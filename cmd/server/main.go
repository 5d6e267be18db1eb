package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sitedesk/admin-api/internal/api"
	"github.com/sitedesk/admin-api/internal/core/service"
	"github.com/sitedesk/admin-api/internal/infrastructure/config"
	mongodb "github.com/sitedesk/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sitedesk/admin-api/internal/infrastructure/db/redis"
	"github.com/sitedesk/admin-api/internal/infrastructure/queue"
	"github.com/sitedesk/admin-api/internal/proxy"
	"github.com/sitedesk/admin-api/internal/session"
	"github.com/sitedesk/admin-api/pkg/logger"
)

// @title        sitedesk admin API
// @version      1.0
// @description  Website submission and user administration service.
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Backing stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	siteRepo := mongodb.NewSiteRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure user indexes")
	}
	if err := siteRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure site indexes")
	}

	// --- Background verification workers ---
	verifyService := service.NewVerifyService(siteRepo, nil, log)
	dispatcher := queue.NewDispatcher(cfg.VerifyWorkers, verifyService, log)
	dispatcher.Start(ctx)

	// --- Session state ---
	resolver := session.NewRoleResolver(userRepo, log)
	sessionCache := redisdb.NewSessionCache(rdb)
	sessions := session.NewStore(resolver, sessionCache, cfg.JWTSecret, log)
	go sessions.Run(ctx)

	// --- HTTP surfaces ---
	apiServer := api.NewRouter(db, rdb, sessions, resolver, dispatcher, cfg.JWTSecret, log)
	go func() {
		if err := apiServer.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("api server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("dashboard API listening")

	var proxyServer *echo.Echo
	if cfg.ServiceRoleKey == "" {
		log.Warn().Msg("SERVICE_ROLE_KEY not set, privileged proxy disabled")
	} else {
		directory := service.NewUserService(userRepo, siteRepo, log)
		proxyServer = proxy.NewRouter(directory, nil, cfg.ServiceRoleKey, log)
		go func() {
			if err := proxyServer.Start(":" + cfg.ProxyPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("proxy server failed")
			}
		}()
		log.Info().Str("port", cfg.ProxyPort).Msg("privileged proxy listening")
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("api shutdown failed")
	}
	if proxyServer != nil {
		if err := proxyServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("proxy shutdown failed")
		}
	}
}

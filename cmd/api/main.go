// Package main is the entry point for the cat listing API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/catconnect/cat-listing-api/internal/api"
	"github.com/catconnect/cat-listing-api/internal/core/service"
	mongodb "github.com/catconnect/cat-listing-api/internal/infrastructure/db/mongo"
	redisdb "github.com/catconnect/cat-listing-api/internal/infrastructure/db/redis"
	"github.com/catconnect/cat-listing-api/internal/infrastructure/http/handlers"
	"github.com/catconnect/cat-listing-api/internal/infrastructure/identity"
	"github.com/catconnect/cat-listing-api/internal/infrastructure/realtime"
	"github.com/catconnect/cat-listing-api/internal/infrastructure/social"
	"github.com/catconnect/cat-listing-api/internal/infrastructure/storage"
	"github.com/catconnect/cat-listing-api/internal/pkg/config"
	"github.com/catconnect/cat-listing-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Cat Listing API
// @version 1.0
// @description REST API for cat listings, chat, favorites and social posting.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description ID token, raw or prefixed with "Bearer ".
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "cat-listing-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()

	identities := mongodb.NewIdentityRepository(db, cfg.Mongo.Timeout)
	profiles := mongodb.NewProfileRepository(db, cfg.Mongo.Timeout)
	codes := mongodb.NewSignUpCodeRepository(db, cfg.Mongo.Timeout)
	cats := mongodb.NewCatRepository(db, cfg.Mongo.Timeout)
	messages := mongodb.NewMessageRepository(db, cfg.Mongo.Timeout)
	favorites := mongodb.NewFavoriteRepository(db, cfg.Mongo.Timeout)

	if err := mongodb.EnsureIndexes(ctx, identities, cats, messages, favorites); err != nil {
		log.Fatal().Err(err).Msg("failed to create MongoDB indexes")
	}

	// --- Gateways ---
	blobs, err := storage.NewS3Storage(ctx, storage.S3Config{
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		URLTTL:    cfg.S3.URLTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure object storage")
	}

	twitter := social.NewTwitterClient(social.TwitterConfig{
		APIURL:         cfg.Twitter.APIURL,
		ConsumerKey:    cfg.Twitter.ConsumerKey,
		ConsumerSecret: cfg.Twitter.ConsumerSecret,
		AccessToken:    cfg.Twitter.AccessToken,
		AccessSecret:   cfg.Twitter.AccessSecret,
		Timeout:        cfg.RequestTimeout,
	})

	// Revocation markers only need to outlive the tokens they cancel.
	revocations := redisdb.NewRevocationStore(rdb, cfg.Auth.TokenTTL)
	provider := identity.NewProvider(identities, revocations, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.PasswordMinLength)
	hub := realtime.NewHub(log)

	// --- Services ---
	svc := api.Services{
		Auth:      service.NewAuthService(provider, profiles, codes, log),
		Cats:      service.NewCatService(cats, blobs, log),
		Chat:      service.NewChatService(messages, hub, log),
		Favorites: service.NewFavoriteService(favorites),
		Tweets:    service.NewTweetService(twitter, log),
	}

	e := api.NewRouter(svc, api.Options{
		Prefix:         cfg.APIPrefix,
		MaxUploadBytes: cfg.MaxUploadBytes,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
		ChatFeed:       hub,
		HealthChecks: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("prefix", cfg.APIPrefix).Msg("starting cat listing API")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

package main

import (
	"context"
	"log/slog"
	"time"

	"medialit/database"
	"medialit/internal/cache"
	"medialit/internal/config"
	"medialit/internal/microservices/http-api/handler"
	"medialit/internal/microservices/http-api/middleware"
	"medialit/internal/microservices/http-api/repository"
	"medialit/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type deps struct {
	db        *gorm.DB
	cache     *cache.RedisCache // nil when Redis is off
	generator service.TextGenerator
	fetcher   service.MetaFetcher
	now       func() time.Time
	log       *slog.Logger
}

// newRouter wires repositories, services and handlers onto a gin engine.
func newRouter(cfg *config.Config, d deps) *gin.Engine {
	userRepo := repository.NewUserRepository(d.db)
	ratingRepo := repository.NewRatingRepository(d.db)
	surveyRepo := repository.NewMultiRatingRepository(d.db)
	mediaRepo := repository.NewMediaRepository(d.db)
	promptRepo := repository.NewPromptRepository(d.db)
	chatRepo := repository.NewChatHistoryRepository(d.db)
	moodRepo := repository.NewMoodRepository(d.db)

	validate := validator.New()
	userService := service.NewUserService(userRepo)
	ratingService := service.NewRatingService(ratingRepo)
	surveyService := service.NewMultiRatingService(surveyRepo)
	mediaService := service.NewMediaService(mediaRepo, d.fetcher)
	promptService := service.NewPromptService(promptRepo, d.cache, d.now, d.log)
	assistantService := service.NewAssistantService(d.generator, chatRepo, validate, d.log)
	analysisService := service.NewAnalysisService(service.AnalysisRepos{
		Users:   userRepo,
		Ratings: ratingRepo,
		Surveys: surveyRepo,
		Media:   mediaRepo,
		Prompts: promptRepo,
		Chat:    chatRepo,
	}, d.generator, validate, d.now, d.log)
	chatHistoryService := service.NewChatHistoryService(chatRepo, userRepo)
	moodService := service.NewMoodService(moodRepo)

	auth := middleware.NewAuthenticator(cfg.JWTSecret, cfg.JWTCookieName, userService, d.log)
	guards := handler.Guards{
		RequireAuth:  auth.RequireAuth(),
		OptionalAuth: auth.OptionalAuth(),
		RequireAdmin: middleware.RequireAdmin(),
		Throttle:     middleware.Throttle(d.cache, "ai", cfg.AIRequestsPerMinute, time.Minute, d.log),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.log))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	var redisCheck handler.Pinger
	if d.cache.Enabled() {
		redisCheck = d.cache.Ping
	}
	handler.NewHealthHandler(map[string]handler.Pinger{
		"database": func(ctx context.Context) error { return database.Ping(ctx, d.db) },
		"redis":    redisCheck,
	}).RegisterRoutes(r)

	api := r.Group("/api")
	handler.NewRatingHandler(ratingService).RegisterRoutes(api.Group("/performance"), guards)
	handler.NewMultiRatingHandler(surveyService).RegisterRoutes(api.Group("/multirating"), guards)
	handler.NewMediaHandler(mediaService).RegisterRoutes(api.Group("/media"), guards)
	handler.NewPromptHandler(promptService).RegisterRoutes(api.Group("/prompts"), guards)
	handler.NewAssistantHandler(assistantService, analysisService).RegisterRoutes(api, guards)
	handler.NewChatHistoryHandler(chatHistoryService).RegisterRoutes(api.Group("/chat-history"), guards)
	handler.NewMoodHandler(moodService).RegisterRoutes(api.Group("/mood"))

	return r
}

package main

import (
	"context"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aagmanpal/Intervyo/internal/analytics"
	"github.com/aagmanpal/Intervyo/internal/auth"
	"github.com/aagmanpal/Intervyo/internal/cache"
	"github.com/aagmanpal/Intervyo/internal/config"
	"github.com/aagmanpal/Intervyo/internal/database"
	"github.com/aagmanpal/Intervyo/internal/fetcher"
	"github.com/aagmanpal/Intervyo/internal/groq"
	"github.com/aagmanpal/Intervyo/internal/handler"
	"github.com/aagmanpal/Intervyo/internal/logger"
	"github.com/aagmanpal/Intervyo/internal/repository"
	"github.com/aagmanpal/Intervyo/internal/service"
	"github.com/aagmanpal/Intervyo/internal/storage"
)

type application struct {
	Config     *config.Config
	Logger     *zap.Logger
	Redis      *redis.Client
	Repository *repository.Repository
	Handler    *handler.Application
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	db, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		sugar.Fatal(err)
	}
	defer db.Client().Disconnect(ctx)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		sugar.Fatal(err)
	}

	rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cache.Ping(ctx, rdb); err != nil {
		// the leaderboard degrades to recompute-on-read without redis
		sugar.Warnw("redis unreachable, leaderboard cache disabled", "err", err)
		rdb = nil
	}

	uploader, err := storage.NewGCS(ctx, cfg.Storage.Bucket)
	if err != nil {
		sugar.Fatal(err)
	}

	var feedback service.FeedbackGenerator
	if cfg.Groq.APIKey != "" {
		feedback = groq.NewClient(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.Timeout)
	}

	repo := repository.New(db)
	interviewSvc := service.NewInterviewService(repo.Interviews, repo.Sessions, uploader, feedback, log)
	progressSvc := analytics.NewProgressService(repo.Interviews, log)
	leaderboardSvc := analytics.NewLeaderboardService(repo.Interviews, repo.Users, rdb, cfg.Redis.LeaderboardTTL, log)

	handlerApp := &handler.Application{
		Logger:      log,
		Interviews:  interviewSvc,
		Progress:    progressSvc,
		Leaderboard: leaderboardSvc,
		Users:       repo.Users,
		Resources:   repo.Resources,
		Jobs:        fetcher.NewJobFetcher(cfg.Career.JobBoardURL),
		TokenMaker:  auth.NewJWTMaker(cfg.JWT.Secret),
		TokenTTL:    cfg.JWT.AccessTokenTTL,
	}

	app := &application{
		Config:     cfg,
		Logger:     log,
		Redis:      rdb,
		Repository: repo,
		Handler:    handlerApp,
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}

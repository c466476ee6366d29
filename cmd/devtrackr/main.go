package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appauth "github.com/riii111/DevTrackr-sub000/internal/application/auth"
	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	"github.com/riii111/DevTrackr-sub000/internal/application/project"
	"github.com/riii111/DevTrackr-sub000/internal/application/worklog"
	"github.com/riii111/DevTrackr-sub000/internal/config"
	infraauth "github.com/riii111/DevTrackr-sub000/internal/infrastructure/auth"
	httprouter "github.com/riii111/DevTrackr-sub000/internal/infrastructure/http"
	"github.com/riii111/DevTrackr-sub000/internal/infrastructure/http/handlers"
	"github.com/riii111/DevTrackr-sub000/internal/infrastructure/http/middleware"
	mongostore "github.com/riii111/DevTrackr-sub000/internal/infrastructure/persistence/mongo"
	"github.com/riii111/DevTrackr-sub000/internal/infrastructure/queue"
	"github.com/riii111/DevTrackr-sub000/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongostore.Connect(ctx, cfg.Mongo.URI)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	db := client.Database(cfg.Mongo.Database)
	if err := mongostore.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("create indexes")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	userRepo := mongostore.NewUserRepository(db)
	tokenStore := mongostore.NewTokenStore(db)
	projectRepo := mongostore.NewProjectRepository(db)
	workLogRepo := mongostore.NewWorkLogRepository(db)

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, workLogRepo, projectRepo, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewNoopEnqueuer(log)
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	issuer := infraauth.NewTokenIssuer(
		[]byte(cfg.JWT.Secret),
		time.Duration(cfg.JWT.AccessExpiryHours)*time.Hour,
		time.Duration(cfg.JWT.RefreshExpiryDays)*24*time.Hour,
	)

	loginUC := appauth.NewLogin(userRepo, hasher, issuer, tokenStore)
	registerUC := appauth.NewRegister(userRepo, hasher, issuer, tokenStore)
	logoutUC := appauth.NewLogout(tokenStore)
	refreshUC := appauth.NewRefresh(issuer, tokenStore)
	verifyUC := appauth.NewVerifyAccessToken(issuer, tokenStore)

	createProjectUC := project.NewCreate(projectRepo)
	getProjectUC := project.NewGet(projectRepo)
	createWorkLogUC := worklog.NewCreate(workLogRepo, projectRepo, taskEnqueuer, log)
	updateWorkLogUC := worklog.NewUpdate(workLogRepo, projectRepo, taskEnqueuer, log)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	requireJWT := middleware.NewAuthValidator(verifyUC).Handler

	authHandler := handlers.NewAuthHandler(loginUC, registerUC, logoutUC, refreshUC, cfg.Cookie.Secure, log)
	projectHandler := handlers.NewProjectHandler(createProjectUC, getProjectUC, log)
	workLogHandler := handlers.NewWorkLogHandler(createWorkLogUC, updateWorkLogUC, log)
	healthHandler := handlers.NewHealthHandler(client, redisClient)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    authHandler,
		ProjectHandler: projectHandler,
		WorkLogHandler: workLogHandler,
		HealthHandler:  healthHandler,
		RequireJWT:     requireJWT,
		Log:            log,
		Secure:         secureMiddleware,
		IPRateLimit:    ipLimit,
		Metrics:        true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}

package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/SyncBAND/besteats/internal/config"
	"github.com/SyncBAND/besteats/internal/jobs/reset"
	pgrepo "github.com/SyncBAND/besteats/internal/repo/postgres"
	redrepo "github.com/SyncBAND/besteats/internal/repo/redis"
	authsvc "github.com/SyncBAND/besteats/internal/services/auth"
	rankingsvc "github.com/SyncBAND/besteats/internal/services/ranking"
	restaurantssvc "github.com/SyncBAND/besteats/internal/services/restaurants"
	settingssvc "github.com/SyncBAND/besteats/internal/services/settings"
	userssvc "github.com/SyncBAND/besteats/internal/services/users"
	votingsvc "github.com/SyncBAND/besteats/internal/services/voting"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	resetJob   *reset.Job
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	loc, err := time.LoadLocation(cfg.Voting.Timezone)
	if err != nil {
		log.Warn("invalid voting timezone, falling back to UTC",
			zap.String("timezone", cfg.Voting.Timezone),
			zap.Error(err),
		)
		loc = time.UTC
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	rankingCache := redrepo.NewRankingCacheRepo(redisClient, cfg.Voting.RankingCacheTTL)
	resetLock := redrepo.NewResetLockRepo(redisClient)

	txRunner := pgrepo.NewRunner(pool)
	userRepo := pgrepo.NewUserRepo(pool)
	quotaRepo := pgrepo.NewQuotaRepo(pool)
	restaurantRepo := pgrepo.NewRestaurantRepo(pool)
	voteRepo := pgrepo.NewVoteRepo(pool)
	settingsRepo := pgrepo.NewSettingsRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	settingsService := settingssvc.NewService(settingsRepo, cfg.Voting.DailyCapacity)
	userService := userssvc.NewService(userssvc.Dependencies{
		Users:    userRepo,
		Quotas:   quotaRepo,
		Capacity: settingsService,
		Tx:       txRunner,
		JWT:      jwtManager,
	})
	restaurantService := restaurantssvc.NewService(restaurantRepo)
	votingService := votingsvc.NewService(votingsvc.Dependencies{
		Quotas:      quotaRepo,
		Votes:       voteRepo,
		Restaurants: restaurantRepo,
		Capacity:    settingsService,
		Cache:       rankingCache,
		Tx:          txRunner,
		Logger:      log,
	}, votingsvc.Config{Timezone: loc})
	rankingService := rankingsvc.NewService(rankingsvc.Dependencies{
		Tallies: voteRepo,
		Cache:   rankingCache,
		Logger:  log,
	}, rankingsvc.Config{Timezone: loc})
	resetJob := reset.NewJob(reset.Dependencies{
		Quotas:   quotaRepo,
		Capacity: settingsService,
		Locker:   resetLock,
		Logger:   log,
	}, loc)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		JWTManager:        jwtManager,
		UserService:       userService,
		RestaurantService: restaurantService,
		VotingService:     votingService,
		RankingService:    rankingService,
		SettingsService:   settingsService,
		Logger:            log,
		Config:            cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		resetJob:   resetJob,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}

func (a *App) ResetJob() *reset.Job {
	return a.resetJob
}

package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/SyncBAND/besteats/internal/config"
	"github.com/SyncBAND/besteats/internal/infra/logger"
	"github.com/SyncBAND/besteats/internal/jobs/reset"
	pgrepo "github.com/SyncBAND/besteats/internal/repo/postgres"
	redrepo "github.com/SyncBAND/besteats/internal/repo/redis"
	settingssvc "github.com/SyncBAND/besteats/internal/services/settings"
)

// Manual quota reset, for operators and cron. The API runs the same job on
// its own schedule; the shared day lock keeps the two from doubling up.
func main() {
	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	loc, err := time.LoadLocation(cfg.Voting.Timezone)
	if err != nil {
		log.Warn("invalid voting timezone, falling back to UTC",
			zap.String("timezone", cfg.Voting.Timezone),
			zap.Error(err),
		)
		loc = time.UTC
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() {
		_ = redisClient.Close()
	}()

	quotaRepo := pgrepo.NewQuotaRepo(pool)
	settingsService := settingssvc.NewService(pgrepo.NewSettingsRepo(pool), cfg.Voting.DailyCapacity)

	job := reset.NewJob(reset.Dependencies{
		Quotas:   quotaRepo,
		Capacity: settingsService,
		Locker:   redrepo.NewResetLockRepo(redisClient),
		Logger:   log,
	}, loc)

	if err := job.RunOnce(ctx); err != nil {
		log.Fatal("reset vote quotas", zap.Error(err))
	}
}

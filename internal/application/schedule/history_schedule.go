package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-api/internal/domain/usecase/weather"
	"weather-api/pkg/log"
	"weather-api/pkg/redis"
)

// HistorySchedulerConfig holds configuration for the history pruning scheduler
type HistorySchedulerConfig struct {
	CronExpression  string
	Retention       time.Duration
	LockTTL         time.Duration
	RefreshInterval time.Duration
}

// HistoryScheduler prunes old weather query records on a cron schedule, guarded by a
// distributed lock so only one instance runs the job.
type HistoryScheduler struct {
	cron        *cron.Cron
	useCase     weather.UseCase
	redisClient *redis.Client
	config      *HistorySchedulerConfig
}

func NewHistoryScheduler(useCase weather.UseCase, redisClient *redis.Client, config *HistorySchedulerConfig) *HistoryScheduler {
	return &HistoryScheduler{
		cron:        cron.New(),
		useCase:     useCase,
		redisClient: redisClient,
		config:      config,
	}
}

// InitHistoryScheduleTasks initializes the pruning schedule with distributed locking
func (s *HistoryScheduler) InitHistoryScheduleTasks(ctx context.Context) {
	go func() {
		lock := redis.NewScheduledTaskLock(
			s.redisClient,
			"history_pruning_scheduler",
			s.getLockTTL(),
			s.getRefreshInterval(),
			"weather_schedules",
		)

		if err := lock.Lock(ctx); err != nil {
			log.Errorf("Failed to acquire distributed lock, history scheduler will not be initialized: %v", err)
			return
		}

		refreshErrChan := lock.AutoRefresh(ctx)

		_, err := s.cron.AddFunc(s.config.CronExpression, s.ExecuteScheduledTask)
		if err != nil {
			log.Errorf("Failed to initialize history scheduler, cron will not be started: %v", err)
			return
		}

		s.cron.Start()
		log.Infof("History pruning scheduler started with cron expression: %s", s.config.CronExpression)

		// Blocks until refresh fails or the context is cancelled.
		err = <-refreshErrChan

		if s.cron != nil {
			cronCtx := s.cron.Stop()
			<-cronCtx.Done()
		}

		if err != nil {
			log.Errorf("History pruning scheduler stopped due to auto-refresh failure: %v", err)
		} else {
			log.Info("History pruning scheduler stopped gracefully")
		}
	}()
}

// ExecuteScheduledTask runs one pruning pass
func (s *HistoryScheduler) ExecuteScheduledTask() {
	requestID := uuid.New().String()

	log.Info("History pruning task triggered", zap.String("request_id", requestID))

	deleted, err := s.useCase.PruneHistory(s.config.Retention)
	if err != nil {
		log.Error("History pruning task failed", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info("History pruning task completed", zap.String("request_id", requestID), zap.Int64("deleted", deleted))
}

// Stop gracefully stops the scheduler
func (s *HistoryScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *HistoryScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 10 * time.Minute
}

func (s *HistoryScheduler) getRefreshInterval() time.Duration {
	if s.config.RefreshInterval > 0 {
		return s.config.RefreshInterval
	}
	return 1 * time.Minute
}

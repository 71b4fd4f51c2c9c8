package scheduler

import (
	"context"
	"court-booking-service/config"
	"court-booking-service/internal/pkg/log"
	"fmt"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
)

const (
	TypeSettleRefund = "settle_refund"
	TypeSweepElapsed = "sweep_elapsed"

	MonitoringPath = "/monitoring"
)

type Scheduler struct {
	Log    log.Logger
	server *asynq.Server
	cron   *asynq.Scheduler
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// Monitoring returns the asynqmon UI; the caller mounts it under
// MonitoringPath on the main HTTP server.
func (s *Scheduler) Monitoring(cfg *config.RedisConfig) http.Handler {
	return asynqmon.New(asynqmon.Options{
		RootPath:     MonitoringPath,
		RedisConnOpt: redisOpt(cfg),
	})
}

func (s *Scheduler) InitClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

// StartHandler starts the task workers in the background; Shutdown stops them.
func (s *Scheduler) StartHandler(cfg *config.RedisConfig, taskTypes []string, handlerFunc []func(ctx context.Context, t *asynq.Task) error) error {
	s.server = asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 10,
			},
		},
	)
	mux := asynq.NewServeMux()

	for i, taskType := range taskTypes {
		mux = s.registerHandlers(mux, taskType, handlerFunc[i])
	}

	if err := s.server.Start(mux); err != nil {
		s.Log.Error(context.Background(), "error start handler scheduler", err)
		return err
	}
	return nil
}

// StartPeriodic enqueues taskType on the given cron spec until Shutdown.
// It does not block.
func (s *Scheduler) StartPeriodic(cfg *config.RedisConfig, cronSpec, taskType string, payload []byte) error {
	s.cron = asynq.NewScheduler(redisOpt(cfg), nil)
	if _, err := s.cron.Register(cronSpec, asynq.NewTask(taskType, payload)); err != nil {
		s.Log.Error(context.Background(), "error register periodic task", err)
		return err
	}
	if err := s.cron.Start(); err != nil {
		s.Log.Error(context.Background(), "error start periodic scheduler", err)
		return err
	}
	return nil
}

func (s *Scheduler) Shutdown() {
	if s.server != nil {
		s.server.Shutdown()
	}
	if s.cron != nil {
		s.cron.Shutdown()
	}
}

func (s *Scheduler) registerHandlers(mux *asynq.ServeMux, typeTask string, handlerFunc func(ctx context.Context, t *asynq.Task) error) *asynq.ServeMux {
	mux.HandleFunc(typeTask, handlerFunc)
	return mux
}

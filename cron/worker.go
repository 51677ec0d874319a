package cron

import (
	"context"
	"time"

	"swatrental/config"
	"swatrental/services/notification"
	"swatrental/services/tasks"
	"swatrental/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the Redis connection shared by the asynq client and server.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

func queueRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// PingQueue reports whether the queue Redis is reachable.
func PingQueue(ctx context.Context) error {
	client := queueRedisClient()
	defer client.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(pingCtx).Err()
}

// InitBookingEventWorker runs the booking event worker in background until ctx is done.
func InitBookingEventWorker(ctx context.Context, dispatcher *notification.Dispatcher) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				tasks.QueueDefault: 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingEvent, dispatcher.HandleBookingEvent)

	go monitorRedisConnection(ctx)

	go func() {
		logger.Info("[EventWorker] starting booking event worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("[EventWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("max", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[EventWorker] max retry attempts reached; events will stay queued")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()

	return srv
}

// monitorRedisConnection pings the queue Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context) {
	client := queueRedisClient()
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				utils.GetLogger().Warn("[EventWorker] queue Redis connection lost", zap.Error(err))
			}
		}
	}
}

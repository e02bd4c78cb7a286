package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"clearcare/config"
	analyticsRepo "clearcare/database/repository/analytics"
	"clearcare/models"
	"clearcare/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitAnalyticsWorker runs the async worker in background.
func InitAnalyticsWorker(repo analyticsRepo.QueryLogRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeQueryRecord, handleQueryRecordTask(repo))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[AnalyticsWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[AnalyticsWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[AnalyticsWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleQueryRecordTask(repo analyticsRepo.QueryLogRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var record models.QueryRecord
		if err := json.Unmarshal(task.Payload(), &record); err != nil {
			log.Printf("[AnalyticsHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		if err := repo.Record(ctx, record); err != nil {
			log.Printf("[AnalyticsHandler] ❌ Failed to store query record: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[AnalyticsWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}

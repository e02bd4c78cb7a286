package tasks

import (
	"encoding/json"
	"log"

	"clearcare/config"
	"clearcare/models"

	"github.com/hibiken/asynq"
)

const TypeQueryRecord = "analytics:query_record"

// NewQueryRecordTask wraps one analytics row for the background worker.
func NewQueryRecordTask(record models.QueryRecord) (*asynq.Task, error) {
	b, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeQueryRecord, b, asynq.MaxRetry(3), asynq.Queue("default")), nil
}

// NewClient returns an asynq client on the task queue Redis DB.
func NewClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
}

// EnqueueQueryRecord fires one analytics row at the queue. Recording is
// best-effort; a full queue never blocks or fails an estimate.
func EnqueueQueryRecord(client *asynq.Client, record models.QueryRecord) {
	task, err := NewQueryRecordTask(record)
	if err != nil {
		log.Printf("[Analytics] invalid query record: %v", err)
		return
	}
	if _, err := client.Enqueue(task); err != nil {
		log.Printf("[Analytics] failed to enqueue query record: %v", err)
	}
}

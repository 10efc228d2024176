package config

import (
	"os"
)

const (
	defaultQueueName  = "default"
	defaultMaxRetries = 3
)

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	MaxRetries int
}

func LoadTaskQueueConfig() TaskQueueConfig {
	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = defaultQueueName
	}

	return TaskQueueConfig{
		PrimindTasksURL: os.Getenv("PRIMIND_TASKS_URL"),
		QueueName:       queueName,

		GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
		GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
		GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
		GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),

		MaxRetries: positiveIntEnv("TASK_QUEUE_MAX_RETRIES", defaultMaxRetries),
	}
}

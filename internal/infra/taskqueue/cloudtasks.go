//go:build gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksClient struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	targetURL  string
	maxRetries int
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &CloudTasksClient{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (c *CloudTasksClient) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", c.projectID, c.locationID, c.queueID)
}

func (c *CloudTasksClient) taskPath(taskID string) string {
	if strings.HasPrefix(taskID, "projects/") {
		return taskID
	}
	return c.queuePath() + "/tasks/" + taskID
}

func (c *CloudTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification task: %w", err)
	}

	cloudTask := &taskspb.Task{
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        c.targetURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payload,
			},
		},
	}
	if task.TaskID != "" {
		cloudTask.Name = c.taskPath(task.TaskID)
	}
	if !task.ScheduleAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.ScheduleAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: c.queuePath(),
		Task:   cloudTask,
	}

	var resp *TaskResponse
	err = withRetry(ctx, c.maxRetries, "task registration", task.TaskID, func() error {
		var createErr error
		resp, createErr = c.createTask(ctx, req, task)
		return createErr
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, task *NotificationTask) (*TaskResponse, error) {
	slog.DebugContext(ctx, "registering notification to Cloud Tasks",
		slog.String("queue_path", req.Parent),
		slog.String("reminder_id", task.ReminderID),
		slog.Int64("event_id", task.EventID),
	)

	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("reminder_id", task.ReminderID),
			slog.Int64("event_id", task.EventID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.DebugContext(ctx, "notification task registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.String("reminder_id", task.ReminderID),
	)

	var scheduleTime, createTime time.Time
	if createdTask.ScheduleTime != nil {
		scheduleTime = createdTask.ScheduleTime.AsTime()
	}
	if createdTask.CreateTime != nil {
		createTime = createdTask.CreateTime.AsTime()
	}

	return &TaskResponse{
		Name:         createdTask.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}

func (c *CloudTasksClient) DeleteTask(ctx context.Context, taskName string) error {
	taskPath := c.taskPath(taskName)

	return withRetry(ctx, c.maxRetries, "task deletion", taskName, func() error {
		return c.deleteTask(ctx, taskPath)
	})
}

func (c *CloudTasksClient) deleteTask(ctx context.Context, taskPath string) error {
	err := c.client.DeleteTask(ctx, &taskspb.DeleteTaskRequest{
		Name: taskPath,
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			slog.DebugContext(ctx, "task not found in Cloud Tasks (may have been processed)",
				slog.String("task_path", taskPath),
			)
			return nil
		}

		slog.WarnContext(ctx, "failed to delete cloud task",
			slog.String("task_path", taskPath),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to delete cloud task: %w", err)
	}

	slog.DebugContext(ctx, "task deleted from Cloud Tasks",
		slog.String("task_path", taskPath),
	)
	return nil
}

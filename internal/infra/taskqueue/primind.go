//go:build !gcloud

package taskqueue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/observability/tracing"
)

type PrimindTasksClient struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
}

func NewPrimindTasksClient(baseURL, queueName string, maxRetries int) *PrimindTasksClient {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &PrimindTasksClient{
		baseURL:   baseURL,
		queueName: queueName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (c *PrimindTasksClient) tasksURL() string {
	if c.queueName != "" && c.queueName != "default" {
		return fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}
	return fmt.Sprintf("%s/tasks", c.baseURL)
}

func (c *PrimindTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification task: %w", err)
	}

	primindReq := PrimindTaskRequest{
		Task: PrimindTask{
			Name: task.TaskID,
			HTTPRequest: PrimindHTTPRequest{
				Body: base64.StdEncoding.EncodeToString(payload),
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	}

	if !task.ScheduleAt.IsZero() {
		primindReq.Task.ScheduleTime = task.ScheduleAt.Format(time.RFC3339)
	}

	reqBody, err := json.Marshal(primindReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal primind request: %w", err)
	}

	var resp *TaskResponse
	err = withRetry(ctx, c.maxRetries, "task registration", task.TaskID, func() error {
		var reqErr error
		resp, reqErr = c.doRegister(ctx, reqBody, task)
		return reqErr
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *PrimindTasksClient) doRegister(ctx context.Context, reqBody []byte, task *NotificationTask) (*TaskResponse, error) {
	u := c.tasksURL()

	ctx, span := tracing.StartExternalAPISpan(ctx, "register_task", u)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-request-id", logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx)))
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send request to Primind Tasks",
			slog.String("task_id", task.TaskID),
			slog.String("reminder_id", task.ReminderID),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		slog.WarnContext(ctx, "unexpected status code from Primind Tasks",
			slog.String("task_id", task.TaskID),
			slog.Int("status_code", resp.StatusCode),
		)
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		tracing.RecordError(span, err)
		return nil, err
	}

	var primindResp PrimindTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&primindResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	scheduleTime, _ := time.Parse(time.RFC3339, primindResp.ScheduleTime)
	createTime, _ := time.Parse(time.RFC3339, primindResp.CreateTime)

	name := primindResp.Name
	if name == "" {
		name = task.TaskID
	}

	slog.DebugContext(ctx, "notification task registered to Primind Tasks",
		slog.String("task_name", name),
		slog.String("reminder_id", task.ReminderID),
		slog.Int64("event_id", task.EventID),
	)

	tracing.RecordError(span, nil)

	return &TaskResponse{
		Name:         name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *PrimindTasksClient) DeleteTask(ctx context.Context, taskName string) error {
	u := c.tasksURL() + "/" + url.PathEscape(path.Base(taskName))

	return withRetry(ctx, c.maxRetries, "task deletion", taskName, func() error {
		return c.doDelete(ctx, u, taskName)
	})
}

func (c *PrimindTasksClient) doDelete(ctx context.Context, u, taskName string) error {
	ctx, span := tracing.StartExternalAPISpan(ctx, "delete_task", u)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-request-id", logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx)))
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		slog.DebugContext(ctx, "task deleted from Primind Tasks",
			slog.String("task_name", taskName),
		)
		tracing.RecordError(span, nil)
		return nil
	case http.StatusNotFound:
		slog.DebugContext(ctx, "task not found in Primind Tasks (may have been processed)",
			slog.String("task_name", taskName),
		)
		tracing.RecordError(span, nil)
		return nil
	default:
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		tracing.RecordError(span, err)
		return err
	}
}

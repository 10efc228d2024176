package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

// TaskQueue registers notification deliveries with a delayed task service.
// DeleteTask takes the name returned by RegisterNotification and treats an
// already executed or missing task as success.
type TaskQueue interface {
	RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error)
	DeleteTask(ctx context.Context, taskName string) error
}

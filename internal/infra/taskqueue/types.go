package taskqueue

import "time"

type NotificationTask struct {
	TaskID     string    `json:"-"`
	ScheduleAt time.Time `json:"-"`

	ReminderID string    `json:"reminder_id"`
	EventID    int64     `json:"event_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Window     string    `json:"window"`
	FireAt     time.Time `json:"fire_at"`
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}

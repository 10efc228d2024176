//go:build !gcloud

package config

// Validate accepts an empty PRIMIND_TASKS_URL; notifications are then only
// logged.
func (c *TaskQueueConfig) Validate() error {
	return nil
}

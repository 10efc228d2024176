//go:build gcloud

package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the Cloud Tasks queue that delivers reminder notifications.
// The target URL receives every fired reminder, so it has to be absolute.
func (c *TaskQueueConfig) Validate() error {
	var errs []error

	if c.GCloudProjectID == "" {
		errs = append(errs, errors.New("GCLOUD_PROJECT_ID is required"))
	}
	if c.GCloudLocationID == "" {
		errs = append(errs, errors.New("GCLOUD_LOCATION_ID is required"))
	}
	if c.GCloudQueueID == "" {
		errs = append(errs, errors.New("GCLOUD_QUEUE_ID is required"))
	}

	switch target, err := url.Parse(c.GCloudTargetURL); {
	case c.GCloudTargetURL == "":
		errs = append(errs, errors.New("GCLOUD_TARGET_URL is required"))
	case err != nil || !target.IsAbs() || target.Host == "":
		errs = append(errs, fmt.Errorf("GCLOUD_TARGET_URL must be an absolute URL, got %q", c.GCloudTargetURL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("reminder task queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}

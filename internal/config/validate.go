package config

import (
	"errors"
	"fmt"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Source.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.State.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.State.Store == StateStoreRedis {
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := cfg.Refresh.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}
	return nil
}

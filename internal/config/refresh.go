package config

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/refresh"
)

const (
	refreshStaleAfterHoursEnv = "REFRESH_STALE_AFTER_HOURS"
	refreshCronEnv            = "REFRESH_CRON"
	refreshOnBootEnv          = "REFRESH_ON_BOOT"

	defaultRefreshCron = "@every 24h"
)

type RefreshConfig struct {
	StaleAfter time.Duration
	Cron       string
	OnBoot     bool
}

func LoadRefreshConfig() *RefreshConfig {
	cronSpec := os.Getenv(refreshCronEnv)
	if cronSpec == "" {
		cronSpec = defaultRefreshCron
	}

	return &RefreshConfig{
		StaleAfter: time.Duration(positiveIntEnv(refreshStaleAfterHoursEnv, int(refresh.DefaultStaleAfter/time.Hour))) * time.Hour,
		Cron:       cronSpec,
		OnBoot:     os.Getenv(refreshOnBootEnv) != "false",
	}
}

func (c *RefreshConfig) Validate() error {
	if _, err := cron.ParseStandard(c.Cron); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRefreshCron, err.Error())
	}
	return nil
}

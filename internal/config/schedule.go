package config

import (
	"os"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/identity"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/picker"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/schedule"
)

const (
	horizonDaysEnv         = "SCHEDULE_HORIZON_DAYS"
	maxEventsEnv           = "SCHEDULE_MAX_EVENTS"
	safetyBufferSecondsEnv = "SCHEDULE_SAFETY_BUFFER_SECONDS"
	randomSeedEnv          = "SCHEDULE_RANDOM_SEED"
	identitySchemeEnv      = "IDENTITY_SCHEME"
	dispatchConcurrencyEnv = "DISPATCH_CONCURRENCY"

	defaultDispatchConcurrency = 4
)

type ScheduleConfig struct {
	HorizonDays  int
	MaxEvents    int
	SafetyBuffer time.Duration
	// RandomSeed of 0 seeds from the current time.
	RandomSeed          uint64
	IdentityScheme      identity.Scheme
	DispatchConcurrency int
}

func LoadScheduleConfig() *ScheduleConfig {
	safetyBuffer := time.Duration(positiveIntEnv(safetyBufferSecondsEnv, int(picker.MinSafetyBuffer/time.Second))) * time.Second
	if safetyBuffer < picker.MinSafetyBuffer {
		safetyBuffer = picker.MinSafetyBuffer
	}

	var seed uint64
	if v := os.Getenv(randomSeedEnv); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			seed = parsed
		}
	}

	scheme := identity.Scheme(os.Getenv(identitySchemeEnv))
	if scheme != identity.SchemeHash && scheme != identity.SchemeTable {
		scheme = identity.SchemeHash
	}

	return &ScheduleConfig{
		HorizonDays:         positiveIntEnv(horizonDaysEnv, schedule.DefaultHorizonDays),
		MaxEvents:           positiveIntEnv(maxEventsEnv, schedule.DefaultMaxEvents),
		SafetyBuffer:        safetyBuffer,
		RandomSeed:          seed,
		IdentityScheme:      scheme,
		DispatchConcurrency: positiveIntEnv(dispatchConcurrencyEnv, defaultDispatchConcurrency),
	}
}

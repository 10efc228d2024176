package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

type Config struct {
	Port      string
	LogLevel  slog.Level
	Location  *time.Location
	TaskQueue TaskQueueConfig
	Redis     *RedisConfig
	Schedule  *ScheduleConfig
	State     *StateConfig
	Source    *SourceConfig
	Refresh   *RefreshConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	location, err := loadLocation(os.Getenv("TIMEZONE"))
	if err != nil {
		return nil, err
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:      port,
		LogLevel:  parseLogLevel(os.Getenv("LOG_LEVEL")),
		Location:  location,
		TaskQueue: LoadTaskQueueConfig(),
		Redis:     redisConfig,
		Schedule:  LoadScheduleConfig(),
		State:     LoadStateConfig(),
		Source:    LoadSourceConfig(),
		Refresh:   LoadRefreshConfig(),
	}, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, name)
	}
	return loc, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// positiveIntEnv returns the value of key when it parses as a positive
// integer, otherwise fallback.
func positiveIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

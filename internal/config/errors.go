package config

import "errors"

var (
	ErrRedisAddrMissing   = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB     = errors.New("REDIS_DB must be a non-negative integer")
	ErrInvalidTimezone    = errors.New("TIMEZONE must be a valid IANA zone")
	ErrSourceMissing      = errors.New("REMINDERS_FILE or REMINDER_SOURCE_URL is required")
	ErrInvalidStateStore  = errors.New("STATE_STORE must be redis or sqlite")
	ErrSQLitePathMissing  = errors.New("SQLITE_PATH is required for the sqlite state store")
	ErrInvalidRefreshCron = errors.New("REFRESH_CRON is not a valid schedule")
)

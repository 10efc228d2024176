package config

import (
	"os"
)

const (
	stateStoreEnv = "STATE_STORE"
	sqlitePathEnv = "SQLITE_PATH"

	defaultSQLitePath = "reminder-state.db"
)

type StateStore string

const (
	StateStoreRedis  StateStore = "redis"
	StateStoreSQLite StateStore = "sqlite"
)

type StateConfig struct {
	Store      StateStore
	SQLitePath string
}

func LoadStateConfig() *StateConfig {
	store := StateStore(os.Getenv(stateStoreEnv))
	if store == "" {
		store = StateStoreRedis
	}

	path := os.Getenv(sqlitePathEnv)
	if path == "" {
		path = defaultSQLitePath
	}

	return &StateConfig{
		Store:      store,
		SQLitePath: path,
	}
}

func (c *StateConfig) Validate() error {
	switch c.Store {
	case StateStoreRedis:
		return nil
	case StateStoreSQLite:
		if c.SQLitePath == "" {
			return ErrSQLitePathMissing
		}
		return nil
	default:
		return ErrInvalidStateStore
	}
}

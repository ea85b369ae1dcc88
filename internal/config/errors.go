package config

import "errors"

// Validation errors returned by [Config.validate] after all sources have
// been merged.
var (
	ErrNoAppID       = errors.New("host application id is required")
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrNoSQLitePath  = errors.New("sqlite driver requires a database path")
	ErrNoDSN         = errors.New("postgres driver requires a dsn")
)

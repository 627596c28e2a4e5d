package config

import "errors"

// Error variables for configuration loading.
var (
	ErrFileNotFound     = errors.New("config file not found")
	ErrFileRead         = errors.New("cannot read config file")
	ErrInvalid          = errors.New("invalid config")
	ErrStoreInvalid     = errors.New("invalid store backend")
	ErrStorePathEmpty   = errors.New("store_path cannot be empty")
	ErrRedisAddrEmpty   = errors.New("redis_addr is required for the redis store")
	ErrLogLevelInvalid  = errors.New("invalid log_level")
	ErrLogFormatInvalid = errors.New("invalid log_format")
)

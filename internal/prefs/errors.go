package prefs

import "errors"

// Error variables for preference storage.
var (
	ErrMalformed        = errors.New("malformed preference blob")
	ErrFieldDropped     = errors.New("preference field dropped")
	ErrUnknownBackend   = errors.New("unknown store backend")
	ErrPathRequired     = errors.New("store path required")
	ErrRedisAddrMissing = errors.New("redis address required")
	ErrKVCorrupt        = errors.New("preference file corrupt")
	ErrLocked           = errors.New("preference file locked")
)

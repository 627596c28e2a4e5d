package prefs

import (
	"context"
	"fmt"
	"slices"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Backends lists every backend name.
var Backends = []string{BackendMemory, BackendFile, BackendSQLite, BackendRedis}

// ValidBackend reports whether name is one of Backends.
func ValidBackend(name string) bool { return slices.Contains(Backends, name) }

// Options selects and configures a backend.
type Options struct {
	Backend     string
	Path        string // file and sqlite
	RedisAddr   string
	RedisPrefix string
}

// Open constructs the backend named by opts. The returned close function
// is never nil.
func Open(ctx context.Context, opts Options) (KV, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case BackendMemory:
		return NewMemoryKV(), noop, nil

	case BackendFile:
		if opts.Path == "" {
			return nil, noop, fmt.Errorf("%w: backend %s", ErrPathRequired, opts.Backend)
		}

		return NewFileKV(opts.Path), noop, nil

	case BackendSQLite:
		kv, err := OpenSQLite(ctx, opts.Path)
		if err != nil {
			return nil, noop, err
		}

		return kv, kv.Close, nil

	case BackendRedis:
		kv, err := DialRedis(ctx, opts.RedisAddr, opts.RedisPrefix)
		if err != nil {
			return nil, noop, err
		}

		return kv, kv.Close, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

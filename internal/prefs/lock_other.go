//go:build !unix

package prefs

import "context"

// lockPath is a no-op where flock is unavailable. FileKV still serializes
// writers within one process.
func lockPath(context.Context, string, bool) (func(), error) {
	return func() {}, nil
}

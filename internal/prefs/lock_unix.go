//go:build unix

package prefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

const maxLockBackoff = 25 * time.Millisecond

var errReplaced = errors.New("lock file replaced")

// lockPath takes a flock on path, creating it if needed. exclusive selects
// LOCK_EX over LOCK_SH. Non-blocking attempts are retried with backoff until
// ctx is done, which yields ErrLocked. The returned func releases the lock.
func lockPath(ctx context.Context, path string, exclusive bool) (func(), error) {
	how, flag := unix.LOCK_SH, os.O_RDONLY
	if exclusive {
		how, flag = unix.LOCK_EX, os.O_RDWR
	}

	backoff := time.Millisecond

	for {
		f, err := openLockFile(path, flag)
		if err != nil {
			return nil, fmt.Errorf("open lock %s: %w", path, err)
		}

		err = acquire(f, path, how)
		if err == nil {
			return func() {
				_ = flock(int(f.Fd()), unix.LOCK_UN)
				_ = f.Close()
			}, nil
		}

		_ = f.Close()

		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, errReplaced) {
			return nil, err
		}

		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, fmt.Errorf("%w: %s: %w", ErrLocked, path, ctx.Err())
		case <-t.C:
		}

		backoff = min(backoff*2, maxLockBackoff)
	}
}

func openLockFile(path string, flag int) (*os.File, error) {
	f, err := os.OpenFile(path, flag|os.O_CREATE, 0o600)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return f, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}

	return os.OpenFile(path, flag|os.O_CREATE, 0o600)
}

// acquire locks f and checks that path still names the locked inode. flock
// locks inodes, so a lock file replaced between open and lock would let two
// holders coexist.
func acquire(f *os.File, path string, how int) error {
	fd := int(f.Fd())

	if err := flock(fd, how|unix.LOCK_NB); err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return unix.EWOULDBLOCK
		}

		return fmt.Errorf("flock %s: %w", path, err)
	}

	var held, current unix.Stat_t

	if err := unix.Fstat(fd, &held); err != nil {
		_ = flock(fd, unix.LOCK_UN)
		return fmt.Errorf("stat lock: %w", err)
	}

	if err := unix.Stat(path, &current); err != nil {
		_ = flock(fd, unix.LOCK_UN)

		if errors.Is(err, unix.ENOENT) {
			return errReplaced
		}

		return fmt.Errorf("stat %s: %w", path, err)
	}

	if held.Dev != current.Dev || held.Ino != current.Ino {
		_ = flock(fd, unix.LOCK_UN)
		return errReplaced
	}

	return nil
}

// flock retries on EINTR, capped so a signal storm cannot spin forever.
func flock(fd, how int) error {
	var err error

	for range 10000 {
		err = unix.Flock(fd, how)
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}

	return err
}

//go:build unix

package prefs_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/calvinalkan/dealgrid/internal/prefs"
)

func Test_FileKV_Keeps_Every_Key_When_Instances_Write_Concurrently(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	stores := []*prefs.FileKV{prefs.NewFileKV(path), prefs.NewFileKV(path), prefs.NewFileKV(path)}

	const perStore = 15

	var wg sync.WaitGroup

	for s, kv := range stores {
		for i := range perStore {
			wg.Go(func() {
				assert.NoError(t, kv.Set(t.Context(), fmt.Sprintf("k%d-%d", s, i), "v"))
			})
		}
	}

	wg.Wait()

	for s := range stores {
		for i := range perStore {
			_, ok, err := prefs.NewFileKV(path).Get(t.Context(), fmt.Sprintf("k%d-%d", s, i))
			require.NoError(t, err)
			assert.True(t, ok, "k%d-%d lost", s, i)
		}
	}
}

func Test_FileKV_Returns_ErrLocked_When_Lock_Held_Past_Deadline(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")

	f, err := os.OpenFile(path+".lock", os.O_RDWR|os.O_CREATE, 0o600)
	require.NoError(t, err)

	t.Cleanup(func() { _ = f.Close() })

	require.NoError(t, unix.Flock(int(f.Fd()), unix.LOCK_EX))

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	err = prefs.NewFileKV(path).Set(ctx, "a", "1")
	require.ErrorIs(t, err, prefs.ErrLocked)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unix.Flock(int(f.Fd()), unix.LOCK_UN))
	require.NoError(t, prefs.NewFileKV(path).Set(t.Context(), "a", "1"))
}

func Test_FileKV_Does_Not_Create_Files_When_Reading_Missing_Store(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "absent")

	_, ok, err := prefs.NewFileKV(filepath.Join(dir, "state.json")).Get(t.Context(), "a")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("PUSH_INTERVAL=15\n"), 0o644))

	var reloads atomic.Int64
	w, err := New(file, func() error {
		reloads.Add(1)
		return nil
	}, context.Background())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(file, []byte("PUSH_INTERVAL=30\n"), 0o644))

	require.Eventually(t, func() bool {
		return reloads.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond, "write should trigger a reload")
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("PUSH_INTERVAL=15\n"), 0o644))

	var reloads atomic.Int64
	w, err := New(file, func() error {
		reloads.Add(1)
		return nil
	}, context.Background())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	time.Sleep(time.Second)

	assert.Equal(t, int64(0), reloads.Load())
}

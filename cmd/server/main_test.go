package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLogFileWriter_KeepsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	w, file, err := openLogFile(path, 16, 8)
	require.NoError(t, err)
	defer file.Close()

	_, err = w.Write([]byte("0123456789"))
	require.NoError(t, err)
	_, err = w.Write([]byte("abcdefghij"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "cdefghij", string(data))

	_, err = w.Write([]byte("XY"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "cdefghijXY", string(data))
}

func TestLogFileWriter_TrimsOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 20), 0o644))

	_, file, err := openLogFile(path, 16, 4)
	require.NoError(t, err)
	defer file.Close()

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.EqualValues(t, 4, info.Size())
}

type resetterFunc func(ctx context.Context) (int, error)

func (f resetterFunc) ResetExpired(ctx context.Context) (int, error) {
	return f(ctx)
}

func TestRunResetLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	done := make(chan struct{})
	go func() {
		defer close(done)
		runResetLoop(ctx, logger, resetterFunc(func(context.Context) (int, error) {
			if calls.Add(1) == 2 {
				return 0, errors.New("db locked")
			}
			return 1, nil
		}), 5*time.Millisecond)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	<-done
	require.Contains(t, logs.String(), "db locked")
}

func TestEnsureDBDir(t *testing.T) {
	require.NoError(t, ensureDBDir(":memory:"))
	require.NoError(t, ensureDBDir("habits.db"))

	path := filepath.Join(t.TempDir(), "nested", "habits.db")
	require.NoError(t, ensureDBDir(path))
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	require.Equal(t, slog.LevelError, parseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLogLevel("loud"))
}

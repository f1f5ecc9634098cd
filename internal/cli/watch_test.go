package cli

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drwadu/savan"
)

func TestWatch_ReloadsOnChange(t *testing.T) {
	env, _, _ := newEnv(t, example, RunOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs, models atomic.Int64
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, env, 5*time.Millisecond, func(ctx context.Context, nav *savan.Navigator) error {
			n, err := nav.Count(ctx, 0, nil)
			models.Store(int64(n))
			runs.Add(1)
			return err
		})
	}()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, time.Millisecond)
	assert.EqualValues(t, 3, models.Load())

	require.NoError(t, os.WriteFile(env.Config.Files[0], []byte("a;b."), 0o644))
	require.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, time.Millisecond)
	assert.EqualValues(t, 2, models.Load())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestFingerprint(t *testing.T) {
	env, _, _ := newEnv(t, example, RunOptions{})
	a, err := fingerprint(env.Config.Files)
	require.NoError(t, err)
	b, err := fingerprint(env.Config.Files)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = fingerprint([]string{"/does/not/exist.lp"})
	assert.Error(t, err)
}

package cli

import (
	"context"
	"crypto/md5"
	"os"
	"time"

	"github.com/drwadu/savan"
)

// Watch runs fn on a fresh navigator every time a program file changes, until ctx is done.
// Grounding failures are logged and retried on the next change.
func Watch(ctx context.Context, env *Env, interval time.Duration, fn func(context.Context, *savan.Navigator) error) error {
	printSystemMessage(env.Diag, "Watching %d file(s).", len(env.Config.Files))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last [md5.Size]byte
	for first := true; ; first = false {
		sum, err := fingerprint(env.Config.Files)
		if err != nil {
			env.Logger.Warn("Failed to read program", "err", err)
		} else if first || sum != last {
			last = sum
			if !first {
				env.Logger.Info("Program changed, reloading")
			}
			if err := runOnce(ctx, env, fn); err != nil {
				env.Logger.Error("Reload failed", "err", err)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func runOnce(ctx context.Context, env *Env, fn func(context.Context, *savan.Navigator) error) error {
	nav, err := env.Open(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, nav)
}

func fingerprint(files []string) ([md5.Size]byte, error) {
	h := md5.New()
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return [md5.Size]byte{}, err
		}
		h.Write(data)
	}
	var sum [md5.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

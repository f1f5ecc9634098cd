package clingo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/drwadu/savan/pkg/domain"
)

// buildFixture compiles the fake clingo under testdata into a temp binary.
func buildFixture(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not found")
	}

	wd, err := os.Getwd()
	require.NoError(t, err)

	exeName := "fakeclingo"
	if runtime.GOOS == "windows" {
		exeName += ".exe"
	}
	destPath := filepath.Join(t.TempDir(), exeName)

	cmd := exec.Command("go", "build", "-o", destPath, "./testdata/fakeclingo")
	cmd.Dir = wd
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Failed to build fixture: %s", string(out))
	return destPath
}

func drainHandle(t *testing.T, ctl *Control, lits ...domain.Literal) ([]string, error) {
	t.Helper()
	ctx := context.Background()
	h, err := ctl.Solve(ctx, lits)
	require.NoError(t, err)
	defer func() { require.NoError(t, h.Close()) }()

	var keys []string
	for {
		m, err := h.Next(ctx)
		if err != nil {
			return keys, err
		}
		if m == nil {
			return keys, nil
		}
		keys = append(keys, m.Key())
	}
}

func atomLiteral(t *testing.T, ctl *Control, name string) domain.Literal {
	t.Helper()
	for _, a := range ctl.Atoms() {
		if a.Symbol.String() == name {
			return a.Literal
		}
	}
	t.Fatalf("unknown atom %s", name)
	return 0
}

func TestBackend_Process(t *testing.T) {
	exe := buildFixture(t)
	defer goleak.VerifyNone(t)

	record := filepath.Join(t.TempDir(), "call.txt")
	t.Setenv("FAKECLINGO_RECORD", record)

	ground := func(t *testing.T) *Control {
		t.Helper()
		ctl, err := New(WithCommand(exe)).Ground(context.Background(), "a;b. c;d :- b. e.", []string{"0", "-c", "n=1", "--project"})
		require.NoError(t, err)
		return ctl.(*Control)
	}

	t.Run("Ground", func(t *testing.T) {
		ctl := ground(t)
		assert.Len(t, ctl.Atoms(), 5)
		assert.True(t, ctl.Config().Project)

		call, err := os.ReadFile(record)
		require.NoError(t, err)
		assert.Equal(t, "--text -c n=1\na;b. c;d :- b. e.", string(call))
	})

	t.Run("Streaming", func(t *testing.T) {
		t.Setenv("FAKECLINGO_ANSWERS", "e b d|a e|c  b e")
		ctl := ground(t)
		require.NoError(t, ctl.Configure(domain.SolveConfig{Mode: domain.EnumBrave}))

		keys, err := drainHandle(t, ctl, atomLiteral(t, ctl, "b"), atomLiteral(t, ctl, "a").Negate())
		require.NoError(t, err)
		assert.Equal(t, []string{"b d e", "a e", "b c e"}, keys)

		call, err := os.ReadFile(record)
		require.NoError(t, err)
		assert.Contains(t, string(call), "0 -c n=1 --enum-mode=brave --outf=0 -V1 --project\n")
		assert.Contains(t, string(call), ":- not b.\n:- a.\n")
	})

	t.Run("Satisfiable exit codes", func(t *testing.T) {
		for _, code := range []string{"10", "30"} {
			t.Setenv("FAKECLINGO_ANSWERS", "a e")
			t.Setenv("FAKECLINGO_EXIT", code)
			keys, err := drainHandle(t, ground(t))
			require.NoError(t, err, "exit %s", code)
			assert.Equal(t, []string{"a e"}, keys)
		}
	})

	t.Run("Unsatisfiable", func(t *testing.T) {
		t.Setenv("FAKECLINGO_ANSWERS", "")
		keys, err := drainHandle(t, ground(t))
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("Engine failure", func(t *testing.T) {
		t.Setenv("FAKECLINGO_MODE", "fail")
		_, err := drainHandle(t, ground(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fake failure")
	})

	t.Run("Failure after answers", func(t *testing.T) {
		t.Setenv("FAKECLINGO_ANSWERS", "a e")
		t.Setenv("FAKECLINGO_EXIT", "65")
		keys, err := drainHandle(t, ground(t))
		assert.Equal(t, []string{"a e"}, keys)
		assert.Error(t, err)
	})

	t.Run("Early close", func(t *testing.T) {
		t.Setenv("FAKECLINGO_MODE", "hang")
		ctl := ground(t)
		ctx := context.Background()

		h, err := ctl.Solve(ctx, nil)
		require.NoError(t, err)
		_, err = ctl.Solve(ctx, nil)
		assert.Error(t, err, "one handle at a time")

		m, err := h.Next(ctx)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "a", m.Key())

		start := time.Now()
		require.NoError(t, h.Close())
		assert.Less(t, time.Since(start), 5*time.Second)

		// the control accepts a new solve once the handle is closed
		h, err = ctl.Solve(ctx, nil)
		require.NoError(t, err)
		require.NoError(t, h.Close())
	})

	t.Run("Cancelled solve", func(t *testing.T) {
		t.Setenv("FAKECLINGO_MODE", "hang")
		ctl := ground(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		h, err := ctl.Solve(ctx, nil)
		require.NoError(t, err)
		m, err := h.Next(ctx)
		require.NoError(t, err)
		require.NotNil(t, m)

		cancel()
		_, err = h.Next(ctx)
		assert.Error(t, err)
		require.NoError(t, h.Close())
	})
}

package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drwadu/savan/internal/config"
	"github.com/drwadu/savan/internal/logging"
	"github.com/drwadu/savan/pkg/adapters/gini"
	"github.com/drwadu/savan/pkg/domain"
)

func TestCreateBackend(t *testing.T) {
	logger := logging.NewNop()

	t.Run("Default to gini", func(t *testing.T) {
		b, err := createBackend(&config.Config{}, logger)
		require.NoError(t, err)
		assert.IsType(t, &gini.Backend{}, b)
	})

	t.Run("Missing clingo", func(t *testing.T) {
		cfg := config.Default()
		cfg.Backend = "clingo"
		cfg.Clingo.Command = "clingo-does-not-exist"
		_, err := createBackend(cfg, logger)
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("Unknown backend", func(t *testing.T) {
		_, err := createBackend(&config.Config{Backend: "dlv"}, logger)
		assert.Error(t, err)
	})
}

func TestChainHooks(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnQueryEnd: func(context.Context, *domain.QueryEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnQueryEnd: func(context.Context, *domain.QueryEvent) { calls = append(calls, "b") },
		OnRebuild:  func(context.Context, *domain.RebuildEvent) { calls = append(calls, "rebuild") },
	}

	h := chainHooks(a, b)
	assert.Nil(t, h.OnQueryStart)
	h.OnQueryEnd(context.Background(), &domain.QueryEvent{})
	h.OnRebuild(context.Background(), &domain.RebuildEvent{})
	h.OnModel(context.Background(), domain.QueryBrave, nil)

	assert.Equal(t, []string{"a", "b", "rebuild"}, calls)
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "savan.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("files: [a.lp]\nargs: [0]\nweight: answer-sets\n"), 0o644))

	t.Run("Config only", func(t *testing.T) {
		cmd := enumerateCmd
		require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath}))

		env, err := loadEnv(cmd, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.lp")}, env.Config.Files)
		assert.Equal(t, []string{"0"}, env.Config.Args)
	})

	t.Run("Flags and files override", func(t *testing.T) {
		cmd := facetsCmd
		require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--args", "3,--supp-models", "--json"}))

		env, err := loadEnv(cmd, []string{"b.lp"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b.lp"}, env.Config.Files)
		assert.Equal(t, []string{"3", "--supp-models"}, env.Config.Args)
		assert.True(t, env.JSON)
	})

	t.Run("Invalid backend flag", func(t *testing.T) {
		cmd := weightCmd
		require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--backend", "dlv"}))
		_, err := loadEnv(cmd, nil)
		assert.Error(t, err)
	})
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"atoms", "brave", "cautious", "enumerate", "facets", "facets-su", "graph", "navigate", "sieve", "version", "weight"} {
		assert.Contains(t, names, want)
	}
}

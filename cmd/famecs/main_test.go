package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/famecs/famecs/internal/component"
	"github.com/famecs/famecs/internal/config"
	"github.com/famecs/famecs/internal/core/ecs"
	"github.com/famecs/famecs/internal/scenario"
	"github.com/famecs/famecs/internal/scripting"
)

const repoRoot = "../.."

func TestNewLogger(t *testing.T) {
	log, err := newLogger(config.LoggingConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = newLogger(config.LoggingConfig{Level: "bogus", Format: "console"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestProfileOff(t *testing.T) {
	assert.Nil(t, startProfile(config.ProfileConfig{}))
}

// The shipped config, scenario and scripts must load together.
func TestShippedSession(t *testing.T) {
	cfg, err := config.Load(filepath.Join(repoRoot, "config", "famecs.toml"))
	require.NoError(t, err)

	catalog := scenario.NewCatalog()
	component.Register(catalog)
	world := scenario.NewWorld(ecs.NewManager(), catalog)
	st, err := scenario.Load(filepath.Join(repoRoot, cfg.Scenario.Path), world)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Sources)
	assert.Equal(t, 7, st.Entities)

	engine, err := scripting.NewEngine(filepath.Join(repoRoot, cfg.Scripting.Dir), world, zap.NewNop())
	require.NoError(t, err)
	defer engine.Close()
	require.True(t, engine.HasTick())

	art, err := world.Keys("student", "@art")
	require.NoError(t, err)
	assert.Len(t, world.Manager.QuerySuperset(art...), 1)
	require.NoError(t, engine.Tick(10))
	assert.Len(t, world.Manager.QuerySuperset(art...), 3)
	assert.NoError(t, world.Manager.Check())
}

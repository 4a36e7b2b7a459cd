package system_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/famecs/famecs/internal/component"
	"github.com/famecs/famecs/internal/core/ecs"
	"github.com/famecs/famecs/internal/scenario"
	"github.com/famecs/famecs/internal/scripting"
	"github.com/famecs/famecs/internal/system"
)

func TestScriptSystemCountsTicks(t *testing.T) {
	log := zaptest.NewLogger(t)
	c := scenario.NewCatalog()
	component.Register(c)
	w := scenario.NewWorld(ecs.NewManager(), c)

	engine, err := scripting.NewEngine("", w, log)
	require.NoError(t, err)
	defer engine.Close()
	require.NoError(t, engine.DoString(`
		function on_tick(tick)
			if tick == 3 then error("boom") end
			ecs.create("tick-" .. tick)
		end
	`))

	s := system.NewScriptSystem(engine, log)
	for i := 0; i < 4; i++ {
		s.Update(time.Millisecond)
	}

	// the failing tick is logged and skipped
	assert.Equal(t, 3, w.Manager.Len())
	_, ok := w.Entity("tick-4")
	assert.True(t, ok)
	_, ok = w.Entity("tick-3")
	assert.False(t, ok)
}

package gamestage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tessera-engine/tessera/gamestage"
)

func TestManagerStartsInInit(t *testing.T) {
	m := gamestage.NewManager()
	assert.Equal(t, gamestage.Init, m.Current())
}

func TestCompareAndSwap(t *testing.T) {
	m := gamestage.NewManager()

	assert.False(t, m.CompareAndSwap(gamestage.Playing, gamestage.Paused),
		"swap from a stage we are not in fails")
	assert.Equal(t, gamestage.Init, m.Current())

	assert.True(t, m.CompareAndSwap(gamestage.Init, gamestage.Playing))
	assert.Equal(t, gamestage.Playing, m.Current())
}

func TestSwapReturnsOldStage(t *testing.T) {
	m := gamestage.NewManager()
	old := m.Swap(gamestage.ShutDown)
	assert.Equal(t, gamestage.Init, old)
	assert.Equal(t, gamestage.ShutDown, m.Current())
}

func TestStore(t *testing.T) {
	m := gamestage.NewManager()
	m.Store(gamestage.Editing)
	assert.Equal(t, gamestage.Editing, m.Current())
}

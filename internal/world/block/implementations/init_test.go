package implementations

import (
	"testing"

	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_Classes(t *testing.T) {
	r := NewDefaultRegistry()

	for _, name := range []string{block.AirName, block.CaveAirName, block.VoidAirName} {
		typ, ok := r.Lookup(name)
		require.True(t, ok, name)
		assert.True(t, typ.Air, name)
	}

	water, ok := r.Lookup("water")
	require.True(t, ok)
	assert.True(t, water.Liquid)
	assert.True(t, water.DefaultState().CollisionShape().IsEmpty())

	stone, ok := r.Lookup("stone")
	require.True(t, ok)
	assert.False(t, stone.Air)
	assert.True(t, stone.DefaultState().CollisionShape().IsFaceFull(vec.Down))

	_, ok = r.Lookup(block.JigsawName)
	assert.True(t, ok)
}

func TestDefaultRegistry_Shapes(t *testing.T) {
	r := NewDefaultRegistry()

	lantern, _ := r.Lookup("minecraft:lantern")
	hanging := lantern.DefaultState().With("hanging", "true")
	assert.False(t, hanging.CollisionShape().IsFaceFull(vec.Up))

	slab, _ := r.Lookup("minecraft:stone_brick_slab")
	assert.True(t, slab.DefaultState().CollisionShape().IsFaceFull(vec.Down))
	assert.False(t, slab.DefaultState().CollisionShape().IsFaceFull(vec.Up))
	assert.True(t, slab.DefaultState().With("type", "top").CollisionShape().IsFaceFull(vec.Up))

	stairs, _ := r.Lookup("minecraft:cobblestone_stairs")
	def := stairs.DefaultState()
	assert.True(t, def.CollisionShape().IsFaceFull(vec.North), "ступень со стороны facing=north")
	assert.False(t, def.CollisionShape().IsFaceFull(vec.South))

	wall, _ := r.Lookup("minecraft:cobblestone_wall")
	assert.False(t, wall.DefaultState().CollisionShape().IsFaceFull(vec.Up))
}

func TestDefaultRegistry_WallPost(t *testing.T) {
	r := NewDefaultRegistry()
	wall, _ := r.Lookup("minecraft:cobblestone_wall")

	// Столб есть только при up=true
	assert.Len(t, wall.DefaultState().CollisionShape(), 1)
	assert.True(t, wall.DefaultState().With("up", "false").CollisionShape().IsEmpty())

	// Без столба остаются только боковые части
	arms := wall.DefaultState().With("up", "false").With("north", "low").With("south", "tall")
	assert.Len(t, arms.CollisionShape(), 2)
	assert.Len(t, arms.With("up", "true").CollisionShape(), 3)
}

func TestDefaultRegistry_Tags(t *testing.T) {
	r := NewDefaultRegistry()

	lights, err := r.Tag("structure_toolkit:hanging_lights")
	require.NoError(t, err)
	assert.Len(t, lights, 2)

	walls, err := r.Tag("minecraft:walls")
	require.NoError(t, err)
	assert.Len(t, walls, 4)
}

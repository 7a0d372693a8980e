package processor

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/annel0/structure-toolkit/internal/util"
	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/block"
	"github.com/annel0/structure-toolkit/internal/world/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSeed_Modes(t *testing.T) {
	blockPos := vec.New(1, 2, 3)
	piecePos := vec.New(16, 64, 32)
	structurePos := vec.New(0, 60, 0)
	world := StaticSeed(1337)
	const ruleSeed int64 = 7645816

	cases := []struct {
		rt   RandomType
		want int64
	}{
		{RandomBlock, util.PositionSeed(blockPos) + ruleSeed},
		{RandomPiece, util.PositionSeed(piecePos) + ruleSeed},
		{RandomStructure, util.PositionSeed(structurePos) + ruleSeed},
		{RandomWorld, 1337 + ruleSeed},
	}

	for _, tc := range cases {
		t.Run(tc.rt.String(), func(t *testing.T) {
			first, err := DeriveSeed(tc.rt, blockPos, &piecePos, &structurePos, world, ruleSeed)
			require.NoError(t, err)
			second, err := DeriveSeed(tc.rt, blockPos, &piecePos, &structurePos, world, ruleSeed)
			require.NoError(t, err)

			assert.Equal(t, tc.want, first)
			assert.Equal(t, first, second, "сид должен быть детерминирован")
		})
	}
}

func TestDeriveSeed_ConfigurationErrors(t *testing.T) {
	pos := vec.New(0, 0, 0)

	_, err := DeriveSeed(RandomType(9), pos, &pos, &pos, StaticSeed(1), 0)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = DeriveSeed(RandomWorld, pos, &pos, &pos, nil, 0)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestDeriveSeed_NilPositionUsesClock(t *testing.T) {
	before := time.Now().UnixMilli()
	seed, err := DeriveSeed(RandomPiece, vec.Zero, nil, nil, nil, 10)
	after := time.Now().UnixMilli()

	require.NoError(t, err)
	assert.GreaterOrEqual(t, seed, before+10)
	assert.LessOrEqual(t, seed, after+10)
}

func TestNewRandom_Reproducible(t *testing.T) {
	pos := vec.New(-5, 70, 12)

	a, err := NewRandom(RandomBlock, pos, nil, nil, nil, 99)
	require.NoError(t, err)
	b, err := NewRandom(RandomBlock, pos, nil, nil, nil, 99)
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		assert.Equal(t, a.Float32(), b.Float32())
		assert.Equal(t, a.Int63(), b.Int63())
	}
}

func TestFindBlock(t *testing.T) {
	reg := testRegistry()
	blocks := []template.BlockInfo{
		blockAt(t, reg, "minecraft:stone", 0, 0, 0),
		blockAt(t, reg, "minecraft:air", 0, 1, 0),
	}

	found := FindBlock(blocks, vec.New(0, 1, 0))
	require.NotNil(t, found)
	assert.True(t, found.State.Is(block.AirName))

	// Возвращается копия
	found.Pos = vec.New(9, 9, 9)
	assert.Equal(t, vec.New(0, 1, 0), blocks[1].Pos)

	assert.Nil(t, FindBlock(blocks, vec.New(5, 5, 5)))
	assert.Nil(t, FindBlock(nil, vec.Zero))
}

func TestClassification_AbsentAsymmetry(t *testing.T) {
	reg := testRegistry()

	assert.True(t, IsAir(reg, nil))
	assert.False(t, IsSolid(reg, nil))
	assert.False(t, IsFaceFull(reg, nil, vec.Down))
}

func TestClassification_ConcreteBlocks(t *testing.T) {
	reg := testRegistry()

	cases := []struct {
		state string
		air   bool
		solid bool
	}{
		{"minecraft:air", true, false},
		{"minecraft:cave_air", true, false},
		{"minecraft:stone", false, true},
		{"minecraft:water", false, false},
		{"minecraft:lava", false, false},
		{"minecraft:lantern", false, true},
		{"minecraft:cobweb", false, true},
		// void_air не входит в список воздуха шаблона
		{"minecraft:void_air", false, true},
	}

	for _, tc := range cases {
		bi := blockAt(t, reg, tc.state, 0, 0, 0)
		assert.Equal(t, tc.air, IsAir(reg, &bi), "IsAir(%s)", tc.state)
		assert.Equal(t, tc.solid, IsSolid(reg, &bi), "IsSolid(%s)", tc.state)
		assert.False(t, IsAir(reg, &bi) && IsSolid(reg, &bi), "%s не может быть и воздухом, и твердым", tc.state)
	}
}

func TestClassification_DeferredBlocks(t *testing.T) {
	reg := testRegistry()

	stone := deferredAt("minecraft:stone", 0, 0, 0)
	assert.True(t, IsSolid(reg, &stone))
	assert.False(t, IsAir(reg, &stone))

	air := deferredAt("minecraft:air", 0, 0, 0)
	assert.True(t, IsAir(reg, &air))
	assert.False(t, IsSolid(reg, &air))

	// Для отложенных блоков воздухом считается любой тип с признаком Air
	voidAir := deferredAt("minecraft:void_air", 0, 0, 0)
	assert.True(t, IsAir(reg, &voidAir))

	water := deferredAt("minecraft:water", 0, 0, 0)
	assert.False(t, IsAir(reg, &water))
	assert.False(t, IsSolid(reg, &water))

	unknown := deferredAt("mymod:ghost", 0, 0, 0)
	assert.True(t, IsAir(reg, &unknown))
	assert.False(t, IsSolid(reg, &unknown))

	empty := deferredAt("", 0, 0, 0)
	assert.True(t, IsAir(reg, &empty))
}

func TestIsFaceFull(t *testing.T) {
	reg := testRegistry()

	stone := blockAt(t, reg, "minecraft:stone", 0, 0, 0)
	assert.True(t, IsFaceFull(reg, &stone, vec.Down))

	lantern := blockAt(t, reg, "minecraft:lantern", 0, 0, 0)
	assert.False(t, IsFaceFull(reg, &lantern, vec.Down))

	water := blockAt(t, reg, "minecraft:water", 0, 0, 0)
	assert.False(t, IsFaceFull(reg, &water, vec.Up))

	topSlab := blockAt(t, reg, "minecraft:stone_brick_slab[type=top]", 0, 0, 0)
	assert.True(t, IsFaceFull(reg, &topSlab, vec.Up))
	assert.False(t, IsFaceFull(reg, &topSlab, vec.Down))

	// Отложенная плита берет форму состояния по умолчанию (нижняя половина)
	deferredSlab := deferredAt("minecraft:stone_brick_slab[type=top]", 0, 0, 0)
	assert.True(t, IsFaceFull(reg, &deferredSlab, vec.Down))
	assert.False(t, IsFaceFull(reg, &deferredSlab, vec.Up))

	unknown := deferredAt("mymod:ghost", 0, 0, 0)
	assert.False(t, IsFaceFull(reg, &unknown, vec.Up))
}

func TestPickRandomExcluding(t *testing.T) {
	reg := testRegistry()
	candidates, err := reg.Tag("structure_toolkit:ceiling_decor")
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		picked, err := PickRandomExcluding(candidates, typeName, []string{"minecraft:chain", "cobweb"}, rng)
		require.NoError(t, err)
		assert.NotEqual(t, "minecraft:chain", picked.Name)
		assert.NotEqual(t, "minecraft:cobweb", picked.Name)
	}
}

func TestPickRandomExcluding_EmptyCandidateSet(t *testing.T) {
	reg := testRegistry()
	rng := rand.New(rand.NewSource(1))

	lights, err := reg.Tag("structure_toolkit:hanging_lights")
	require.NoError(t, err)

	_, err = PickRandomExcluding(lights, typeName, []string{"minecraft:lantern", "minecraft:soul_lantern"}, rng)
	assert.True(t, errors.Is(err, ErrEmptyCandidateSet))

	_, err = PickRandomExcluding([]string{}, func(s string) string { return s }, nil, rng)
	assert.True(t, errors.Is(err, ErrEmptyCandidateSet))

	_, err = RandomBlockFromTag(reg, "structure_toolkit:hanging_lights", rng, []string{"lantern", "soul_lantern"})
	assert.True(t, errors.Is(err, ErrEmptyCandidateSet))
}

func TestRandomBlockFromTag(t *testing.T) {
	reg := testRegistry()

	picked, err := RandomBlockFromTag(reg, "structure_toolkit:hanging_lights", rand.New(rand.NewSource(3)), []string{"minecraft:lantern"})
	require.NoError(t, err)
	assert.Equal(t, "minecraft:soul_lantern", picked.Name)

	_, err = RandomBlockFromTag(reg, "missing:tag", rand.New(rand.NewSource(3)), nil)
	assert.Error(t, err)
}

func TestCopyStates(t *testing.T) {
	reg := testRegistry()

	stairs, err := reg.ParseState("minecraft:stone_brick_stairs[facing=east,half=top]")
	require.NoError(t, err)
	mossy, _ := reg.Lookup("minecraft:mossy_cobblestone_stairs")

	copied := CopyStairsState(stairs, mossy)
	assert.True(t, copied.Is("minecraft:mossy_cobblestone_stairs"))
	facing, _ := copied.Property("facing")
	half, _ := copied.Property("half")
	assert.Equal(t, "east", facing)
	assert.Equal(t, "top", half)

	slab, _ := reg.ParseState("minecraft:cobblestone_slab[type=double]")
	deepslate, _ := reg.Lookup("minecraft:deepslate_brick_slab")
	typ, _ := CopySlabState(slab, deepslate).Property("type")
	assert.Equal(t, "double", typ)

	wall, _ := reg.ParseState("minecraft:cobblestone_wall[north=tall,up=false]")
	mossyWall, _ := reg.Lookup("minecraft:mossy_cobblestone_wall")
	copiedWall := CopyWallState(wall, mossyWall)
	north, _ := copiedWall.Property("north")
	up, _ := copiedWall.Property("up")
	assert.Equal(t, "tall", north)
	assert.Equal(t, "false", up)

	// Свойства, которых нет у целевого типа, пропускаются
	stone, _ := reg.Lookup("minecraft:stone")
	plain := CopyStairsState(stairs, stone)
	_, ok := plain.Property("facing")
	assert.False(t, ok)
}

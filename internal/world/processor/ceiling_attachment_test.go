package processor

import (
	"errors"
	"math"
	"testing"

	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/block"
	"github.com/annel0/structure-toolkit/internal/world/template"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lanternRule(reg *block.Registry, rarity float32, needsWall bool, opts ...Option) *CeilingAttachment {
	return NewCeilingAttachment(reg, CeilingAttachmentParams{
		Block:      "minecraft:lantern",
		NeedsWall:  needsWall,
		Rarity:     rarity,
		RandomType: RandomBlock,
	}, opts...)
}

func centerOf(t *testing.T, tpl *template.Template) template.BlockInfo {
	t.Helper()
	raw, ok := tpl.Palettes[0].Find(vec.New(1, 1, 1))
	require.True(t, ok)
	return raw
}

func TestCeilingAttachment_ReplacesUnderCeiling(t *testing.T) {
	reg := testRegistry()
	tpl := template.New("cell", vec.New(3, 3, 3), cell(t, reg, "minecraft:stone"))

	raw := centerOf(t, tpl)
	raw.NBT = template.Metadata{"marker": "keep"}
	ctx := contextFor(tpl, raw)

	out, err := lanternRule(reg, 1.0, false).Process(ctx)
	require.NoError(t, err)

	assert.True(t, out.State.Is("minecraft:lantern"))
	assert.Equal(t, "minecraft:lantern[hanging=false,waterlogged=false]", out.State.String(), "состояние по умолчанию")
	assert.Equal(t, ctx.Block.Pos, out.Pos, "позиция не меняется")
	assert.Equal(t, "keep", out.NBT.GetString("marker"), "метаданные сохраняются")
}

func TestCeilingAttachment_ZeroRarityKeepsBlock(t *testing.T) {
	reg := testRegistry()
	tpl := template.New("cell", vec.New(3, 3, 3), cell(t, reg, "minecraft:stone"))
	ctx := contextFor(tpl, centerOf(t, tpl))

	out, err := lanternRule(reg, 0.0, false).Process(ctx)
	require.NoError(t, err)
	assert.Equal(t, ctx.Block, out)
}

func TestCeilingAttachment_NeedsWallWithoutNeighbours(t *testing.T) {
	reg := testRegistry()
	tpl := template.New("cell", vec.New(3, 3, 3), cell(t, reg, "minecraft:stone"))
	ctx := contextFor(tpl, centerOf(t, tpl))

	out, err := lanternRule(reg, 1.0, true).Process(ctx)
	require.NoError(t, err)
	assert.Equal(t, ctx.Block, out, "все 8 соседей - воздух")
}

func TestCeilingAttachment_NeedsWallWithDiagonalNeighbour(t *testing.T) {
	reg := testRegistry()
	blocks := cell(t, reg, "minecraft:stone")
	// Северо-восточный сосед центра
	blocks = replace(blocks, blockAt(t, reg, "minecraft:cobblestone", 2, 1, 0))
	tpl := template.New("cell", vec.New(3, 3, 3), blocks)
	ctx := contextFor(tpl, centerOf(t, tpl))

	out, err := lanternRule(reg, 1.0, true).Process(ctx)
	require.NoError(t, err)
	assert.True(t, out.State.Is("minecraft:lantern"))
}

func TestCeilingAttachment_NeedsWallIgnoresLiquidNeighbour(t *testing.T) {
	reg := testRegistry()
	blocks := cell(t, reg, "minecraft:stone")
	blocks = replace(blocks, blockAt(t, reg, "minecraft:water", 1, 1, 0))
	tpl := template.New("cell", vec.New(3, 3, 3), blocks)
	ctx := contextFor(tpl, centerOf(t, tpl))

	out, err := lanternRule(reg, 1.0, true).Process(ctx)
	require.NoError(t, err)
	assert.Equal(t, ctx.Block, out)
}

func TestCeilingAttachment_CeilingVariants(t *testing.T) {
	reg := testRegistry()

	cases := []struct {
		name    string
		ceiling template.BlockInfo
		replace bool
	}{
		{"камень", blockAt(t, reg, "minecraft:stone", 1, 2, 1), true},
		{"плита", blockAt(t, reg, "minecraft:stone_brick_slab", 1, 2, 1), true},
		{"пещерный воздух", blockAt(t, reg, "minecraft:cave_air", 1, 2, 1), false},
		{"вода", blockAt(t, reg, "minecraft:water", 1, 2, 1), false},
		{"jigsaw с камнем", deferredAt("minecraft:stone", 1, 2, 1), true},
		{"jigsaw с воздухом", deferredAt("minecraft:air", 1, 2, 1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blocks := replace(cell(t, reg, "minecraft:stone"), tc.ceiling)
			tpl := template.New("cell", vec.New(3, 3, 3), blocks)
			ctx := contextFor(tpl, centerOf(t, tpl))

			out, err := lanternRule(reg, 1.0, false).Process(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.replace, out.State.Is("minecraft:lantern"))
		})
	}
}

func TestCeilingAttachment_MissingCeiling(t *testing.T) {
	reg := testRegistry()
	var blocks template.Palette
	for _, b := range cell(t, reg, "minecraft:stone") {
		if b.Pos.Equals(vec.New(1, 2, 1)) {
			continue
		}
		blocks = append(blocks, b)
	}
	tpl := template.New("cell", vec.New(3, 3, 3), blocks)
	ctx := contextFor(tpl, centerOf(t, tpl))

	out, err := lanternRule(reg, 1.0, false).Process(ctx)
	require.NoError(t, err)
	assert.Equal(t, ctx.Block, out, "отсутствующий блок - не потолок")
}

func TestCeilingAttachment_OnlyOrdinaryAir(t *testing.T) {
	reg := testRegistry()
	blocks := replace(cell(t, reg, "minecraft:stone"), blockAt(t, reg, "minecraft:cave_air", 1, 1, 1))
	tpl := template.New("cell", vec.New(3, 3, 3), blocks)
	ctx := contextFor(tpl, centerOf(t, tpl))

	out, err := lanternRule(reg, 1.0, false).Process(ctx)
	require.NoError(t, err)
	assert.True(t, out.State.Is(block.CaveAirName))

	// Отложенный блок тоже не является обычным воздухом
	ctx.Block = deferredAt("minecraft:air", 101, 65, 201)
	out, err = lanternRule(reg, 1.0, false).Process(ctx)
	require.NoError(t, err)
	assert.True(t, out.State.IsDeferred())
}

func TestCeilingAttachment_UsesRawPosition(t *testing.T) {
	reg := testRegistry()
	tpl := template.New("cell", vec.New(3, 3, 3), cell(t, reg, "minecraft:stone"))
	raw := centerOf(t, tpl)

	// Повернутая позиция в мире не совпадает с сырой, но проверка
	// потолка идет по палитре шаблона
	settings := &template.PlacementSettings{Rotation: template.RotationClockwise180}
	piece := vec.New(-40, 10, 7)
	ctx := &Context{
		World:    StaticSeed(1),
		PiecePos: &piece,
		Settings: settings,
		Template: tpl,
		RawBlock: raw,
		Block:    raw.WithPos(settings.WorldPos(raw.Pos, piece)),
	}

	out, err := lanternRule(reg, 1.0, false).Process(ctx)
	require.NoError(t, err)
	assert.True(t, out.State.Is("minecraft:lantern"))
	assert.Equal(t, vec.New(-41, 11, 6), out.Pos)
}

func TestCeilingAttachment_UnknownReplacement(t *testing.T) {
	reg := testRegistry()
	tpl := template.New("cell", vec.New(3, 3, 3), cell(t, reg, "minecraft:stone"))
	ctx := contextFor(tpl, centerOf(t, tpl))

	rule := NewCeilingAttachment(reg, CeilingAttachmentParams{Block: "mymod:ghost_lamp", Rarity: 1})
	_, err := rule.Process(ctx)
	assert.True(t, errors.Is(err, block.ErrUnknownBlockType))
}

func TestCeilingAttachment_UnknownRandomType(t *testing.T) {
	reg := testRegistry()
	tpl := template.New("cell", vec.New(3, 3, 3), cell(t, reg, "minecraft:stone"))
	ctx := contextFor(tpl, centerOf(t, tpl))

	rule := NewCeilingAttachment(reg, CeilingAttachmentParams{Block: "minecraft:lantern", Rarity: 1, RandomType: RandomType(7)})
	_, err := rule.Process(ctx)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestCeilingAttachment_DeterministicPerBlock(t *testing.T) {
	reg := testRegistry()
	tpl := template.New("cell", vec.New(3, 3, 3), cell(t, reg, "minecraft:stone"))
	rule := lanternRule(reg, 0.5, false)

	for x := 0; x < 20; x++ {
		ctx := contextFor(tpl, centerOf(t, tpl))
		ctx.Block.Pos = vec.New(x, 65, 0)

		first, err := rule.Process(ctx)
		require.NoError(t, err)
		second, err := rule.Process(ctx)
		require.NoError(t, err)
		assert.Equal(t, first.State.String(), second.State.String())
	}
}

func TestCeilingAttachment_Metrics(t *testing.T) {
	reg := testRegistry()
	m := NewMetrics(prometheus.NewRegistry())
	tpl := template.New("cell", vec.New(3, 3, 3), cell(t, reg, "minecraft:stone"))

	rule := lanternRule(reg, 1.0, true, WithMetrics(m))

	// Нет стены
	_, err := rule.Process(contextFor(tpl, centerOf(t, tpl)))
	require.NoError(t, err)

	// Не воздух
	floor, _ := tpl.Palettes[0].Find(vec.New(0, 0, 0))
	_, err = rule.Process(contextFor(tpl, floor))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues(CeilingAttachmentType, outcomeNoWall)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues(CeilingAttachmentType, outcomeNotAir)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.decisions.WithLabelValues(CeilingAttachmentType, outcomeReplaced)))
}

func TestCeilingAttachment_RarityGateBoundary(t *testing.T) {
	reg := testRegistry()
	tpl := template.New("cell", vec.New(3, 3, 3), cell(t, reg, "minecraft:stone"))
	ctx := contextFor(tpl, centerOf(t, tpl))

	rng, err := NewRandom(RandomBlock, ctx.Block.Pos, ctx.PiecePos, ctx.StructurePos, ctx.World, ceilingAttachmentSeed)
	require.NoError(t, err)
	draw := rng.Float32()
	require.Greater(t, draw, float32(0))

	// Выпавшее значение, равное Rarity, проходит
	out, err := lanternRule(reg, draw, false).Process(ctx)
	require.NoError(t, err)
	assert.True(t, out.State.Is("minecraft:lantern"))

	// Rarity чуть меньше выпавшего значения отсекает блок
	out, err = lanternRule(reg, math.Nextafter32(draw, 0), false).Process(ctx)
	require.NoError(t, err)
	assert.Equal(t, ctx.Block, out)
}

package processor

import (
	"testing"

	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/block"
	"github.com/annel0/structure-toolkit/internal/world/block/implementations"
	"github.com/annel0/structure-toolkit/internal/world/template"
	"github.com/stretchr/testify/require"
)

func testRegistry() *block.Registry {
	return implementations.NewDefaultRegistry()
}

// blockAt создаёт блок шаблона с состоянием из строки
func blockAt(t *testing.T, reg *block.Registry, state string, x, y, z int) template.BlockInfo {
	t.Helper()
	st, err := reg.ParseState(state)
	require.NoError(t, err)
	return template.BlockInfo{Pos: vec.New(x, y, z), State: st}
}

// deferredAt создаёт jigsaw-маркер с итоговым блоком finalID
func deferredAt(finalID string, x, y, z int) template.BlockInfo {
	return template.BlockInfo{
		Pos:   vec.New(x, y, z),
		State: block.Deferred(finalID),
		NBT:   template.Metadata{template.FinalStateKey: finalID},
	}
}

// cell - комната 3x3x3: центр (1,1,1) - воздух, все соседи по горизонтали
// и диагонали - воздух, потолок над центром задается ceiling
func cell(t *testing.T, reg *block.Registry, ceiling string) template.Palette {
	t.Helper()
	var blocks template.Palette
	for x := 0; x < 3; x++ {
		for z := 0; z < 3; z++ {
			blocks = append(blocks, blockAt(t, reg, "minecraft:stone", x, 0, z))
			blocks = append(blocks, blockAt(t, reg, "minecraft:air", x, 1, z))
			top := "minecraft:air"
			if x == 1 && z == 1 {
				top = ceiling
			}
			blocks = append(blocks, blockAt(t, reg, top, x, 2, z))
		}
	}
	return blocks
}

// replace заменяет блок в позиции pos
func replace(blocks template.Palette, bi template.BlockInfo) template.Palette {
	out := make(template.Palette, 0, len(blocks))
	for _, b := range blocks {
		if b.Pos.Equals(bi.Pos) {
			out = append(out, bi)
			continue
		}
		out = append(out, b)
	}
	return out
}

var testPiecePos = vec.New(100, 64, 200)

// contextFor собирает контекст решения для сырого блока raw
func contextFor(tpl *template.Template, raw template.BlockInfo) *Context {
	piece := testPiecePos
	return &Context{
		World:        StaticSeed(42),
		PiecePos:     &piece,
		StructurePos: &piece,
		Settings:     &template.PlacementSettings{},
		Template:     tpl,
		RawBlock:     raw,
		Block:        raw.WithPos(raw.Pos.Add(piece)),
	}
}

package implementations

import "github.com/annel0/structure-toolkit/internal/world/block"

// Полные блоки ландшафта
var terrainBlocks = []string{
	"minecraft:stone",
	"minecraft:cobblestone",
	"minecraft:mossy_cobblestone",
	"minecraft:granite",
	"minecraft:diorite",
	"minecraft:andesite",
	"minecraft:deepslate",
	"minecraft:tuff",
	"minecraft:dirt",
	"minecraft:grass_block",
	"minecraft:sand",
	"minecraft:gravel",
	"minecraft:glowstone",
}

func registerTerrain(r *block.Registry) {
	for _, name := range terrainBlocks {
		r.MustRegister(&block.Type{Name: name, Shape: block.FullCube})
	}
}

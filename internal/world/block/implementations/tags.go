package implementations

import "github.com/annel0/structure-toolkit/internal/world/block"

func registerTags(r *block.Registry) {
	r.RegisterTag("minecraft:base_stone_overworld",
		"minecraft:stone", "minecraft:granite", "minecraft:diorite",
		"minecraft:andesite", "minecraft:deepslate", "minecraft:tuff",
	)
	r.RegisterTag("structure_toolkit:hanging_lights",
		"minecraft:lantern", "minecraft:soul_lantern",
	)
	r.RegisterTag("structure_toolkit:ceiling_decor",
		"minecraft:lantern", "minecraft:soul_lantern", "minecraft:chain",
		"minecraft:cobweb", "minecraft:spore_blossom", "minecraft:pointed_dripstone",
	)
	r.RegisterTag("minecraft:walls",
		"minecraft:stone_brick_wall", "minecraft:cobblestone_wall",
		"minecraft:mossy_cobblestone_wall", "minecraft:deepslate_brick_wall",
	)
}

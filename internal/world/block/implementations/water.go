package implementations

import "github.com/annel0/structure-toolkit/internal/world/block"

// Жидкости не имеют коллизии и не считаются твердыми
func registerLiquids(r *block.Registry) {
	r.MustRegister(
		&block.Type{
			Name:     "minecraft:water",
			Liquid:   true,
			Defaults: block.Properties{"level": "0"},
			Shape:    block.EmptyShape,
		},
		&block.Type{
			Name:     "minecraft:lava",
			Liquid:   true,
			Defaults: block.Properties{"level": "0"},
			Shape:    block.EmptyShape,
		},
	)
}

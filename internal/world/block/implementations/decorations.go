package implementations

import "github.com/annel0/structure-toolkit/internal/world/block"

var (
	lanternStanding = block.Shape{
		block.Cuboid(5, 0, 5, 11, 7, 11),
		block.Cuboid(6, 7, 6, 10, 9, 10),
	}
	lanternHanging = block.Shape{
		block.Cuboid(5, 1, 5, 11, 8, 11),
		block.Cuboid(6, 8, 6, 10, 10, 10),
	}
)

func lanternShape(props block.Properties) block.Shape {
	if props["hanging"] == "true" {
		return lanternHanging
	}
	return lanternStanding
}

func chainShape(props block.Properties) block.Shape {
	switch props["axis"] {
	case "x":
		return block.Shape{block.Cuboid(0, 6.5, 6.5, 16, 9.5, 9.5)}
	case "z":
		return block.Shape{block.Cuboid(6.5, 6.5, 0, 9.5, 9.5, 16)}
	default:
		return block.Shape{block.Cuboid(6.5, 0, 6.5, 9.5, 16, 9.5)}
	}
}

// Блоки, которые обработчики вешают на потолок и стены
func registerDecorations(r *block.Registry) {
	r.MustRegister(
		&block.Type{
			Name:      "minecraft:lantern",
			Defaults:  block.Properties{"hanging": "false", "waterlogged": "false"},
			ShapeFunc: lanternShape,
		},
		&block.Type{
			Name:      "minecraft:soul_lantern",
			Defaults:  block.Properties{"hanging": "false", "waterlogged": "false"},
			ShapeFunc: lanternShape,
		},
		&block.Type{
			Name:      "minecraft:chain",
			Defaults:  block.Properties{"axis": "y", "waterlogged": "false"},
			ShapeFunc: chainShape,
		},
		&block.Type{Name: "minecraft:cobweb", Shape: block.EmptyShape},
		&block.Type{Name: "minecraft:vine", Shape: block.EmptyShape},
		&block.Type{Name: "minecraft:spore_blossom", Shape: block.EmptyShape},
		&block.Type{
			Name:  "minecraft:pointed_dripstone",
			Shape: block.Shape{block.Cuboid(5, 0, 5, 11, 16, 11)},
		},
	)
}

package implementations

import "github.com/annel0/structure-toolkit/internal/world/block"

func slabShape(props block.Properties) block.Shape {
	switch props["type"] {
	case "top":
		return block.Shape{block.Cuboid(0, 8, 0, 16, 16, 16)}
	case "double":
		return block.FullCube
	default:
		return block.Shape{block.Cuboid(0, 0, 0, 16, 8, 16)}
	}
}

// Ступени: основание на половине half и верхняя четверть со стороны facing
func stairsShape(props block.Properties) block.Shape {
	baseY0, baseY1, stepY0, stepY1 := 0.0, 8.0, 8.0, 16.0
	if props["half"] == "top" {
		baseY0, baseY1, stepY0, stepY1 = 8, 16, 0, 8
	}

	base := block.Cuboid(0, baseY0, 0, 16, baseY1, 16)
	var step block.Box
	switch props["facing"] {
	case "south":
		step = block.Cuboid(0, stepY0, 8, 16, stepY1, 16)
	case "west":
		step = block.Cuboid(0, stepY0, 0, 8, stepY1, 16)
	case "east":
		step = block.Cuboid(8, stepY0, 0, 16, stepY1, 16)
	default:
		step = block.Cuboid(0, stepY0, 0, 16, stepY1, 8)
	}
	return block.Shape{base, step}
}

func wallShape(props block.Properties) block.Shape {
	var shape block.Shape
	if props["up"] == "true" {
		shape = append(shape, block.Cuboid(4, 0, 4, 12, 16, 12))
	}
	arms := map[string]block.Box{
		"north": block.Cuboid(5, 0, 0, 11, 14, 5),
		"south": block.Cuboid(5, 0, 11, 11, 14, 16),
		"west":  block.Cuboid(0, 0, 5, 5, 14, 11),
		"east":  block.Cuboid(11, 0, 5, 16, 14, 11),
	}
	for side, box := range arms {
		switch props[side] {
		case "low":
			shape = append(shape, box)
		case "tall":
			box.Max[1] = 1
			shape = append(shape, box)
		}
	}
	return shape
}

var stairsDefaults = block.Properties{
	"facing":      "north",
	"half":        "bottom",
	"shape":       "straight",
	"waterlogged": "false",
}

var slabDefaults = block.Properties{
	"type":        "bottom",
	"waterlogged": "false",
}

var wallDefaults = block.Properties{
	"up":          "true",
	"north":       "none",
	"south":       "none",
	"west":        "none",
	"east":        "none",
	"waterlogged": "false",
}

// Плиты, ступени и стены для материалов, которые меняются процессорами
func registerBuildingBlocks(r *block.Registry) {
	for _, material := range []string{"stone_brick", "cobblestone", "mossy_cobblestone", "deepslate_brick"} {
		r.MustRegister(
			&block.Type{
				Name:      "minecraft:" + material + "_slab",
				Defaults:  slabDefaults,
				ShapeFunc: slabShape,
			},
			&block.Type{
				Name:      "minecraft:" + material + "_stairs",
				Defaults:  stairsDefaults,
				ShapeFunc: stairsShape,
			},
			&block.Type{
				Name:      "minecraft:" + material + "_wall",
				Defaults:  wallDefaults,
				ShapeFunc: wallShape,
			},
		)
	}
	r.MustRegister(&block.Type{Name: "minecraft:stone_bricks", Shape: block.FullCube})
}

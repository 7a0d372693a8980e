package implementations

import "github.com/annel0/structure-toolkit/internal/world/block"

// Воздух не имеет коллизии. void_air тоже считается воздухом у типа,
// но не входит в список "обычного" воздуха при классификации шаблонов.
func registerAir(r *block.Registry) {
	r.MustRegister(
		&block.Type{Name: block.AirName, Air: true, Shape: block.EmptyShape},
		&block.Type{Name: block.CaveAirName, Air: true, Shape: block.EmptyShape},
		&block.Type{Name: block.VoidAirName, Air: true, Shape: block.EmptyShape},
	)
}

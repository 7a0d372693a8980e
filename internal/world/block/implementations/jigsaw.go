package implementations

import "github.com/annel0/structure-toolkit/internal/world/block"

// Jigsaw - маркер соединения частей структуры. Итоговый блок хранится в
// метаданных шаблона, при разборе шаблона маркер превращается в
// отложенное состояние.
func registerJigsaw(r *block.Registry) {
	r.MustRegister(&block.Type{
		Name:     block.JigsawName,
		Defaults: block.Properties{"orientation": "north_up"},
		Shape:    block.FullCube,
	})
}

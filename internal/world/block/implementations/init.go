package implementations

import "github.com/annel0/structure-toolkit/internal/world/block"

// RegisterDefaults регистрирует встроенный каталог блоков и тегов
func RegisterDefaults(r *block.Registry) {
	// Базовые блоки
	registerAir(r)
	registerTerrain(r)
	registerLiquids(r)

	// Декоративные блоки
	registerDecorations(r)
	registerBuildingBlocks(r)

	// Специальные блоки
	registerJigsaw(r)

	registerTags(r)
}

// NewDefaultRegistry создаёт реестр со встроенным каталогом
func NewDefaultRegistry() *block.Registry {
	r := block.NewRegistry()
	RegisterDefaults(r)
	return r
}

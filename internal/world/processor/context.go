package processor

import (
	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/template"
)

// SeedSource - мир, из которого обработчики читают постоянный сид.
// Сид считается неизменным в течение прохода генерации.
type SeedSource interface {
	Seed() int64
}

// StaticSeed - мир с фиксированным сидом
type StaticSeed int64

// Seed возвращает сид
func (s StaticSeed) Seed() int64 { return int64(s) }

// Context - данные, доступные обработчику при решении по одному блоку.
// Все поля только для чтения.
type Context struct {
	World        SeedSource
	PiecePos     *vec.Vec3
	StructurePos *vec.Vec3
	Settings     *template.PlacementSettings
	Template     *template.Template

	// RawBlock - блок в локальных координатах шаблона до поворота и смещения
	RawBlock template.BlockInfo
	// Block - тот же блок после трансформаций и предыдущих обработчиков
	Block template.BlockInfo

	// Palette - уже выбранная палитра части; если пусто, выбирается заново
	Palette template.Palette
}

// PieceBlocks возвращает блоки палитры, выбранной для этой части
func (c *Context) PieceBlocks() template.Palette {
	if c.Palette != nil {
		return c.Palette
	}
	if c.Template == nil {
		return nil
	}
	return c.Settings.SelectPalette(c.Template.Palettes, c.PiecePos)
}

package template

import (
	"fmt"

	"github.com/annel0/structure-toolkit/internal/vec"
)

// Palette - один из вариантов набора блоков шаблона
type Palette []BlockInfo

// Find возвращает первый блок палитры в позиции pos
func (p Palette) Find(pos vec.Vec3) (BlockInfo, bool) {
	for _, bi := range p {
		if bi.Pos.Equals(pos) {
			return bi, true
		}
	}
	return BlockInfo{}, false
}

// Template - заготовка части структуры с одной или несколькими палитрами
type Template struct {
	Name     string
	Size     vec.Vec3
	Palettes []Palette
}

// New создаёт шаблон с одной палитрой
func New(name string, size vec.Vec3, blocks Palette) *Template {
	return &Template{
		Name:     name,
		Size:     size,
		Palettes: []Palette{blocks},
	}
}

// Validate проверяет, что позиции в каждой палитре уникальны
// и лежат внутри размеров шаблона
func (t *Template) Validate() error {
	for i, palette := range t.Palettes {
		seen := make(map[vec.Vec3]struct{}, len(palette))
		for _, bi := range palette {
			if _, dup := seen[bi.Pos]; dup {
				return fmt.Errorf("шаблон %s, палитра %d: повтор позиции %v", t.Name, i, bi.Pos)
			}
			seen[bi.Pos] = struct{}{}

			if bi.Pos.X < 0 || bi.Pos.Y < 0 || bi.Pos.Z < 0 ||
				bi.Pos.X >= t.Size.X || bi.Pos.Y >= t.Size.Y || bi.Pos.Z >= t.Size.Z {
				return fmt.Errorf("шаблон %s, палитра %d: позиция %v вне размеров %v", t.Name, i, bi.Pos, t.Size)
			}
		}
	}
	return nil
}

// BlockCount возвращает количество блоков в самой большой палитре
func (t *Template) BlockCount() int {
	n := 0
	for _, p := range t.Palettes {
		if len(p) > n {
			n = len(p)
		}
	}
	return n
}

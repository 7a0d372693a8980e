package template

import (
	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/block"
)

// FinalStateKey - ключ метаданных jigsaw-маркера с итоговым блоком
const FinalStateKey = "final_state"

// Metadata - вспомогательные данные блока шаблона (аналог NBT)
type Metadata map[string]interface{}

// Clone создаёт поверхностную копию метаданных
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// GetString возвращает строковое значение по ключу
func (m Metadata) GetString(key string) string {
	s, _ := m[key].(string)
	return s
}

// BlockInfo - один блок шаблона: позиция, состояние и метаданные.
// Значения BlockInfo принадлежат шаблону, обработчики их не изменяют,
// а возвращают новые.
type BlockInfo struct {
	Pos   vec.Vec3
	State block.State
	NBT   Metadata
}

// WithPos возвращает копию с другой позицией
func (bi BlockInfo) WithPos(pos vec.Vec3) BlockInfo {
	return BlockInfo{Pos: pos, State: bi.State, NBT: bi.NBT}
}

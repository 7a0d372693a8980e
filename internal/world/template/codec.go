package template

import (
	"encoding/json"
	"fmt"

	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/block"
)

// fileBlock - блок в файловом представлении шаблона
type fileBlock struct {
	Pos   [3]int   `json:"pos"`
	State int      `json:"state"`
	NBT   Metadata `json:"nbt,omitempty"`
}

// File - файловое представление шаблона. Блоки ссылаются на индекс
// состояния; при нескольких палитрах индекс применяется к каждой.
type File struct {
	Name     string      `json:"name"`
	Size     [3]int      `json:"size"`
	Palette  []string    `json:"palette,omitempty"`
	Palettes [][]string  `json:"palettes,omitempty"`
	Blocks   []fileBlock `json:"blocks"`
}

// Decode разбирает шаблон из JSON. Маркеры jigsaw превращаются в отложенные
// состояния с идентификатором из метаданных final_state.
func Decode(reg *block.Registry, data []byte) (*Template, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблона: %w", err)
	}

	lists := f.Palettes
	if len(lists) == 0 {
		if len(f.Palette) == 0 {
			return nil, fmt.Errorf("шаблон %s: нет палитры", f.Name)
		}
		lists = [][]string{f.Palette}
	}

	t := &Template{
		Name: f.Name,
		Size: vec.New(f.Size[0], f.Size[1], f.Size[2]),
	}

	for pi, list := range lists {
		states := make([]block.State, len(list))
		for i, s := range list {
			st, err := reg.ParseState(s)
			if err != nil {
				return nil, fmt.Errorf("шаблон %s, палитра %d: %w", f.Name, pi, err)
			}
			states[i] = st
		}

		palette := make(Palette, 0, len(f.Blocks))
		for _, fb := range f.Blocks {
			if fb.State < 0 || fb.State >= len(states) {
				return nil, fmt.Errorf("шаблон %s: индекс состояния %d вне палитры", f.Name, fb.State)
			}
			state := states[fb.State]
			if state.Is(block.JigsawName) {
				state = block.Deferred(fb.NBT.GetString(FinalStateKey))
			}
			palette = append(palette, BlockInfo{
				Pos:   vec.New(fb.Pos[0], fb.Pos[1], fb.Pos[2]),
				State: state,
				NBT:   fb.NBT.Clone(),
			})
		}
		t.Palettes = append(t.Palettes, palette)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Encode сериализует шаблон с одной палитрой в JSON.
// Отложенные состояния записываются как jigsaw с final_state.
func Encode(t *Template) ([]byte, error) {
	if len(t.Palettes) != 1 {
		return nil, fmt.Errorf("шаблон %s: поддерживается запись только одной палитры, получено %d", t.Name, len(t.Palettes))
	}

	f := File{
		Name: t.Name,
		Size: [3]int{t.Size.X, t.Size.Y, t.Size.Z},
	}
	index := make(map[string]int)

	for _, bi := range t.Palettes[0] {
		key := bi.State.String()
		nbt := bi.NBT.Clone()
		if bi.State.IsDeferred() {
			key = block.JigsawName
			if nbt == nil {
				nbt = Metadata{}
			}
			nbt[FinalStateKey] = bi.State.DeferredID()
		}

		idx, ok := index[key]
		if !ok {
			idx = len(f.Palette)
			index[key] = idx
			f.Palette = append(f.Palette, key)
		}

		f.Blocks = append(f.Blocks, fileBlock{
			Pos:   [3]int{bi.Pos.X, bi.Pos.Y, bi.Pos.Z},
			State: idx,
			NBT:   nbt,
		})
	}

	return json.Marshal(f)
}

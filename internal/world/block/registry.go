package block

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultNamespace подставляется в идентификаторы без пространства имен
const DefaultNamespace = "minecraft"

// Имена блоков, которые нужны ядру обработчиков
const (
	AirName     = "minecraft:air"
	CaveAirName = "minecraft:cave_air"
	VoidAirName = "minecraft:void_air"
	JigsawName  = "minecraft:jigsaw"
)

// ErrUnknownBlockType возвращается, если идентификатор не найден в реестре
var ErrUnknownBlockType = errors.New("unknown block type")

// Registry хранит типы блоков и теги по их идентификаторам.
// Реестр передается в обработчики явно, глобального экземпляра нет.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Type
	tags  map[string][]string
}

// NewRegistry создает пустой реестр
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*Type),
		tags:  make(map[string][]string),
	}
}

// NormalizeName приводит идентификатор к виду "namespace:path".
// Суффикс свойств вида "[facing=north]" отбрасывается.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)
	if name == "" {
		return ""
	}
	if !strings.Contains(name, ":") {
		return DefaultNamespace + ":" + name
	}
	return name
}

// Register добавляет тип блока в реестр
func (r *Registry) Register(t *Type) error {
	if t == nil {
		return fmt.Errorf("пустой тип блока")
	}
	name := NormalizeName(t.Name)
	if name == "" {
		return fmt.Errorf("тип блока без имени")
	}
	t.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[name]; exists {
		return fmt.Errorf("тип блока %s уже зарегистрирован", name)
	}
	r.types[name] = t
	return nil
}

// MustRegister регистрирует типы и паникует при ошибке.
// Используется только для встроенного каталога.
func (r *Registry) MustRegister(types ...*Type) {
	for _, t := range types {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Lookup возвращает тип блока по идентификатору
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[NormalizeName(name)]
	return t, ok
}

// Resolve возвращает тип блока или ErrUnknownBlockType
func (r *Registry) Resolve(name string) (*Type, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, name)
	}
	return t, nil
}

// IsValidName проверяет, зарегистрирован ли идентификатор
func (r *Registry) IsValidName(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names возвращает отсортированный список зарегистрированных идентификаторов
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterTag добавляет участников в тег. Участники проверяются при чтении тега,
// поэтому тег можно объявить раньше самих блоков.
func (r *Registry) RegisterTag(tag string, members ...string) {
	tag = NormalizeName(tag)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range members {
		r.tags[tag] = append(r.tags[tag], NormalizeName(m))
	}
}

// Tag возвращает типы блоков, входящие в тег, в порядке объявления
func (r *Registry) Tag(tag string) ([]*Type, error) {
	tag = NormalizeName(tag)

	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.tags[tag]
	if !ok {
		return nil, fmt.Errorf("неизвестный тег блоков: %q", tag)
	}

	out := make([]*Type, 0, len(members))
	for _, m := range members {
		t, ok := r.types[m]
		if !ok {
			return nil, fmt.Errorf("тег %s: %w: %q", tag, ErrUnknownBlockType, m)
		}
		out = append(out, t)
	}
	return out, nil
}

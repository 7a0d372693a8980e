package block

import (
	"fmt"
	"sort"
	"strings"
)

// Properties - свойства варианта блока (ориентация, половина плиты и т.п.)
type Properties map[string]string

// Clone создаёт копию свойств
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Type описывает тип блока в реестре
type Type struct {
	Name     string
	Air      bool
	Liquid   bool
	Defaults Properties

	// Shape - форма коллизии по умолчанию. Если задана ShapeFunc,
	// форма вычисляется по свойствам конкретного состояния.
	Shape     Shape
	ShapeFunc func(props Properties) Shape
}

// DefaultState возвращает состояние блока по умолчанию
func (t *Type) DefaultState() State {
	return Concrete(t, t.Defaults)
}

// CollisionShape возвращает форму коллизии для свойств состояния
func (t *Type) CollisionShape(props Properties) Shape {
	if t.ShapeFunc != nil {
		merged := t.Defaults.Clone()
		if merged == nil {
			merged = Properties{}
		}
		for k, v := range props {
			merged[k] = v
		}
		return t.ShapeFunc(merged)
	}
	return t.Shape
}

// HasProperty проверяет, объявлено ли свойство у типа
func (t *Type) HasProperty(key string) bool {
	_, ok := t.Defaults[key]
	return ok
}

// State - состояние блока в шаблоне. Это размеченное объединение:
// конкретный тип со свойствами либо отложенный блок, чей итоговый
// тип известен только по идентификатору (маркер jigsaw).
type State struct {
	typ      *Type
	props    Properties
	deferred string
}

// Concrete создаёт состояние конкретного типа блока
func Concrete(t *Type, props Properties) State {
	return State{typ: t, props: props.Clone()}
}

// Deferred создаёт отложенное состояние с итоговым идентификатором блока
func Deferred(finalID string) State {
	return State{deferred: finalID}
}

// IsDeferred сообщает, является ли состояние отложенным
func (s State) IsDeferred() bool {
	return s.typ == nil
}

// Type возвращает тип блока для конкретного состояния (nil для отложенного)
func (s State) Type() *Type {
	return s.typ
}

// DeferredID возвращает итоговый идентификатор отложенного блока
func (s State) DeferredID() string {
	return s.deferred
}

// Is проверяет, что состояние конкретное и его тип имеет указанное имя
func (s State) Is(name string) bool {
	return s.typ != nil && s.typ.Name == NormalizeName(name)
}

// Property возвращает значение свойства
func (s State) Property(key string) (string, bool) {
	v, ok := s.props[key]
	return v, ok
}

// Properties возвращает копию свойств состояния
func (s State) Properties() Properties {
	return s.props.Clone()
}

// With возвращает новое состояние с изменённым свойством.
// Свойства, не объявленные типом, игнорируются.
func (s State) With(key, value string) State {
	if s.typ == nil || !s.typ.HasProperty(key) {
		return s
	}
	props := s.props.Clone()
	if props == nil {
		props = Properties{}
	}
	props[key] = value
	return State{typ: s.typ, props: props}
}

// CollisionShape возвращает форму коллизии конкретного состояния
func (s State) CollisionShape() Shape {
	if s.typ == nil {
		return nil
	}
	return s.typ.CollisionShape(s.props)
}

// String форматирует состояние как "ns:name[k=v,...]"
func (s State) String() string {
	if s.typ == nil {
		return fmt.Sprintf("deferred(%s)", s.deferred)
	}
	if len(s.props) == 0 {
		return s.typ.Name
	}
	keys := make([]string, 0, len(s.props))
	for k := range s.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+s.props[k])
	}
	return s.typ.Name + "[" + strings.Join(parts, ",") + "]"
}

// ParseState разбирает строку вида "ns:name[k=v,...]" в конкретное состояние.
// Свойства, не объявленные типом, отклоняются.
func (r *Registry) ParseState(s string) (State, error) {
	name := s
	var rawProps string
	if i := strings.IndexByte(s, '['); i >= 0 {
		if !strings.HasSuffix(s, "]") {
			return State{}, fmt.Errorf("некорректное состояние блока: %q", s)
		}
		name, rawProps = s[:i], s[i+1:len(s)-1]
	}

	t, err := r.Resolve(name)
	if err != nil {
		return State{}, err
	}

	state := t.DefaultState()
	if rawProps == "" {
		return state, nil
	}
	for _, kv := range strings.Split(rawProps, ",") {
		k, v, ok := strings.Cut(kv, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" {
			return State{}, fmt.Errorf("некорректное свойство %q в %q", kv, s)
		}
		if !t.HasProperty(k) {
			return State{}, fmt.Errorf("блок %s не имеет свойства %q", t.Name, k)
		}
		state = state.With(k, v)
	}
	return state, nil
}

package processor

import (
	"fmt"
	"strings"
)

// RandomType выбирает, от какой позиции (или сида мира) зависит
// генератор случайных чисел обработчика
type RandomType uint8

const (
	RandomBlock RandomType = iota
	RandomPiece
	RandomStructure
	RandomWorld
)

var randomTypeNames = [...]string{"block", "piece", "structure", "world"}

func (rt RandomType) String() string {
	if int(rt) < len(randomTypeNames) {
		return randomTypeNames[rt]
	}
	return fmt.Sprintf("RandomType(%d)", uint8(rt))
}

// ParseRandomType разбирает имя режима без учета регистра
func ParseRandomType(s string) (RandomType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range randomTypeNames {
		if name == s {
			return RandomType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown random type %q", ErrConfiguration, s)
}

// MarshalText реализует encoding.TextMarshaler
func (rt RandomType) MarshalText() ([]byte, error) {
	if int(rt) >= len(randomTypeNames) {
		return nil, fmt.Errorf("%w: unknown random type %d", ErrConfiguration, uint8(rt))
	}
	return []byte(rt.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler (JSON и YAML)
func (rt *RandomType) UnmarshalText(text []byte) error {
	v, err := ParseRandomType(string(text))
	if err != nil {
		return err
	}
	*rt = v
	return nil
}

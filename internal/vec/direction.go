package vec

import "fmt"

// Direction - одна из шести граней блока
type Direction uint8

const (
	Down Direction = iota
	Up
	North
	South
	West
	East
)

// Directions перечисляет все направления в каноническом порядке
var Directions = [...]Direction{Down, Up, North, South, West, East}

var directionNames = [...]string{"down", "up", "north", "south", "west", "east"}

// Axis - ось координат
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Normal возвращает единичный вектор направления
func (d Direction) Normal() Vec3 {
	switch d {
	case Down:
		return Vec3{Y: -1}
	case Up:
		return Vec3{Y: 1}
	case North:
		return Vec3{Z: -1}
	case South:
		return Vec3{Z: 1}
	case West:
		return Vec3{X: -1}
	case East:
		return Vec3{X: 1}
	default:
		return Vec3{}
	}
}

// Axis возвращает ось, вдоль которой направлена грань
func (d Direction) Axis() Axis {
	switch d {
	case Down, Up:
		return AxisY
	case North, South:
		return AxisZ
	default:
		return AxisX
	}
}

// Positive сообщает, смотрит ли грань в сторону увеличения координаты
func (d Direction) Positive() bool {
	return d == Up || d == South || d == East
}

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	switch d {
	case Down:
		return Up
	case Up:
		return Down
	case North:
		return South
	case South:
		return North
	case West:
		return East
	default:
		return West
	}
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection разбирает имя направления ("north", "up", ...)
func ParseDirection(name string) (Direction, error) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("неизвестное направление: %q", name)
}

package vec

import "fmt"

// Vec3 представляет позицию блока в трехмерном пространстве.
// Значение неизменяемо: все методы возвращают новый вектор.
type Vec3 struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// Zero - начало координат
var Zero = Vec3{}

// New создает Vec3 из трех координат
func New(x, y, z int) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Offset сдвигает позицию на один блок в направлении dir
func (v Vec3) Offset(dir Direction) Vec3 {
	return v.Add(dir.Normal())
}

// North возвращает соседа с севера (z-1)
func (v Vec3) North() Vec3 { return v.Offset(North) }

// South возвращает соседа с юга (z+1)
func (v Vec3) South() Vec3 { return v.Offset(South) }

// West возвращает соседа с запада (x-1)
func (v Vec3) West() Vec3 { return v.Offset(West) }

// East возвращает соседа с востока (x+1)
func (v Vec3) East() Vec3 { return v.Offset(East) }

// Above возвращает блок сверху
func (v Vec3) Above() Vec3 { return v.Offset(Up) }

// Below возвращает блок снизу
func (v Vec3) Below() Vec3 { return v.Offset(Down) }

// SideNeighbours возвращает 4 горизонтальных соседа (N, S, W, E).
// При diagonal=true добавляются еще 4 диагональных: NE, SE, SW, NW.
func (v Vec3) SideNeighbours(diagonal bool) []Vec3 {
	out := make([]Vec3, 0, 8)
	out = append(out, v.North(), v.South(), v.West(), v.East())
	if diagonal {
		out = append(out,
			v.North().East(),
			v.East().South(),
			v.South().West(),
			v.West().North(),
		)
	}
	return out
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}

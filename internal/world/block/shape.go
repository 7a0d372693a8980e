package block

import (
	"sort"

	"github.com/annel0/structure-toolkit/internal/vec"
)

const shapeEpsilon = 1e-7

// Box - параллелепипед коллизии в локальных координатах блока [0, 1]
type Box struct {
	Min [3]float64
	Max [3]float64
}

// Shape - форма коллизии блока, объединение параллелепипедов
type Shape []Box

// Cuboid создаёт параллелепипед в шестнадцатых долях блока (0..16)
func Cuboid(x1, y1, z1, x2, y2, z2 float64) Box {
	return Box{
		Min: [3]float64{x1 / 16, y1 / 16, z1 / 16},
		Max: [3]float64{x2 / 16, y2 / 16, z2 / 16},
	}
}

// FullCube - полный блок
var FullCube = Shape{{Min: [3]float64{0, 0, 0}, Max: [3]float64{1, 1, 1}}}

// EmptyShape - блок без коллизии
var EmptyShape = Shape{}

// IsEmpty сообщает, что форма не имеет объема
func (s Shape) IsEmpty() bool {
	for _, b := range s {
		if b.Max[0]-b.Min[0] > shapeEpsilon && b.Max[1]-b.Min[1] > shapeEpsilon && b.Max[2]-b.Min[2] > shapeEpsilon {
			return false
		}
	}
	return true
}

// faceAxes возвращает индекс оси грани и две оси плоскости грани
func faceAxes(dir vec.Direction) (int, int, int) {
	switch dir.Axis() {
	case vec.AxisX:
		return 0, 1, 2
	case vec.AxisY:
		return 1, 0, 2
	default:
		return 2, 0, 1
	}
}

// IsFaceFull проверяет, что проекция формы на грань dir полностью
// покрывает квадрат 1x1
func (s Shape) IsFaceFull(dir vec.Direction) bool {
	axis, u, v := faceAxes(dir)

	type rect struct{ u0, u1, v0, v1 float64 }
	rects := make([]rect, 0, len(s))
	for _, b := range s {
		touches := b.Min[axis] <= shapeEpsilon
		if dir.Positive() {
			touches = b.Max[axis] >= 1-shapeEpsilon
		}
		if !touches || b.Max[axis]-b.Min[axis] <= shapeEpsilon {
			continue
		}
		rects = append(rects, rect{
			u0: clamp01(b.Min[u]), u1: clamp01(b.Max[u]),
			v0: clamp01(b.Min[v]), v1: clamp01(b.Max[v]),
		})
	}
	if len(rects) == 0 {
		return false
	}

	// Разбиваем квадрат сеткой по границам прямоугольников и проверяем
	// покрытие центра каждой ячейки.
	us := []float64{0, 1}
	vs := []float64{0, 1}
	for _, r := range rects {
		us = append(us, r.u0, r.u1)
		vs = append(vs, r.v0, r.v1)
	}
	us = uniqueSorted(us)
	vs = uniqueSorted(vs)

	for i := 0; i+1 < len(us); i++ {
		cu := (us[i] + us[i+1]) / 2
		for j := 0; j+1 < len(vs); j++ {
			cv := (vs[j] + vs[j+1]) / 2
			covered := false
			for _, r := range rects {
				if cu >= r.u0 && cu <= r.u1 && cv >= r.v0 && cv <= r.v1 {
					covered = true
					break
				}
			}
			if !covered {
				return false
			}
		}
	}
	return true
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func uniqueSorted(xs []float64) []float64 {
	sort.Float64s(xs)
	out := xs[:0]
	for _, x := range xs {
		if len(out) > 0 && x-out[len(out)-1] <= shapeEpsilon {
			continue
		}
		out = append(out, x)
	}
	return out
}

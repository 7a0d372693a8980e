package processor

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/annel0/structure-toolkit/internal/util"
	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/block"
	"github.com/annel0/structure-toolkit/internal/world/template"
)

// DeriveSeed вычисляет сид генератора обработчика по режиму rt.
// Для BLOCK/PIECE/STRUCTURE берется хеш соответствующей позиции,
// для WORLD - сид мира; к результату прибавляется ruleSeed.
func DeriveSeed(rt RandomType, blockPos vec.Vec3, piecePos, structurePos *vec.Vec3, world SeedSource, ruleSeed int64) (int64, error) {
	switch rt {
	case RandomBlock:
		return positionSeed(&blockPos, ruleSeed), nil
	case RandomPiece:
		return positionSeed(piecePos, ruleSeed), nil
	case RandomStructure:
		return positionSeed(structurePos, ruleSeed), nil
	case RandomWorld:
		if world == nil {
			return 0, fmt.Errorf("%w: random type world without world seed", ErrConfiguration)
		}
		return world.Seed() + ruleSeed, nil
	default:
		return 0, fmt.Errorf("%w: unknown random type %s", ErrConfiguration, rt)
	}
}

// positionSeed возвращает хеш позиции + ruleSeed. Без позиции сид
// берется от текущего времени, и результат намеренно недетерминирован.
func positionSeed(pos *vec.Vec3, ruleSeed int64) int64 {
	if pos == nil {
		return time.Now().UnixMilli() + ruleSeed
	}
	return util.PositionSeed(*pos) + ruleSeed
}

// NewRandom создаёт генератор, посеянный DeriveSeed
func NewRandom(rt RandomType, blockPos vec.Vec3, piecePos, structurePos *vec.Vec3, world SeedSource, ruleSeed int64) (*rand.Rand, error) {
	seed, err := DeriveSeed(rt, blockPos, piecePos, structurePos, world, ruleSeed)
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}

// FindBlock возвращает копию первого блока списка в позиции pos
// или nil, если такого блока нет. Поиск линейный: списки ограничены
// размером части структуры.
func FindBlock(blocks []template.BlockInfo, pos vec.Vec3) *template.BlockInfo {
	for i := range blocks {
		if blocks[i].Pos.Equals(pos) {
			bi := blocks[i]
			return &bi
		}
	}
	return nil
}

// isAirLike - "обычный" воздух шаблона: air и cave_air
func isAirLike(s block.State) bool {
	return s.Is(block.AirName) || s.Is(block.CaveAirName)
}

func isLiquid(s block.State) bool {
	return s.Type() != nil && s.Type().Liquid
}

// resolveDeferred возвращает итоговый тип отложенного блока или nil
func resolveDeferred(reg *block.Registry, s block.State) *block.Type {
	if reg == nil {
		return nil
	}
	t, ok := reg.Lookup(s.DeferredID())
	if !ok {
		return nil
	}
	return t
}

// IsAir сообщает, считается ли блок воздухом.
// Отсутствующий блок (nil) - воздух.
func IsAir(reg *block.Registry, bi *template.BlockInfo) bool {
	if bi == nil {
		return true
	}
	if bi.State.IsDeferred() {
		t := resolveDeferred(reg, bi.State)
		return t == nil || t.Air
	}
	return isAirLike(bi.State)
}

// IsSolid сообщает, считается ли блок твердым.
// Отсутствующий блок (nil) - не твердый, но и IsAir для него true:
// предикаты не являются отрицанием друг друга.
func IsSolid(reg *block.Registry, bi *template.BlockInfo) bool {
	if bi == nil {
		return false
	}
	if bi.State.IsDeferred() {
		t := resolveDeferred(reg, bi.State)
		return t != nil && !t.Air && !t.Liquid
	}
	return !isAirLike(bi.State) && !isLiquid(bi.State)
}

// IsFaceFull сообщает, что блок твердый и его форма коллизии полностью
// закрывает грань dir. Для отложенного блока берется состояние по
// умолчанию итогового типа.
func IsFaceFull(reg *block.Registry, bi *template.BlockInfo, dir vec.Direction) bool {
	if !IsSolid(reg, bi) {
		return false
	}
	if bi.State.IsDeferred() {
		t := resolveDeferred(reg, bi.State)
		return t.DefaultState().CollisionShape().IsFaceFull(dir)
	}
	return bi.State.CollisionShape().IsFaceFull(dir)
}

// PickRandomExcluding отбрасывает кандидатов с идентификаторами из exclude
// и равновероятно выбирает одного из оставшихся
func PickRandomExcluding[T any](candidates []T, id func(T) string, exclude []string, rng *rand.Rand) (T, error) {
	excluded := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		excluded[block.NormalizeName(e)] = struct{}{}
	}

	filtered := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if _, skip := excluded[block.NormalizeName(id(c))]; !skip {
			filtered = append(filtered, c)
		}
	}

	if len(filtered) == 0 {
		var zero T
		return zero, fmt.Errorf("%w: %d candidates, %d excluded", ErrEmptyCandidateSet, len(candidates), len(exclude))
	}
	return filtered[rng.Intn(len(filtered))], nil
}

// RandomBlockFromTag выбирает случайный тип блока из тега, исключая exclude
func RandomBlockFromTag(reg *block.Registry, tag string, rng *rand.Rand, exclude []string) (*block.Type, error) {
	members, err := reg.Tag(tag)
	if err != nil {
		return nil, err
	}
	t, err := PickRandomExcluding(members, typeName, exclude, rng)
	if err != nil {
		return nil, fmt.Errorf("тег %s: %w", tag, err)
	}
	return t, nil
}

func typeName(t *block.Type) string { return t.Name }

// CopyProperties возвращает состояние по умолчанию типа dst, в которое
// перенесены свойства keys из src. Ключи, которых нет у src или которые
// не объявлены у dst, пропускаются.
func CopyProperties(src block.State, dst *block.Type, keys ...string) block.State {
	out := dst.DefaultState()
	for _, k := range keys {
		if v, ok := src.Property(k); ok {
			out = out.With(k, v)
		}
	}
	return out
}

// CopyStairsState переносит ориентацию ступеней на другой материал
func CopyStairsState(src block.State, dst *block.Type) block.State {
	return CopyProperties(src, dst, "facing", "shape", "half", "waterlogged")
}

// CopySlabState переносит тип плиты на другой материал
func CopySlabState(src block.State, dst *block.Type) block.State {
	return CopyProperties(src, dst, "type", "waterlogged")
}

// CopyWallState переносит соединения стены на другой материал
func CopyWallState(src block.State, dst *block.Type) block.State {
	return CopyProperties(src, dst, "up", "east", "north", "south", "west", "waterlogged")
}

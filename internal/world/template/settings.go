package template

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/annel0/structure-toolkit/internal/util"
	"github.com/annel0/structure-toolkit/internal/vec"
)

// Rotation - поворот шаблона вокруг вертикальной оси
type Rotation uint8

const (
	RotationNone Rotation = iota
	RotationClockwise90
	RotationClockwise180
	RotationCounterClockwise90
)

var rotationNames = map[string]Rotation{
	"none":                RotationNone,
	"clockwise_90":        RotationClockwise90,
	"clockwise_180":       RotationClockwise180,
	"counterclockwise_90": RotationCounterClockwise90,
}

// ParseRotation разбирает имя поворота
func ParseRotation(s string) (Rotation, error) {
	if s == "" {
		return RotationNone, nil
	}
	r, ok := rotationNames[s]
	if !ok {
		return 0, fmt.Errorf("неизвестный поворот: %q", s)
	}
	return r, nil
}

// Mirror - зеркальное отражение шаблона
type Mirror uint8

const (
	MirrorNone Mirror = iota
	MirrorLeftRight
	MirrorFrontBack
)

// ParseMirror разбирает имя отражения
func ParseMirror(s string) (Mirror, error) {
	switch s {
	case "", "none":
		return MirrorNone, nil
	case "left_right":
		return MirrorLeftRight, nil
	case "front_back":
		return MirrorFrontBack, nil
	default:
		return 0, fmt.Errorf("неизвестное отражение: %q", s)
	}
}

// PlacementSettings - параметры размещения шаблона в мире
type PlacementSettings struct {
	Rotation Rotation
	Mirror   Mirror
	Pivot    vec.Vec3

	// PaletteSeed, если задан, сеет выбор палитры вместо позиции части.
	// Генератор создается заново при каждом выборе.
	PaletteSeed *int64
}

// SelectPalette выбирает палитру для части структуры в позиции piecePos.
// При одной палитре она возвращается всегда; при нескольких выбор
// детерминирован хешем позиции. При piecePos == nil выбор зависит от времени.
func (s *PlacementSettings) SelectPalette(palettes []Palette, piecePos *vec.Vec3) Palette {
	switch len(palettes) {
	case 0:
		return nil
	case 1:
		return palettes[0]
	}
	return palettes[s.random(piecePos).Intn(len(palettes))]
}

func (s *PlacementSettings) random(pos *vec.Vec3) *rand.Rand {
	if s != nil && s.PaletteSeed != nil {
		return rand.New(rand.NewSource(*s.PaletteSeed))
	}
	if pos == nil {
		return rand.New(rand.NewSource(time.Now().UnixMilli()))
	}
	return rand.New(rand.NewSource(util.PositionSeed(*pos)))
}

// Transform переводит сырую позицию шаблона в повернутую/отраженную
// относительно опорной точки (без смещения части)
func (s *PlacementSettings) Transform(raw vec.Vec3) vec.Vec3 {
	if s == nil {
		return raw
	}
	x, y, z := raw.X, raw.Y, raw.Z

	switch s.Mirror {
	case MirrorLeftRight:
		z = -z
	case MirrorFrontBack:
		x = -x
	}

	px, pz := s.Pivot.X, s.Pivot.Z
	switch s.Rotation {
	case RotationCounterClockwise90:
		return vec.New(px-pz+z, y, px+pz-x)
	case RotationClockwise90:
		return vec.New(px+pz-z, y, pz-px+x)
	case RotationClockwise180:
		return vec.New(px+px-x, y, pz+pz-z)
	default:
		return vec.New(x, y, z)
	}
}

// WorldPos возвращает мировую позицию блока с сырой позицией raw
// для части, размещенной в piecePos
func (s *PlacementSettings) WorldPos(raw, piecePos vec.Vec3) vec.Vec3 {
	return s.Transform(raw).Add(piecePos)
}

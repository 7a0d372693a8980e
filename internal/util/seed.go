package util

import "github.com/annel0/structure-toolkit/internal/vec"

// PositionSeed возвращает детерминированный 64-битный хеш позиции блока.
// Формула совпадает с хешем позиции генератора мира хоста, поэтому при
// одинаковом сиде результаты воспроизводятся между запусками и версиями.
func PositionSeed(pos vec.Vec3) int64 {
	// Первое произведение намеренно вычисляется в 32 битах
	l := int64(int32(pos.X)*3129871) ^ int64(pos.Z)*116129781 ^ int64(pos.Y)
	l = l*l*42317861 + l*11
	return l >> 16
}

package worldgen

import (
	"fmt"
	"math/rand"

	"github.com/annel0/structure-toolkit/internal/logging"
	"github.com/annel0/structure-toolkit/internal/util"
	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/block"
	"github.com/annel0/structure-toolkit/internal/world/template"
)

// Константы генерации пещерной части
const (
	DefaultNoiseScale = 0.18 // Масштаб шума полостей
	DefaultCaveLevel  = 0.52 // Выше - воздух
	DefaultWaterLevel = 0.60 // Полости нижнего слоя выше этого значения заполняются водой
	DefaultJigsawRate = 0.05 // Доля стен-маркеров jigsaw на внешней оболочке
)

// CaveGenerator создаёт шаблоны пещерных частей: каменный массив с
// полостями, вырезанными шумом Перлина
type CaveGenerator struct {
	Seed       int64
	Size       vec.Vec3
	NoiseScale float64
	CaveLevel  float64
	WaterLevel float64
	JigsawRate float64
	Logger     *logging.Logger

	reg   *block.Registry
	noise *util.Noise
}

// NewCaveGenerator создаёт генератор с настройками по умолчанию
func NewCaveGenerator(reg *block.Registry, seed int64, size vec.Vec3) *CaveGenerator {
	return &CaveGenerator{
		Seed:       seed,
		Size:       size,
		NoiseScale: DefaultNoiseScale,
		CaveLevel:  DefaultCaveLevel,
		WaterLevel: DefaultWaterLevel,
		JigsawRate: DefaultJigsawRate,
		Logger:     logging.GetWorldgenLogger(),
		reg:        reg,
		noise:      util.NewNoise(seed),
	}
}

// Generate строит шаблон части с одной палитрой. Внешняя оболочка всегда
// каменная; часть блоков оболочки заменяется jigsaw-маркерами с итоговым
// блоком в метаданных.
func (g *CaveGenerator) Generate(name string) (*template.Template, error) {
	if g.Size.X < 3 || g.Size.Y < 3 || g.Size.Z < 3 {
		return nil, fmt.Errorf("размер части слишком мал: %v", g.Size)
	}

	stone, err := g.state("minecraft:stone")
	if err != nil {
		return nil, err
	}
	air, err := g.state(block.AirName)
	if err != nil {
		return nil, err
	}
	water, err := g.state("minecraft:water")
	if err != nil {
		return nil, err
	}

	// Локальный генератор для детерминированности маркеров
	rng := rand.New(rand.NewSource(g.Seed + int64(g.Size.X*31) + int64(g.Size.Z*17)))

	blocks := make(template.Palette, 0, g.Size.X*g.Size.Y*g.Size.Z)
	var airCount, waterCount, jigsawCount int
	for y := 0; y < g.Size.Y; y++ {
		for z := 0; z < g.Size.Z; z++ {
			for x := 0; x < g.Size.X; x++ {
				pos := vec.New(x, y, z)

				if g.onShell(pos) {
					if rng.Float64() < g.JigsawRate {
						blocks = append(blocks, template.BlockInfo{
							Pos:   pos,
							State: block.Deferred("minecraft:stone"),
							NBT: template.Metadata{
								template.FinalStateKey: "minecraft:stone",
								"pool":                 "structure_toolkit:caves",
							},
						})
						jigsawCount++
						continue
					}
					blocks = append(blocks, template.BlockInfo{Pos: pos, State: stone})
					continue
				}

				density := g.noise.Noise3D(
					float64(x)*g.NoiseScale,
					float64(y)*g.NoiseScale,
					float64(z)*g.NoiseScale,
				)

				switch {
				case density < g.CaveLevel:
					blocks = append(blocks, template.BlockInfo{Pos: pos, State: stone})
				case y == 1 && density > g.WaterLevel:
					blocks = append(blocks, template.BlockInfo{Pos: pos, State: water})
					waterCount++
				default:
					blocks = append(blocks, template.BlockInfo{Pos: pos, State: air})
					airCount++
				}
			}
		}
	}

	if g.Logger != nil {
		g.Logger.Debug("Часть %s %v (seed=%d): воздух %d, вода %d, jigsaw %d из %d блоков",
			name, g.Size, g.Seed, airCount, waterCount, jigsawCount, len(blocks))
	}
	return template.New(name, g.Size, blocks), nil
}

func (g *CaveGenerator) onShell(p vec.Vec3) bool {
	return p.X == 0 || p.Y == 0 || p.Z == 0 ||
		p.X == g.Size.X-1 || p.Y == g.Size.Y-1 || p.Z == g.Size.Z-1
}

func (g *CaveGenerator) state(name string) (block.State, error) {
	t, err := g.reg.Resolve(name)
	if err != nil {
		return block.State{}, err
	}
	return t.DefaultState(), nil
}

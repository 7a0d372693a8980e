package processor

import (
	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/block"
	"github.com/annel0/structure-toolkit/internal/world/template"
)

// CeilingAttachmentType - имя типа обработчика в списках обработчиков
const CeilingAttachmentType = "structure_toolkit:ceiling_attachment"

// Отделяет поток случайных чисел этого обработчика от других,
// использующих тот же хеш позиции
const ceilingAttachmentSeed int64 = 7645816

// Исходы решения для метрик
const (
	outcomeReplaced  = "replaced"
	outcomeNotAir    = "not_air"
	outcomeRarity    = "rarity"
	outcomeNoCeiling = "no_ceiling"
	outcomeNoWall    = "no_wall"
)

// CeilingAttachmentParams - параметры обработчика, загружаются из конфигурации
type CeilingAttachmentParams struct {
	Block      string     `json:"block"`
	NeedsWall  bool       `json:"needs_wall"`
	Rarity     float32    `json:"rarity"`
	RandomType RandomType `json:"random_type"`
}

// CeilingAttachment ставит блок Block в воздух под потолком шаблона,
// при NeedsWall - только если рядом есть стена
type CeilingAttachment struct {
	params  CeilingAttachmentParams
	reg     *block.Registry
	metrics *Metrics
}

// NewCeilingAttachment создаёт обработчик. Rarity должна лежать в [0, 1],
// проверка выполняется при загрузке конфигурации.
func NewCeilingAttachment(reg *block.Registry, params CeilingAttachmentParams, opts ...Option) *CeilingAttachment {
	o := buildOptions(opts)
	return &CeilingAttachment{
		params:  params,
		reg:     reg,
		metrics: o.metrics,
	}
}

// Params возвращает параметры обработчика
func (c *CeilingAttachment) Params() CeilingAttachmentParams {
	return c.params
}

// Type возвращает имя типа обработчика
func (c *CeilingAttachment) Type() string {
	return CeilingAttachmentType
}

// Process решает, заменить ли блок ctx.Block.
// Потолок и стены проверяются по сырой позиции в палитре самой части,
// а не по миру: окружение к этому моменту может быть еще не размещено.
func (c *CeilingAttachment) Process(ctx *Context) (template.BlockInfo, error) {
	bi := ctx.Block
	if !bi.State.Is(block.AirName) {
		c.metrics.observeDecision(CeilingAttachmentType, outcomeNotAir)
		return bi, nil
	}

	rng, err := NewRandom(c.params.RandomType, bi.Pos, ctx.PiecePos, ctx.StructurePos, ctx.World, ceilingAttachmentSeed)
	if err != nil {
		return bi, err
	}
	// Отсекается только draw > Rarity: при Rarity == 0 выпавший ровно 0 проходит
	if rng.Float32() > c.params.Rarity {
		c.metrics.observeDecision(CeilingAttachmentType, outcomeRarity)
		return bi, nil
	}

	pieceBlocks := ctx.PieceBlocks()
	rawPos := ctx.RawBlock.Pos
	if !c.hasCeiling(pieceBlocks, rawPos) {
		c.metrics.observeDecision(CeilingAttachmentType, outcomeNoCeiling)
		return bi, nil
	}
	if c.params.NeedsWall && !c.hasWall(pieceBlocks, rawPos) {
		c.metrics.observeDecision(CeilingAttachmentType, outcomeNoWall)
		return bi, nil
	}

	t, err := c.reg.Resolve(c.params.Block)
	if err != nil {
		return bi, err
	}

	c.metrics.observeDecision(CeilingAttachmentType, outcomeReplaced)
	return template.BlockInfo{Pos: bi.Pos, State: t.DefaultState(), NBT: bi.NBT}, nil
}

func (c *CeilingAttachment) hasCeiling(pieceBlocks []template.BlockInfo, pos vec.Vec3) bool {
	return IsSolid(c.reg, FindBlock(pieceBlocks, pos.Above()))
}

// hasWall проверяет 4 горизонтальных и 4 диагональных соседа
func (c *CeilingAttachment) hasWall(pieceBlocks []template.BlockInfo, pos vec.Vec3) bool {
	for _, n := range pos.SideNeighbours(true) {
		if IsSolid(c.reg, FindBlock(pieceBlocks, n)) {
			return true
		}
	}
	return false
}

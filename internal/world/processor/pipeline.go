package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/structure-toolkit/internal/logging"
	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/template"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName - имя трассировщика конвейера
const TracerName = "github.com/annel0/structure-toolkit/internal/world/processor"

// Placement описывает размещение одной части структуры
type Placement struct {
	World        SeedSource
	Template     *template.Template
	Settings     *template.PlacementSettings
	PiecePos     *vec.Vec3
	StructurePos *vec.Vec3
}

// Pipeline последовательно применяет обработчики к блокам части.
// Pipeline не изменяет шаблон и может использоваться из нескольких
// горутин для разных частей.
type Pipeline struct {
	Rules   []Rule
	Metrics *Metrics
	Logger  *logging.Logger
	Tracer  trace.Tracer
}

// NewPipeline создаёт конвейер из списка обработчиков
func NewPipeline(rules []Rule, metrics *Metrics) *Pipeline {
	return &Pipeline{
		Rules:   rules,
		Metrics: metrics,
		Logger:  logging.GetProcessorLogger(),
		Tracer:  otel.Tracer(TracerName),
	}
}

// Apply выбирает палитру части, переводит каждый блок в мировые координаты
// и пропускает его через все обработчики по порядку. Каждый вызов
// оформляется span-ом "processor.Apply".
func (p *Pipeline) Apply(ctx context.Context, pl Placement) ([]template.BlockInfo, error) {
	tracer := p.Tracer
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	_, span := tracer.Start(ctx, "processor.Apply")
	defer span.End()

	out, replaced, err := p.apply(pl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("structkit.template", pl.Template.Name),
		attribute.Int("structkit.rules", len(p.Rules)),
		attribute.Int("structkit.blocks", len(out)),
		attribute.Int("structkit.replaced", replaced),
	)
	return out, nil
}

func (p *Pipeline) apply(pl Placement) ([]template.BlockInfo, int, error) {
	if pl.Template == nil {
		return nil, 0, fmt.Errorf("%w: placement without template", ErrConfiguration)
	}
	start := time.Now()

	piecePos := vec.Zero
	if pl.PiecePos != nil {
		piecePos = *pl.PiecePos
	}

	palette := pl.Settings.SelectPalette(pl.Template.Palettes, pl.PiecePos)
	out := make([]template.BlockInfo, 0, len(palette))
	replaced := 0

	for _, raw := range palette {
		placed := raw.WithPos(pl.Settings.WorldPos(raw.Pos, piecePos))
		original := placed.State

		ctx := &Context{
			World:        pl.World,
			PiecePos:     pl.PiecePos,
			StructurePos: pl.StructurePos,
			Settings:     pl.Settings,
			Template:     pl.Template,
			Palette:      palette,
			RawBlock:     raw,
		}
		for _, rule := range p.Rules {
			ctx.Block = placed
			next, err := rule.Process(ctx)
			if err != nil {
				return nil, 0, fmt.Errorf("%s at %v: %w", rule.Type(), raw.Pos, err)
			}
			placed = next
		}

		if placed.State.String() != original.String() {
			replaced++
		}
		out = append(out, placed)
	}

	p.Metrics.observePiece(replaced, time.Since(start).Seconds())
	if p.Logger != nil {
		p.Logger.Debug("Часть %s в %v: блоков %d, заменено %d", pl.Template.Name, piecePos, len(out), replaced)
	}
	return out, replaced, nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"

	"github.com/annel0/structure-toolkit/internal/config"
	"github.com/annel0/structure-toolkit/internal/logging"
	"github.com/annel0/structure-toolkit/internal/observability"
	"github.com/annel0/structure-toolkit/internal/storage"
	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/block"
	"github.com/annel0/structure-toolkit/internal/world/block/implementations"
	"github.com/annel0/structure-toolkit/internal/world/processor"
	"github.com/annel0/structure-toolkit/internal/world/template"
	"github.com/annel0/structure-toolkit/internal/worldgen"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// defaultRules используется, если в конфигурации не задан файл обработчиков
const defaultRules = `{
  "processors": [
    {
      "processor_type": "structure_toolkit:ceiling_attachment",
      "block": "minecraft:lantern",
      "needs_wall": true,
      "rarity": 0.08
    },
    {
      "processor_type": "structure_toolkit:ceiling_attachment",
      "block": "minecraft:spore_blossom",
      "rarity": 0.02,
      "random_type": "piece"
    }
  ]
}`

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию $STRUCTKIT_CONFIG)")
	templateName := flag.String("template", "", "имя шаблона в хранилище; пусто - сгенерировать пещеру")
	pieceName := flag.String("name", "cave_piece", "имя генерируемой части")
	serve := flag.Bool("serve", false, "не завершаться после обработки, продолжая отдавать /metrics")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	logOpts := logging.Options{Dir: cfg.Logging.Dir, ConsoleLevel: level, FileLevel: logging.DEBUG}
	logging.GetLoggerManager().Configure(logOpts)
	if err := logging.InitDefaultLogger("structkit", logOpts); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	ctx := context.Background()
	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
		if err != nil {
			log.Fatalf("❌ Ошибка инициализации OpenTelemetry: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logging.Warn("Ошибка завершения OpenTelemetry: %v", err)
			}
		}()
	}

	runID := uuid.New().String()
	logging.Info("🧱 Запуск обработки структур, run=%s, seed=%d", runID, cfg.World.Seed)

	if err := run(ctx, cfg, runID, *templateName, *pieceName); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}

	if *serve {
		if _, err := observability.NewProcessMetrics(prometheus.DefaultRegisterer); err != nil {
			logging.Warn("Метрики процесса недоступны: %v", err)
		}

		// Блокируемся на HTTP-сервере метрик
		addr := fmt.Sprintf(":%d", cfg.Metrics.GetPort())
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}
}

func run(ctx context.Context, cfg *config.Config, runID, templateName, pieceName string) error {
	// === РЕЕСТР БЛОКОВ ===
	reg := implementations.NewDefaultRegistry()
	if cfg.Registry.CatalogDir != "" {
		if err := block.LoadCatalogDir(reg, cfg.Registry.CatalogDir); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("ошибка загрузки каталога блоков: %w", err)
		}
	}
	logging.Debug("Зарегистрировано типов блоков: %d", len(reg.Names()))

	// === ОБРАБОТЧИКИ ===
	var metrics *processor.Metrics
	if cfg.Metrics.Enabled {
		metrics = processor.NewMetrics(prometheus.DefaultRegisterer)
	}

	loader, err := processor.NewLoader(reg, processor.WithMetrics(metrics))
	if err != nil {
		return err
	}

	var rules []processor.Rule
	if cfg.Processors.Path != "" {
		rules, err = loader.LoadFile(cfg.Processors.Path)
	} else {
		rules, err = loader.Decode([]byte(defaultRules))
	}
	if err != nil {
		return fmt.Errorf("ошибка загрузки обработчиков: %w", err)
	}
	logging.Info("Загружено обработчиков: %d", len(rules))

	// === ХРАНИЛИЩЕ ===
	store, err := storage.NewTemplateStorage(cfg.Storage.Path, reg)
	if err != nil {
		return err
	}
	defer store.Close()

	// === ШАБЛОН ===
	var tpl *template.Template
	if templateName != "" {
		tpl, err = store.LoadTemplate(templateName)
		if err != nil {
			return err
		}
	} else {
		size := vec.New(cfg.World.PieceSize[0], cfg.World.PieceSize[1], cfg.World.PieceSize[2])
		tpl, err = worldgen.NewCaveGenerator(reg, cfg.World.Seed, size).Generate(pieceName)
		if err != nil {
			return fmt.Errorf("ошибка генерации части: %w", err)
		}
		if err := store.SaveTemplate(tpl); err != nil {
			return err
		}
	}

	// === РАЗМЕЩЕНИЕ ===
	rotation, err := template.ParseRotation(cfg.Placement.Rotation)
	if err != nil {
		return err
	}
	mirror, err := template.ParseMirror(cfg.Placement.Mirror)
	if err != nil {
		return err
	}

	piecePos := vec.New(cfg.World.PiecePos[0], cfg.World.PiecePos[1], cfg.World.PiecePos[2])
	placement := processor.Placement{
		World:        processor.StaticSeed(cfg.World.Seed),
		Template:     tpl,
		Settings:     &template.PlacementSettings{Rotation: rotation, Mirror: mirror},
		PiecePos:     &piecePos,
		StructurePos: &piecePos,
	}

	placed, err := processor.NewPipeline(rules, metrics).Apply(ctx, placement)
	if err != nil {
		return err
	}

	if err := store.SavePlacement(runID, tpl.Name, placed); err != nil {
		return err
	}

	logSummary(tpl.Name, placed)
	return nil
}

// logSummary выводит количество блоков каждого типа в результате
func logSummary(name string, placed []template.BlockInfo) {
	counts := make(map[string]int)
	for _, bi := range placed {
		key := bi.State.String()
		if t := bi.State.Type(); t != nil {
			key = t.Name
		}
		counts[key]++
	}

	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)

	logging.Info("✅ Часть %s обработана: %d блоков", name, len(placed))
	for _, n := range names {
		logging.Info("   %s: %d", n, counts[n])
	}
}

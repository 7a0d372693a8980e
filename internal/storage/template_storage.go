package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/annel0/structure-toolkit/internal/logging"
	"github.com/annel0/structure-toolkit/internal/vec"
	"github.com/annel0/structure-toolkit/internal/world/block"
	"github.com/annel0/structure-toolkit/internal/world/template"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

const (
	templatePrefix  = "template:"
	placementPrefix = "placement:"
)

// ErrTemplateNotFound возвращается, если шаблона нет в хранилище
var ErrTemplateNotFound = errors.New("template not found")

// TemplateStorage хранит шаблоны частей и результаты их обработки в BadgerDB.
// Значения - JSON-представление шаблона, сжатое zstd.
type TemplateStorage struct {
	db      *badger.DB
	dbPath  string
	reg     *block.Registry
	mutex   sync.RWMutex
	isReady bool

	compressor   *zstd.Encoder
	decompressor *zstd.Decoder
	logger       *logging.Logger
}

// placementRecord - обработанная часть, сдвинутая к началу координат
type placementRecord struct {
	Origin   vec.Vec3        `json:"origin"`
	Template json.RawMessage `json:"template"`
}

// NewTemplateStorage открывает хранилище в каталоге dataPath/templates
func NewTemplateStorage(dataPath string, reg *block.Registry) (*TemplateStorage, error) {
	dbPath := filepath.Join(dataPath, "templates")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	compressor, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать компрессор: %w", err)
	}
	decompressor, err := zstd.NewReader(nil)
	if err != nil {
		compressor.Close()
		db.Close()
		return nil, fmt.Errorf("не удалось создать декомпрессор: %w", err)
	}

	return &TemplateStorage{
		db:           db,
		dbPath:       dbPath,
		reg:          reg,
		isReady:      true,
		compressor:   compressor,
		decompressor: decompressor,
		logger:       logging.GetStorageLogger(),
	}, nil
}

// Close закрывает хранилище данных
func (ts *TemplateStorage) Close() error {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	if !ts.isReady {
		return nil
	}

	ts.isReady = false
	ts.decompressor.Close()
	ts.compressor.Close()
	return ts.db.Close()
}

// SaveTemplate сохраняет шаблон под его именем
func (ts *TemplateStorage) SaveTemplate(t *template.Template) error {
	if t.Name == "" {
		return fmt.Errorf("шаблон без имени")
	}

	data, err := template.Encode(t)
	if err != nil {
		return fmt.Errorf("ошибка сериализации шаблона: %w", err)
	}

	if err := ts.put(templatePrefix+t.Name, data); err != nil {
		return err
	}
	ts.logger.Debug("Шаблон %s сохранен (%d блоков)", t.Name, t.BlockCount())
	return nil
}

// LoadTemplate загружает шаблон по имени
func (ts *TemplateStorage) LoadTemplate(name string) (*template.Template, error) {
	data, err := ts.get(templatePrefix + name)
	if err != nil {
		return nil, err
	}

	t, err := template.Decode(ts.reg, data)
	if err != nil {
		return nil, fmt.Errorf("ошибка десериализации шаблона %s: %w", name, err)
	}
	return t, nil
}

// DeleteTemplate удаляет шаблон
func (ts *TemplateStorage) DeleteTemplate(name string) error {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	if !ts.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	return ts.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(templatePrefix + name))
	})
}

// ListTemplates возвращает отсортированные имена сохраненных шаблонов
func (ts *TemplateStorage) ListTemplates() ([]string, error) {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	if !ts.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var names []string
	err := ts.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(templatePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), templatePrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	sort.Strings(names)
	return names, nil
}

// SavePlacement сохраняет обработанные блоки части (в мировых координатах)
// для прохода генерации runID
func (ts *TemplateStorage) SavePlacement(runID, name string, blocks []template.BlockInfo) error {
	if len(blocks) == 0 {
		return fmt.Errorf("пустой результат для %s", name)
	}

	// Сдвигаем блоки к началу координат, чтобы сохранить их как шаблон
	lo, hi := blocks[0].Pos, blocks[0].Pos
	for _, bi := range blocks[1:] {
		lo = vec.New(min(lo.X, bi.Pos.X), min(lo.Y, bi.Pos.Y), min(lo.Z, bi.Pos.Z))
		hi = vec.New(max(hi.X, bi.Pos.X), max(hi.Y, bi.Pos.Y), max(hi.Z, bi.Pos.Z))
	}

	local := make(template.Palette, 0, len(blocks))
	for _, bi := range blocks {
		local = append(local, bi.WithPos(bi.Pos.Sub(lo)))
	}
	size := hi.Sub(lo).Add(vec.New(1, 1, 1))

	data, err := template.Encode(template.New(name, size, local))
	if err != nil {
		return fmt.Errorf("ошибка сериализации результата: %w", err)
	}

	record, err := json.Marshal(placementRecord{Origin: lo, Template: data})
	if err != nil {
		return fmt.Errorf("ошибка сериализации результата: %w", err)
	}
	return ts.put(placementKey(runID, name), record)
}

// LoadPlacement загружает сохраненный результат в мировых координатах
func (ts *TemplateStorage) LoadPlacement(runID, name string) ([]template.BlockInfo, error) {
	data, err := ts.get(placementKey(runID, name))
	if err != nil {
		return nil, err
	}

	var record placementRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("ошибка десериализации результата: %w", err)
	}

	t, err := template.Decode(ts.reg, record.Template)
	if err != nil {
		return nil, err
	}

	out := make([]template.BlockInfo, 0, len(t.Palettes[0]))
	for _, bi := range t.Palettes[0] {
		out = append(out, bi.WithPos(bi.Pos.Add(record.Origin)))
	}
	return out, nil
}

func placementKey(runID, name string) string {
	return placementPrefix + runID + ":" + name
}

func (ts *TemplateStorage) put(key string, data []byte) error {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	if !ts.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	compressed := ts.compressor.EncodeAll(data, nil)
	err := ts.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), compressed)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}
	return nil
}

func (ts *TemplateStorage) get(key string) ([]byte, error) {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	if !ts.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var compressed []byte
	err := ts.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			compressed = append([]byte{}, val...)
			return nil
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	data, err := ts.decompressor.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки %s: %w", key, err)
	}
	return data, nil
}

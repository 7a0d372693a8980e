package processor

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/annel0/structure-toolkit/internal/logging"
	"github.com/annel0/structure-toolkit/internal/world/block"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/processor_list.schema.json
var processorListSchema string

// Decoder разбирает параметры одного обработчика из JSON
type Decoder func(reg *block.Registry, raw json.RawMessage, opts ...Option) (Rule, error)

// Decoders сопоставляет имя типа обработчика и его декодер
type Decoders map[string]Decoder

// DefaultDecoders возвращает декодеры встроенных обработчиков
func DefaultDecoders() Decoders {
	return Decoders{
		CeilingAttachmentType: decodeCeilingAttachment,
	}
}

// Loader загружает списки обработчиков вида {"processors": [...]}
type Loader struct {
	reg      *block.Registry
	decoders Decoders
	opts     []Option
	schema   *jsonschema.Schema
	logger   *logging.Logger
}

// NewLoader создаёт загрузчик со встроенными декодерами
func NewLoader(reg *block.Registry, opts ...Option) (*Loader, error) {
	schema, err := jsonschema.CompileString("processor_list.schema.json", processorListSchema)
	if err != nil {
		return nil, fmt.Errorf("компиляция схемы списка обработчиков: %w", err)
	}

	return &Loader{
		reg:      reg,
		decoders: DefaultDecoders(),
		opts:     opts,
		schema:   schema,
		logger:   logging.GetProcessorLogger(),
	}, nil
}

// Register добавляет декодер для нового типа обработчика
func (l *Loader) Register(name string, d Decoder) {
	l.decoders[name] = d
}

type listFile struct {
	Processors []json.RawMessage `json:"processors"`
}

type processorHeader struct {
	Type string `json:"processor_type"`
}

// Decode проверяет документ схемой и создаёт обработчики
func (l *Loader) Decode(data []byte) ([]Rule, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := l.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	var file listFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	rules := make([]Rule, 0, len(file.Processors))
	for i, raw := range file.Processors {
		var header processorHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("%w: processor %d: %v", ErrConfiguration, i, err)
		}

		decode, ok := l.decoders[header.Type]
		if !ok {
			return nil, fmt.Errorf("%w: processor %d: unknown processor type %q", ErrConfiguration, i, header.Type)
		}

		rule, err := decode(l.reg, raw, l.opts...)
		if err != nil {
			return nil, fmt.Errorf("processor %d (%s): %w", i, header.Type, err)
		}
		rules = append(rules, rule)
	}

	l.logger.Debug("Загружено обработчиков: %d", len(rules))
	return rules, nil
}

// LoadFile читает и разбирает файл списка обработчиков
func (l *Loader) LoadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rules, err := l.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// decodeCeilingAttachment разбирает параметры и сразу проверяет, что
// блок замены есть в реестре
func decodeCeilingAttachment(reg *block.Registry, raw json.RawMessage, opts ...Option) (Rule, error) {
	var params CeilingAttachmentParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if _, err := reg.Resolve(params.Block); err != nil {
		return nil, err
	}
	return NewCeilingAttachment(reg, params, opts...), nil
}

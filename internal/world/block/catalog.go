package block

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogFile - описание дополнительных блоков и тегов в YAML
type CatalogFile struct {
	Blocks []CatalogBlock       `yaml:"blocks"`
	Tags   map[string][]string `yaml:"tags"`
}

// CatalogBlock - описание одного типа блока
type CatalogBlock struct {
	Name       string            `yaml:"name"`
	Air        bool              `yaml:"air"`
	Liquid     bool              `yaml:"liquid"`
	Properties map[string]string `yaml:"properties"`
	// Shape: "full" (по умолчанию), "empty" или "boxes"
	Shape string       `yaml:"shape"`
	Boxes [][6]float64 `yaml:"boxes"` // в шестнадцатых долях блока
}

// ToType преобразует описание в тип блока
func (cb CatalogBlock) ToType() (*Type, error) {
	if strings.TrimSpace(cb.Name) == "" {
		return nil, fmt.Errorf("блок без имени в каталоге")
	}

	t := &Type{
		Name:     cb.Name,
		Air:      cb.Air,
		Liquid:   cb.Liquid,
		Defaults: Properties(cb.Properties).Clone(),
	}

	switch cb.Shape {
	case "", "full":
		t.Shape = FullCube
		if cb.Air || cb.Liquid {
			t.Shape = EmptyShape
		}
	case "empty":
		t.Shape = EmptyShape
	case "boxes":
		if len(cb.Boxes) == 0 {
			return nil, fmt.Errorf("блок %s: shape=boxes без boxes", cb.Name)
		}
		shape := make(Shape, 0, len(cb.Boxes))
		for _, b := range cb.Boxes {
			shape = append(shape, Cuboid(b[0], b[1], b[2], b[3], b[4], b[5]))
		}
		t.Shape = shape
	default:
		return nil, fmt.Errorf("блок %s: неизвестная форма %q", cb.Name, cb.Shape)
	}
	return t, nil
}

// LoadCatalog регистрирует блоки и теги из YAML-данных
func LoadCatalog(r *Registry, data []byte) error {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("ошибка разбора каталога блоков: %w", err)
	}

	for _, cb := range file.Blocks {
		t, err := cb.ToType()
		if err != nil {
			return err
		}
		if err := r.Register(t); err != nil {
			return err
		}
	}

	tags := make([]string, 0, len(file.Tags))
	for tag := range file.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		r.RegisterTag(tag, file.Tags[tag]...)
	}
	return nil
}

// LoadCatalogDir загружает все *.yaml / *.yml файлы каталога
func LoadCatalogDir(r *Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("чтение %s: %w", path, err)
		}
		if err := LoadCatalog(r, data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
